package publish

import (
	"time"

	"codeberg.org/mutker/visionarypub/internal/encode"
	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/frame"
	"codeberg.org/mutker/visionarypub/internal/logger"
	"codeberg.org/mutker/visionarypub/internal/msgs"
)

type encodeFunc func(header msgs.Header, snap frame.Snapshot) (msgs.Message, error)

// encoders is indexed by Stream. Every entry is a pure function of the
// header and the snapshot.
var encoders = [streamCount]encodeFunc{
	StreamCameraInfo: func(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
		return encode.CameraInfo(h, s.Width(), s.Height(), s.CameraParameters()), nil
	},
	StreamPoints: encodePoints,
	StreamDepth: func(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
		return wrapImage(encode.Mono16Image(h, s.Width(), s.Height(), s.DistanceMap()))
	},
	StreamIntensity: func(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
		return wrapImage(encode.Mono16Image(h, s.Width(), s.Height(), s.IntensityMap()))
	},
	StreamState: func(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
		return wrapImage(encode.Mono8Image(h, s.Width(), s.Height(), s.StateMap()))
	},
	StreamIMU: func(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
		return encode.Imu(h, s.IMU()), nil
	},
	StreamDeviceStatus: func(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
		return encode.DeviceStatus(h, s.DeviceStatus()), nil
	},
	StreamCameraIO: func(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
		return encode.CameraIO(h, s.LocalIO()), nil
	},
	StreamROI: func(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
		return encode.ROIArray(h, s.ROIs()), nil
	},
	StreamFields: func(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
		return encode.FieldInformationArray(h, s.Fields()), nil
	},
}

// encodePoints runs the snapshot's geometry and mounting steps and packs
// the result with the intensity map.
func encodePoints(h msgs.Header, s frame.Snapshot) (msgs.Message, error) {
	points := s.ApplySpatialTransform(s.GeneratePointGeometry())
	cloud, err := encode.PointCloud(h, s.Width(), s.Height(), points, s.IntensityMap())
	if err != nil {
		return nil, err
	}
	return cloud, nil
}

func wrapImage(img *msgs.Image, err error) (msgs.Message, error) {
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Dispatcher fans one frame out to every stream that has demand.
type Dispatcher struct {
	transport Transport
	gate      Gate
	log       logger.Logger
	now       func() time.Time
}

type Option func(*Dispatcher)

// WithLogger replaces the default component logger.
func WithLogger(log logger.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

func NewDispatcher(transport Transport, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		transport: transport,
		gate:      NewGate(transport),
		log:       logger.Default().WithComponent("dispatcher"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch encodes and publishes one frame. A failing stream is recorded
// in the report and never stops the remaining streams. The snapshot is not
// retained after Dispatch returns.
func (d *Dispatcher) Dispatch(header msgs.Header, snap frame.Snapshot) Report {
	start := d.now()
	report := Report{
		Header:  header,
		Results: make([]StreamResult, 0, streamCount),
	}

	for s := Stream(0); s < streamCount; s++ {
		report.Results = append(report.Results, d.dispatchStream(s, header, snap))
	}

	report.Duration = d.now().Sub(start)

	d.log.Debug().
		Uint32("seq", header.Seq).
		Int("published", report.Count(OutcomePublished)).
		Int("skipped", report.Count(OutcomeSkipped)).
		Int("failed", report.Count(OutcomeFailed)).
		Dur("duration", report.Duration).
		Msg("Frame dispatched")

	return report
}

func (d *Dispatcher) dispatchStream(s Stream, header msgs.Header, snap frame.Snapshot) StreamResult {
	if !d.gate.ShouldEncode(s) {
		return StreamResult{Stream: s, Outcome: OutcomeSkipped}
	}

	errFactory := errors.New()

	msg, err := encoders[s](header, snap)
	if err != nil {
		appErr := errFactory.Wrap(errors.ErrEncodeFailed, err).
			WithMessage("Failed to encode " + s.String())
		d.logFailure(s, header, appErr)
		return StreamResult{Stream: s, Outcome: OutcomeFailed, Err: appErr}
	}

	if err := d.transport.Publish(s, msg); err != nil {
		appErr := errFactory.Wrap(errors.ErrPublishFailed, err).
			WithMessage("Failed to publish " + s.String())
		d.logFailure(s, header, appErr)
		return StreamResult{Stream: s, Outcome: OutcomeFailed, Err: appErr}
	}

	return StreamResult{Stream: s, Outcome: OutcomePublished}
}

// logFailure reports data faults at warn level. They are expected from
// time to time and are not retried.
func (d *Dispatcher) logFailure(s Stream, header msgs.Header, err errors.Error) {
	if errors.HasCode(err, errors.ErrIntegrityMismatch) || errors.HasCode(err, errors.ErrSizeMismatch) {
		d.log.Warn().
			Str("stream", s.String()).
			Uint32("seq", header.Seq).
			Str("error_code", string(errors.CodeOf(err.Unwrap()))).
			Err(err.Unwrap()).
			Msg("Dropping stream for this frame")
		return
	}

	d.log.ErrorWithCode(err).
		Str("stream", s.String()).
		Uint32("seq", header.Seq).
		Msg("Stream failed")
}
