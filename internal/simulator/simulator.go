// Package simulator produces synthetic sensor frames at a fixed rate. It
// stands in for the acquisition side when no device is attached.
package simulator

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/frame"
	"codeberg.org/mutker/visionarypub/internal/logger"
)

const (
	fieldOfView   = 70.0 * math.Pi / 180.0
	baseDistance  = 2000 // mm
	bumpHeight    = 600  // mm
	gravity       = 9.81
	roiCount      = 4
	fieldCount    = 4
	intensityGain = 4
)

// Config describes the synthetic sensor.
type Config struct {
	Width  int
	Height int
	// Rate is the frame rate in Hz.
	Rate float64
	// Mount is attached to every frame; nil means identity.
	Mount *frame.Extrinsics
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.Width <= 0 || c.Height <= 0 {
		return errFactory.WithData(errors.ErrInvalidDimensions, struct {
			Width, Height int
		}{
			Width:  c.Width,
			Height: c.Height,
		})
	}
	if c.Rate <= 0 || math.IsInf(c.Rate, 0) || math.IsNaN(c.Rate) {
		return errFactory.WithData(errors.ErrInvalidRate, struct {
			Rate float64
		}{
			Rate: c.Rate,
		})
	}

	return nil
}

// Frame is one generated acquisition.
type Frame struct {
	Seq   uint32
	Stamp time.Time
	Data  *frame.Data
}

// Simulator generates frames. A Simulator is used by one Stream at a time.
type Simulator struct {
	cfg     Config
	log     logger.Logger
	dropped atomic.Uint64
}

func New(cfg Config, log logger.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{cfg: cfg, log: log}, nil
}

// Dropped returns how many frames were discarded because the consumer was
// still busy with the previous one.
func (s *Simulator) Dropped() uint64 {
	return s.dropped.Load()
}

// Stream emits frames until ctx is done, then closes the channel. At most
// one frame is buffered; a frame generated while the buffer is full is
// dropped.
func (s *Simulator) Stream(ctx context.Context) <-chan Frame {
	out := make(chan Frame, 1)

	go func() {
		defer close(out)

		interval := time.Duration(float64(time.Second) / s.cfg.Rate)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var seq uint32
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				f := Frame{Seq: seq, Stamp: now, Data: s.Generate(seq)}
				seq++

				select {
				case out <- f:
				default:
					n := s.dropped.Add(1)
					s.log.Debug().
						Uint32("seq", f.Seq).
						Uint64("dropped_total", n).
						Msg("Consumer busy, frame dropped")
				}
			}
		}
	}()

	return out
}

// Generate builds the synthetic frame for seq. The scene is a flat wall
// with a bump that moves across the image as seq grows.
func (s *Simulator) Generate(seq uint32) *frame.Data {
	w, h := s.cfg.Width, s.cfg.Height
	n := w * h
	phase := float64(seq) * 0.1

	focal := float64(w) / (2 * math.Tan(fieldOfView/2))
	cam := frame.Intrinsics{
		Fx: focal,
		Fy: focal,
		Cx: float64(w-1) / 2,
		Cy: float64(h-1) / 2,
	}

	bx := cam.Cx + math.Cos(phase)*float64(w)/4
	by := cam.Cy + math.Sin(phase)*float64(h)/4
	sigma := float64(w*h) / 40

	distance := make([]uint16, n)
	intensity := make([]uint16, n)
	state := make([]uint8, n)
	for v := 0; v < h; v++ {
		for u := 0; u < w; u++ {
			i := v*w + u
			dx, dy := float64(u)-bx, float64(v)-by
			d := baseDistance - bumpHeight*math.Exp(-(dx*dx+dy*dy)/sigma)
			distance[i] = uint16(d)
			intensity[i] = uint16(math.Min(math.MaxUint16, intensityGain*(baseDistance*2-d)))
		}
	}

	rois := make([]frame.ROI, roiCount)
	for i := range rois {
		rois[i] = frame.ROI{
			ID:            uint8(i + 1),
			DistanceValue: distance[(i*n)/roiCount],
			Result: frame.ROIResult{
				DistanceSafe: true, DistanceValid: true,
				ResultSafe: true, ResultValid: true,
			},
			Safety: frame.ROISafety{QualityClass: 1, SlotActive: true},
		}
	}

	fields := make([]frame.FieldInfo, fieldCount)
	for i := range fields {
		fields[i] = frame.FieldInfo{
			FieldID:     uint16(i + 1),
			FieldSetID:  1,
			FieldActive: 1,
			EvalMethod:  1,
		}
	}

	return &frame.Data{
		W:         w,
		H:         h,
		Distance:  distance,
		Intensity: intensity,
		State:     state,
		Camera:    cam,
		Imu: frame.IMUSample{
			AngularVelocity: frame.Vector3{Z: float32(0.01 * math.Sin(phase))},
			Acceleration:    frame.Vector3{Z: gravity},
			Orientation:     frame.Quaternion{W: 1},
		},
		Status: frame.DeviceStatus{
			State:            frame.StateRunning,
			General:          frame.GeneralStatus{RunModeActive: true},
			ActiveMonitoring: frame.MonitoringCases{Case1: 1},
		},
		IO: frame.LocalIO{
			Configured: frame.UniversalPins{Pin5: true, Pin6: true},
			OSSDs:      frame.OSSDState{OSSD1A: true, OSSD1B: true},
		},
		Rois:      rois,
		FieldList: fields,
		Mount:     s.cfg.Mount,
	}
}
