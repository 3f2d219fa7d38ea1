// Package wire serializes output messages into self-contained CBOR
// envelopes that can be decoded without any shared state.
package wire

import (
	"time"

	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/msgs"
	"github.com/fxamacker/cbor/v2"
)

// Envelope wraps one encoded message with enough metadata to route and
// decode it.
type Envelope struct {
	Stream  string          `cbor:"stream"`
	Type    string          `cbor:"type"`
	Stamp   time.Time       `cbor:"stamp"`
	Payload cbor.RawMessage `cbor:"payload"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano

	var err error
	if encMode, err = opts.EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

// newMessage maps a type name to a constructor for decoding.
var newMessage = map[string]func() msgs.Message{
	(*msgs.PointCloud)(nil).TypeName():            func() msgs.Message { return &msgs.PointCloud{} },
	(*msgs.Image)(nil).TypeName():                 func() msgs.Message { return &msgs.Image{} },
	(*msgs.CameraInfo)(nil).TypeName():            func() msgs.Message { return &msgs.CameraInfo{} },
	(*msgs.Imu)(nil).TypeName():                   func() msgs.Message { return &msgs.Imu{} },
	(*msgs.DeviceStatus)(nil).TypeName():          func() msgs.Message { return &msgs.DeviceStatus{} },
	(*msgs.CameraIO)(nil).TypeName():              func() msgs.Message { return &msgs.CameraIO{} },
	(*msgs.ROIArray)(nil).TypeName():              func() msgs.Message { return &msgs.ROIArray{} },
	(*msgs.FieldInformationArray)(nil).TypeName(): func() msgs.Message { return &msgs.FieldInformationArray{} },
}

// Marshal serializes msg for stream into an envelope. The output is
// deterministic for equal inputs.
func Marshal(stream string, msg msgs.Message) ([]byte, error) {
	errFactory := errors.New()

	if msg == nil {
		return nil, errFactory.WithMessage(errors.ErrInvalidArgument, "nil message")
	}

	payload, err := encMode.Marshal(msg)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrMarshalFailed, err)
	}

	data, err := encMode.Marshal(Envelope{
		Stream:  stream,
		Type:    msg.TypeName(),
		Stamp:   msg.GetHeader().Stamp,
		Payload: payload,
	})
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrMarshalFailed, err)
	}

	return data, nil
}

// Unmarshal decodes the envelope only. The payload is left raw.
func Unmarshal(data []byte) (Envelope, error) {
	var env Envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return Envelope{}, errors.New().Wrap(errors.ErrUnmarshalFailed, err)
	}
	return env, nil
}

// Decode returns the typed message carried by env.
func Decode(env Envelope) (msgs.Message, error) {
	errFactory := errors.New()

	ctor, ok := newMessage[env.Type]
	if !ok {
		return nil, errFactory.WithData(errors.ErrUnsupportedMessage, struct {
			Type string
		}{
			Type: env.Type,
		})
	}

	msg := ctor()
	if err := decMode.Unmarshal(env.Payload, msg); err != nil {
		return nil, errFactory.Wrap(errors.ErrUnmarshalFailed, err)
	}

	return msg, nil
}
