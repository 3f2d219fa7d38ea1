package encode

import (
	"encoding/binary"
	"math"

	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/msgs"
)

// Sample is a single-channel pixel value.
type Sample interface {
	uint8 | uint16
}

// Image builds a single-channel image from width*height row-major
// samples. The pixel format follows the sample width: 8UC1 for uint8,
// 16UC1 (little-endian) for uint16.
func Image[T Sample](header msgs.Header, width, height int, samples []T) (*msgs.Image, error) {
	errFactory := errors.New()

	if !validDimensions(width, height, sampleSize[T]()) {
		return nil, errFactory.WithData(errors.ErrInvalidDimensions, struct {
			Width  int
			Height int
		}{width, height})
	}

	if len(samples) != width*height {
		return nil, errFactory.WithData(errors.ErrSizeMismatch, struct {
			Samples int
			Pixels  int
		}{len(samples), width * height})
	}

	img := &msgs.Image{
		Header:      header,
		Height:      uint32(height),
		Width:       uint32(width),
		IsBigEndian: false,
	}

	switch s := any(samples).(type) {
	case []uint8:
		img.Encoding = msgs.Encoding8UC1
		img.Step = uint32(width)
		img.Data = make([]byte, len(s))
		copy(img.Data, s)
	case []uint16:
		img.Encoding = msgs.Encoding16UC1
		img.Step = uint32(width * 2)
		img.Data = make([]byte, len(s)*2)
		for i, v := range s {
			binary.LittleEndian.PutUint16(img.Data[i*2:], v)
		}
	}

	return img, nil
}

// Mono8Image encodes an 8-bit map such as the state map.
func Mono8Image(header msgs.Header, width, height int, samples []uint8) (*msgs.Image, error) {
	return Image(header, width, height, samples)
}

// Mono16Image encodes a 16-bit map such as the distance or intensity map.
func Mono16Image(header msgs.Header, width, height int, samples []uint16) (*msgs.Image, error) {
	return Image(header, width, height, samples)
}

func sampleSize[T Sample]() int {
	var zero T
	if _, ok := any(zero).(uint16); ok {
		return 2
	}
	return 1
}

// validDimensions reports whether a width x height grid of pixels of the
// given size fits the uint32 header fields and an addressable buffer.
func validDimensions(width, height, pixelSize int) bool {
	if width < 0 || height < 0 {
		return false
	}
	if uint64(width) > math.MaxUint32 || uint64(height) > math.MaxUint32 {
		return false
	}

	rowStep := uint64(width) * uint64(pixelSize)
	if rowStep > math.MaxUint32 {
		return false
	}
	return rowStep == 0 || uint64(height) <= uint64(math.MaxInt)/rowStep
}
