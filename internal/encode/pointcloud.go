// Package encode turns frame sub-readings into output messages. Every
// encoder is a pure function of its inputs: it either returns a complete
// message or an error, never a partially written one.
package encode

import (
	"encoding/binary"
	"math"

	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/frame"
	"codeberg.org/mutker/visionarypub/internal/msgs"
)

// Point record layout: x, y, z float32 followed by a uint16 intensity,
// little-endian, no padding.
const (
	offsetX         = 0
	offsetY         = 4
	offsetZ         = 8
	offsetIntensity = 12

	PointStep = offsetIntensity + 2
)

var pointFields = [...]msgs.PointField{
	{Name: "x", Offset: offsetX, Datatype: msgs.PointFieldFloat32, Count: 1},
	{Name: "y", Offset: offsetY, Datatype: msgs.PointFieldFloat32, Count: 1},
	{Name: "z", Offset: offsetZ, Datatype: msgs.PointFieldFloat32, Count: 1},
	{Name: "intensity", Offset: offsetIntensity, Datatype: msgs.PointFieldUint16, Count: 1},
}

// PointFields returns the field descriptor carried by every point cloud.
func PointFields() []msgs.PointField {
	fields := make([]msgs.PointField, len(pointFields))
	copy(fields, pointFields[:])
	return fields
}

// PointCloud packs points and their intensities into one interleaved
// buffer of width*height records. Both vectors must hold exactly
// width*height entries; otherwise ErrIntegrityMismatch is returned and no
// message is built. Invalid geometry (NaN, zero) is copied as is.
func PointCloud(
	header msgs.Header, width, height int, points []frame.PointXYZ, intensity []uint16,
) (*msgs.PointCloud, error) {
	errFactory := errors.New()

	if !validDimensions(width, height, PointStep) {
		return nil, errFactory.WithData(errors.ErrInvalidDimensions, struct {
			Width  int
			Height int
		}{width, height})
	}

	if len(points) != len(intensity) {
		return nil, errFactory.WithData(errors.ErrIntegrityMismatch, struct {
			Points    int
			Intensity int
		}{len(points), len(intensity)})
	}

	count := width * height
	if len(points) != count {
		return nil, errFactory.WithData(errors.ErrIntegrityMismatch, struct {
			Points int
			Pixels int
		}{len(points), count})
	}

	data := make([]byte, count*PointStep)
	for i, p := range points {
		rec := data[i*PointStep : (i+1)*PointStep]
		binary.LittleEndian.PutUint32(rec[offsetX:], math.Float32bits(p.X))
		binary.LittleEndian.PutUint32(rec[offsetY:], math.Float32bits(p.Y))
		binary.LittleEndian.PutUint32(rec[offsetZ:], math.Float32bits(p.Z))
		binary.LittleEndian.PutUint16(rec[offsetIntensity:], intensity[i])
	}

	return &msgs.PointCloud{
		Header:      header,
		Height:      uint32(height),
		Width:       uint32(width),
		Fields:      PointFields(),
		IsBigEndian: false,
		PointStep:   PointStep,
		RowStep:     uint32(PointStep * width),
		Data:        data,
		IsDense:     false,
	}, nil
}

// ReadPoint decodes record i of a cloud built by PointCloud.
func ReadPoint(cloud *msgs.PointCloud, i int) (frame.PointXYZ, uint16, error) {
	if cloud == nil || cloud.PointStep != PointStep {
		return frame.PointXYZ{}, 0, errors.New().New(errors.ErrUnsupportedMessage)
	}

	if i < 0 || i >= len(cloud.Data)/PointStep {
		return frame.PointXYZ{}, 0, errors.New().WithData(errors.ErrIndexOutOfRange, struct {
			Index  int
			Points int
		}{i, len(cloud.Data) / PointStep})
	}

	rec := cloud.Data[i*PointStep : (i+1)*PointStep]
	p := frame.PointXYZ{
		X: math.Float32frombits(binary.LittleEndian.Uint32(rec[offsetX:])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(rec[offsetY:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(rec[offsetZ:])),
	}
	return p, binary.LittleEndian.Uint16(rec[offsetIntensity:]), nil
}
