package encode_test

import (
	"testing"

	"codeberg.org/mutker/visionarypub/internal/encode"
	"codeberg.org/mutker/visionarypub/internal/frame"
	"codeberg.org/mutker/visionarypub/internal/msgs"
	"github.com/stretchr/testify/assert"
)

func TestCameraInfo(t *testing.T) {
	cam := frame.Intrinsics{
		Fx: 146.5, Fy: 146.7, Cx: 256.1, Cy: 212.3,
		K1: -0.1, K2: 0.02, P1: 0.001, P2: -0.002, K3: 0.0005,
	}
	info := encode.CameraInfo(testHeader, 512, 424, cam)

	assert.Equal(t, testHeader, info.Header)
	assert.Equal(t, uint32(512), info.Width)
	assert.Equal(t, uint32(424), info.Height)
	assert.Equal(t, encode.DistortionModel, info.DistortionModel)
	assert.Equal(t, []float64{-0.1, 0.02, 0.001, -0.002, 0.0005}, info.D)
	assert.Equal(t, [9]float64{
		146.5, 0, 256.1,
		0, 146.7, 212.3,
		0, 0, 1,
	}, info.K)
	assert.Equal(t, [9]float64{}, info.R)
	assert.Equal(t, [12]float64{}, info.P)
}

func TestCameraInfoFixedEntries(t *testing.T) {
	intrinsics := []frame.Intrinsics{
		{},
		{Fx: 1, Fy: 1},
		{Fx: -3, Fy: 9, Cx: 100, Cy: -100, K1: 1, K2: 2, P1: 3, P2: 4, K3: 5},
	}
	for _, cam := range intrinsics {
		info := encode.CameraInfo(testHeader, 4, 4, cam)
		assert.Len(t, info.D, 5)
		assert.Equal(t, 1.0, info.K[8])
		for _, i := range []int{1, 3, 6, 7} {
			assert.Zero(t, info.K[i], "K[%d]", i)
		}
	}
}

func TestImu(t *testing.T) {
	sample := frame.IMUSample{
		AngularVelocity: frame.Vector3{X: 0.5, Y: -0.25, Z: 1},
		Acceleration:    frame.Vector3{X: 0, Y: 0, Z: 9.75},
		Orientation:     frame.Quaternion{X: 0, Y: 0, Z: 2, W: 2},
	}
	imu := encode.Imu(testHeader, sample)

	assert.Equal(t, &msgs.Imu{
		Header:             testHeader,
		Orientation:        msgs.Quaternion{X: 0, Y: 0, Z: 2, W: 2},
		AngularVelocity:    msgs.Vector3{X: 0.5, Y: -0.25, Z: 1},
		LinearAcceleration: msgs.Vector3{X: 0, Y: 0, Z: 9.75},
	}, imu)
}
