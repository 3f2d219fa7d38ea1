package encode

import (
	"codeberg.org/mutker/visionarypub/internal/frame"
	"codeberg.org/mutker/visionarypub/internal/msgs"
)

// DistortionModel names the five-coefficient Brown-Conrady model.
const DistortionModel = "plumb_bob"

// CameraInfo maps the imager intrinsics into a camera info message.
//
// D is [k1, k2, p1, p2, k3]. K holds fx, cx, fy, cy and K[8]=1; every other
// entry, including skew, stays zero. R and P are not populated.
func CameraInfo(header msgs.Header, width, height int, cam frame.Intrinsics) *msgs.CameraInfo {
	info := &msgs.CameraInfo{
		Header:          header,
		Height:          uint32(height),
		Width:           uint32(width),
		DistortionModel: DistortionModel,
		D:               []float64{cam.K1, cam.K2, cam.P1, cam.P2, cam.K3},
	}

	info.K[0] = cam.Fx
	info.K[2] = cam.Cx
	info.K[4] = cam.Fy
	info.K[5] = cam.Cy
	info.K[8] = 1

	return info
}

// Imu copies an IMU sample. The orientation is passed through without
// normalization.
func Imu(header msgs.Header, sample frame.IMUSample) *msgs.Imu {
	return &msgs.Imu{
		Header: header,
		Orientation: msgs.Quaternion{
			X: float64(sample.Orientation.X),
			Y: float64(sample.Orientation.Y),
			Z: float64(sample.Orientation.Z),
			W: float64(sample.Orientation.W),
		},
		AngularVelocity: msgs.Vector3{
			X: float64(sample.AngularVelocity.X),
			Y: float64(sample.AngularVelocity.Y),
			Z: float64(sample.AngularVelocity.Z),
		},
		LinearAcceleration: msgs.Vector3{
			X: float64(sample.Acceleration.X),
			Y: float64(sample.Acceleration.Y),
			Z: float64(sample.Acceleration.Z),
		},
	}
}
