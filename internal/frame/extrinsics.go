package frame

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Extrinsics is a rigid transform from the sensor frame into the mounting
// frame: p' = R*p + t, with R composed as yaw*pitch*roll (Z-Y-X).
type Extrinsics struct {
	rotation    *mat.Dense
	translation [3]float64
}

// NewExtrinsics builds a transform from a translation in meters and
// roll/pitch/yaw angles in radians.
func NewExtrinsics(x, y, z, roll, pitch, yaw float64) *Extrinsics {
	sr, cr := math.Sincos(roll)
	sp, cp := math.Sincos(pitch)
	sy, cy := math.Sincos(yaw)

	rx := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cr, -sr,
		0, sr, cr,
	})
	ry := mat.NewDense(3, 3, []float64{
		cp, 0, sp,
		0, 1, 0,
		-sp, 0, cp,
	})
	rz := mat.NewDense(3, 3, []float64{
		cy, -sy, 0,
		sy, cy, 0,
		0, 0, 1,
	})

	var zy mat.Dense
	zy.Mul(rz, ry)
	rotation := mat.NewDense(3, 3, nil)
	rotation.Mul(&zy, rx)

	return &Extrinsics{
		rotation:    rotation,
		translation: [3]float64{x, y, z},
	}
}

// Rotation returns a copy of the 3x3 rotation matrix in row-major order.
func (e *Extrinsics) Rotation() [9]float64 {
	var out [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = e.rotation.At(r, c)
		}
	}
	return out
}

// Apply transforms points in place and returns them.
func (e *Extrinsics) Apply(points []PointXYZ) []PointXYZ {
	if len(points) == 0 {
		return points
	}

	cols := make([]float64, 3*len(points))
	n := len(points)
	for i, p := range points {
		cols[i] = float64(p.X)
		cols[n+i] = float64(p.Y)
		cols[2*n+i] = float64(p.Z)
	}
	src := mat.NewDense(3, n, cols)

	var dst mat.Dense
	dst.Mul(e.rotation, src)

	for i := range points {
		points[i] = PointXYZ{
			X: float32(dst.At(0, i) + e.translation[0]),
			Y: float32(dst.At(1, i) + e.translation[1]),
			Z: float32(dst.At(2, i) + e.translation[2]),
		}
	}
	return points
}
