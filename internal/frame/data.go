package frame

// Data is an in-memory Snapshot. The zero value is an empty 0x0 frame.
type Data struct {
	W, H int

	Distance  []uint16
	Intensity []uint16
	State     []uint8
	Camera    Intrinsics

	Imu       IMUSample
	Status    DeviceStatus
	IO        LocalIO
	Rois      []ROI
	FieldList []FieldInfo

	// Points is returned by GeneratePointGeometry when set. Otherwise the
	// geometry is back-projected from Distance through Camera.
	Points []PointXYZ
	// Mount is applied by ApplySpatialTransform; nil means identity.
	Mount *Extrinsics
	// DistanceScale converts distance map units to meters; 0 means 1mm.
	DistanceScale float64
}

var _ Snapshot = (*Data)(nil)

func (d *Data) Width() int                   { return d.W }
func (d *Data) Height() int                  { return d.H }
func (d *Data) DistanceMap() []uint16        { return d.Distance }
func (d *Data) IntensityMap() []uint16       { return d.Intensity }
func (d *Data) StateMap() []uint8            { return d.State }
func (d *Data) CameraParameters() Intrinsics { return d.Camera }
func (d *Data) IMU() IMUSample               { return d.Imu }
func (d *Data) DeviceStatus() DeviceStatus   { return d.Status }
func (d *Data) LocalIO() LocalIO             { return d.IO }
func (d *Data) ROIs() []ROI                  { return d.Rois }
func (d *Data) Fields() []FieldInfo          { return d.FieldList }

func (d *Data) GeneratePointGeometry() []PointXYZ {
	if d.Points != nil {
		out := make([]PointXYZ, len(d.Points))
		copy(out, d.Points)
		return out
	}

	scale := d.DistanceScale
	if scale == 0 {
		scale = 0.001
	}
	return BackProject(d.W, d.H, d.Distance, d.Camera, scale)
}

func (d *Data) ApplySpatialTransform(points []PointXYZ) []PointXYZ {
	if d.Mount == nil {
		return points
	}
	return d.Mount.Apply(points)
}

// BackProject converts a row-major distance map into points using the
// pinhole model. Distance is measured along the optical axis; a zero
// distance yields a point at the origin. Distortion is not removed.
func BackProject(width, height int, distance []uint16, cam Intrinsics, scale float64) []PointXYZ {
	n := width * height
	if n <= 0 || len(distance) < n {
		return []PointXYZ{}
	}

	points := make([]PointXYZ, n)
	for v := 0; v < height; v++ {
		for u := 0; u < width; u++ {
			i := v*width + u
			z := float64(distance[i]) * scale
			var x, y float64
			if cam.Fx != 0 && cam.Fy != 0 {
				x = (float64(u) - cam.Cx) / cam.Fx * z
				y = (float64(v) - cam.Cy) / cam.Fy * z
			}
			points[i] = PointXYZ{X: float32(x), Y: float32(y), Z: float32(z)}
		}
	}
	return points
}
