// Package frame defines the decoded sensor-frame snapshot consumed by the
// publisher and the sub-readings it exposes. Snapshots are produced by the
// acquisition side and are read-only here.
package frame

// Snapshot is one acquisition instant. Implementations must not be
// retained beyond a single dispatch cycle.
type Snapshot interface {
	Width() int
	Height() int

	DistanceMap() []uint16
	IntensityMap() []uint16
	StateMap() []uint8
	CameraParameters() Intrinsics

	IMU() IMUSample
	DeviceStatus() DeviceStatus
	LocalIO() LocalIO
	ROIs() []ROI
	Fields() []FieldInfo

	// GeneratePointGeometry back-projects the distance map into sensor
	// coordinates, one point per pixel in row-major order.
	GeneratePointGeometry() []PointXYZ
	// ApplySpatialTransform maps points into the mounting frame. The
	// returned slice may alias the input.
	ApplySpatialTransform(points []PointXYZ) []PointXYZ
}

// PointXYZ is one 3-D point in meters.
type PointXYZ struct {
	X, Y, Z float32
}

// Intrinsics holds the pinhole model and Brown-Conrady distortion of the
// imager.
type Intrinsics struct {
	Fx, Fy float64
	Cx, Cy float64
	K1, K2 float64
	P1, P2 float64
	K3     float64
}

type (
	Vector3 struct {
		X, Y, Z float32
	}

	Quaternion struct {
		X, Y, Z, W float32
	}

	IMUSample struct {
		AngularVelocity Vector3
		Acceleration    Vector3
		Orientation     Quaternion
	}
)

// DeviceState is the coarse operating state reported by the device.
type DeviceState uint8

const (
	StateConfiguration DeviceState = iota
	StateWaitForInputs
	StateStopLowCycle
	StateError
	StateRunning
)

func (s DeviceState) String() string {
	switch s {
	case StateConfiguration:
		return "configuration"
	case StateWaitForInputs:
		return "wait_for_inputs"
	case StateStopLowCycle:
		return "stop_low_cycle"
	case StateError:
		return "error"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

type GeneralStatus struct {
	RunModeActive        bool
	DeviceError          bool
	ApplicationError     bool
	ContaminationWarning bool
	ContaminationError   bool
	DeadZoneDetection    bool
	TemperatureWarning   bool
	WaitForInput         bool
	WaitForCluster       bool
}

type MonitoringCases struct {
	Case1, Case2, Case3, Case4 uint8
}

type DeviceStatus struct {
	State               DeviceState
	General             GeneralStatus
	COPNonSafetyRelated uint32
	COPSafetyRelated    uint32
	COPResetRequired    uint32
	ActiveMonitoring    MonitoringCases
	ContaminationLevel  uint8
}

// UniversalPins carries one boolean per universal I/O pin.
type UniversalPins struct {
	Pin5, Pin6, Pin7, Pin8 bool
}

type OSSDState struct {
	OSSD1A, OSSD1B bool
	OSSD2A, OSSD2B bool
}

type LocalIO struct {
	Configured        UniversalPins
	Direction         UniversalPins
	InputValue        UniversalPins
	OutputValue       UniversalPins
	OSSDs             OSSDState
	OSSDsDynCount     uint8
	OSSDsCRC          uint8
	OSSDsIOStatus     uint8
	DynamicSpeedA     uint16
	DynamicSpeedB     uint16
	DynamicValidFlags uint16
}

type ROIResult struct {
	DistanceSafe  bool
	DistanceValid bool
	ResultSafe    bool
	ResultValid   bool
	TaskResult    uint8
}

type ROISafety struct {
	InvalidDueToInvalidPixels              bool
	InvalidDueToVariance                   bool
	InvalidDueToOverexposure               bool
	InvalidDueToUnderexposure              bool
	InvalidDueToTemporalVariance           bool
	InvalidDueToOutsideOfMeasurementRange  bool
	InvalidDueToRetroReflectorInterference bool
	ContaminationError                     bool
	QualityClass                           uint8
	SlotActive                             bool
}

// ROI is the evaluation result of one region of interest.
type ROI struct {
	ID            uint8
	DistanceValue uint16
	Result        ROIResult
	Safety        ROISafety
}

// FieldInfo is the evaluation result of one safety field.
type FieldInfo struct {
	FieldID     uint16
	FieldSetID  uint16
	FieldActive uint8
	FieldResult uint8
	EvalMethod  uint8
}
