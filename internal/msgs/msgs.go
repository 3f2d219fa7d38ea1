// Package msgs holds the self-contained output message shapes produced for
// each frame. Messages never share backing storage with each other or with
// the frame they were encoded from.
package msgs

import "time"

// Message is implemented by every output message.
type Message interface {
	// TypeName returns the message schema name, e.g. "sensor_msgs/PointCloud2".
	TypeName() string
	GetHeader() Header
}

// Header is common to every message emitted for one frame.
type Header struct {
	Seq     uint32    `cbor:"seq"`
	Stamp   time.Time `cbor:"stamp"`
	FrameID string    `cbor:"frame_id"`
}

// PointField datatypes
const (
	PointFieldInt8    uint8 = 1
	PointFieldUint8   uint8 = 2
	PointFieldInt16   uint8 = 3
	PointFieldUint16  uint8 = 4
	PointFieldInt32   uint8 = 5
	PointFieldUint32  uint8 = 6
	PointFieldFloat32 uint8 = 7
	PointFieldFloat64 uint8 = 8
)

// PointField describes one named field inside a point record.
type PointField struct {
	Name     string `cbor:"name"`
	Offset   uint32 `cbor:"offset"`
	Datatype uint8  `cbor:"datatype"`
	Count    uint32 `cbor:"count"`
}

// PointCloud is a packed buffer of fixed-size point records.
type PointCloud struct {
	Header      Header       `cbor:"header"`
	Height      uint32       `cbor:"height"`
	Width       uint32       `cbor:"width"`
	Fields      []PointField `cbor:"fields"`
	IsBigEndian bool         `cbor:"is_bigendian"`
	PointStep   uint32       `cbor:"point_step"`
	RowStep     uint32       `cbor:"row_step"`
	Data        []byte       `cbor:"data"`
	IsDense     bool         `cbor:"is_dense"`
}

// Image encodings
const (
	Encoding8UC1  = "8UC1"
	Encoding16UC1 = "16UC1"
)

// Image is a row-major pixel buffer without padding.
type Image struct {
	Header      Header `cbor:"header"`
	Height      uint32 `cbor:"height"`
	Width       uint32 `cbor:"width"`
	Encoding    string `cbor:"encoding"`
	IsBigEndian bool   `cbor:"is_bigendian"`
	Step        uint32 `cbor:"step"`
	Data        []byte `cbor:"data"`
}

// CameraInfo carries the imager calibration. R and P are left zero.
type CameraInfo struct {
	Header          Header      `cbor:"header"`
	Height          uint32      `cbor:"height"`
	Width           uint32      `cbor:"width"`
	DistortionModel string      `cbor:"distortion_model"`
	D               []float64   `cbor:"d"`
	K               [9]float64  `cbor:"k"`
	R               [9]float64  `cbor:"r"`
	P               [12]float64 `cbor:"p"`
}

type Vector3 struct {
	X float64 `cbor:"x"`
	Y float64 `cbor:"y"`
	Z float64 `cbor:"z"`
}

type Quaternion struct {
	X float64 `cbor:"x"`
	Y float64 `cbor:"y"`
	Z float64 `cbor:"z"`
	W float64 `cbor:"w"`
}

type Imu struct {
	Header             Header     `cbor:"header"`
	Orientation        Quaternion `cbor:"orientation"`
	AngularVelocity    Vector3    `cbor:"angular_velocity"`
	LinearAcceleration Vector3    `cbor:"linear_acceleration"`
}

func (m *PointCloud) TypeName() string { return "sensor_msgs/PointCloud2" }
func (m *Image) TypeName() string      { return "sensor_msgs/Image" }
func (m *CameraInfo) TypeName() string { return "sensor_msgs/CameraInfo" }
func (m *Imu) TypeName() string        { return "sensor_msgs/Imu" }

func (m *PointCloud) GetHeader() Header { return m.Header }
func (m *Image) GetHeader() Header      { return m.Header }
func (m *CameraInfo) GetHeader() Header { return m.Header }
func (m *Imu) GetHeader() Header        { return m.Header }
