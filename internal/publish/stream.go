package publish

import (
	"strings"

	"codeberg.org/mutker/visionarypub/internal/errors"
)

// Stream identifies one output channel.
type Stream uint8

const (
	StreamCameraInfo Stream = iota
	StreamPoints
	StreamDepth
	StreamIntensity
	StreamState
	StreamIMU
	StreamDeviceStatus
	StreamCameraIO
	StreamROI
	StreamFields

	streamCount
)

var topicNames = [streamCount]string{
	StreamCameraInfo:   "camera_info",
	StreamPoints:       "points",
	StreamDepth:        "depth",
	StreamIntensity:    "intensity",
	StreamState:        "state",
	StreamIMU:          "imu_data",
	StreamDeviceStatus: "device_status",
	StreamCameraIO:     "camera_io",
	StreamROI:          "region_of_interest",
	StreamFields:       "fields",
}

// String returns the topic name of the stream.
func (s Stream) String() string {
	if s >= streamCount {
		return "unknown"
	}
	return topicNames[s]
}

// AllStreams returns every stream in dispatch order.
func AllStreams() []Stream {
	out := make([]Stream, 0, streamCount)
	for s := Stream(0); s < streamCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParseStream maps a topic name back to its stream.
func ParseStream(name string) (Stream, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for s, topic := range topicNames {
		if topic == name {
			return Stream(s), nil
		}
	}

	return 0, errors.New().WithData(errors.ErrInvalidStream, struct {
		Name string
	}{
		Name: name,
	})
}
