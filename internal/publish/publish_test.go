package publish_test

import (
	stderrors "errors"
	"testing"
	"time"

	"codeberg.org/mutker/visionarypub/internal/encode"
	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/frame"
	"codeberg.org/mutker/visionarypub/internal/msgs"
	"codeberg.org/mutker/visionarypub/internal/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	stream publish.Stream
	msg    msgs.Message
}

type fakeTransport struct {
	subscribers map[publish.Stream]int
	failOn      map[publish.Stream]error
	sent        []published
}

func newFakeTransport(streams ...publish.Stream) *fakeTransport {
	t := &fakeTransport{
		subscribers: make(map[publish.Stream]int),
		failOn:      make(map[publish.Stream]error),
	}
	for _, s := range streams {
		t.subscribers[s] = 1
	}
	return t
}

func (t *fakeTransport) SubscriberCount(s publish.Stream) int { return t.subscribers[s] }

func (t *fakeTransport) Publish(s publish.Stream, msg msgs.Message) error {
	if err := t.failOn[s]; err != nil {
		return err
	}
	t.sent = append(t.sent, published{stream: s, msg: msg})
	return nil
}

func (t *fakeTransport) message(s publish.Stream) msgs.Message {
	for _, p := range t.sent {
		if p.stream == s {
			return p.msg
		}
	}
	return nil
}

// countingSnapshot records how often the point geometry is generated.
type countingSnapshot struct {
	*frame.Data
	geometryCalls int
}

func (c *countingSnapshot) GeneratePointGeometry() []frame.PointXYZ {
	c.geometryCalls++
	return c.Data.GeneratePointGeometry()
}

var testHeader = msgs.Header{
	Seq:     7,
	Stamp:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	FrameID: "camera",
}

func twoPixelFrame() *frame.Data {
	return &frame.Data{
		W:         2,
		H:         1,
		Distance:  []uint16{1000, 2000},
		Intensity: []uint16{10, 20},
		State:     []uint8{0, 1},
		Camera:    frame.Intrinsics{Fx: 1, Fy: 1},
		Points: []frame.PointXYZ{
			{X: 1, Y: 2, Z: 3},
			{X: 4, Y: 5, Z: 6},
		},
		Rois:      []frame.ROI{{ID: 1}, {ID: 2}},
		FieldList: []frame.FieldInfo{{FieldID: 5}},
	}
}

func TestStreamNames(t *testing.T) {
	streams := publish.AllStreams()
	require.Len(t, streams, 10)

	seen := make(map[string]bool)
	for _, s := range streams {
		name := s.String()
		assert.False(t, seen[name], "duplicate topic %q", name)
		seen[name] = true

		parsed, err := publish.ParseStream(name)
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "points", publish.StreamPoints.String())
	assert.Equal(t, "region_of_interest", publish.StreamROI.String())
	assert.Equal(t, "unknown", publish.Stream(200).String())
}

func TestParseStreamUnknown(t *testing.T) {
	_, err := publish.ParseStream("pointcloud")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidStream))
}

func TestGate(t *testing.T) {
	transport := newFakeTransport(publish.StreamDepth)
	gate := publish.NewGate(transport)

	assert.True(t, gate.ShouldEncode(publish.StreamDepth))
	assert.False(t, gate.ShouldEncode(publish.StreamPoints))
}

func TestDispatchAllStreams(t *testing.T) {
	transport := newFakeTransport(publish.AllStreams()...)
	d := publish.NewDispatcher(transport)

	report := d.Dispatch(testHeader, twoPixelFrame())

	require.NoError(t, report.Err())
	assert.Equal(t, 10, report.Count(publish.OutcomePublished))
	assert.Equal(t, testHeader, report.Header)
	require.Len(t, transport.sent, 10)

	for _, p := range transport.sent {
		assert.Equal(t, testHeader, p.msg.GetHeader(), "stream %s", p.stream)
	}

	cloud, ok := transport.message(publish.StreamPoints).(*msgs.PointCloud)
	require.True(t, ok)
	assert.Len(t, cloud.Data, 28)
	p, intensity, err := encode.ReadPoint(cloud, 1)
	require.NoError(t, err)
	assert.Equal(t, frame.PointXYZ{X: 4, Y: 5, Z: 6}, p)
	assert.Equal(t, uint16(20), intensity)

	depth, ok := transport.message(publish.StreamDepth).(*msgs.Image)
	require.True(t, ok)
	assert.Equal(t, msgs.Encoding16UC1, depth.Encoding)

	state, ok := transport.message(publish.StreamState).(*msgs.Image)
	require.True(t, ok)
	assert.Equal(t, msgs.Encoding8UC1, state.Encoding)

	rois, ok := transport.message(publish.StreamROI).(*msgs.ROIArray)
	require.True(t, ok)
	assert.Len(t, rois.ROIs, 2)
}

func TestDispatchIntegrityMismatchIsolated(t *testing.T) {
	snap := twoPixelFrame()
	snap.Points = append(snap.Points, frame.PointXYZ{X: 7, Y: 8, Z: 9})

	transport := newFakeTransport(publish.AllStreams()...)
	report := publish.NewDispatcher(transport).Dispatch(testHeader, snap)

	assert.Equal(t, publish.OutcomeFailed, report.Outcome(publish.StreamPoints))
	assert.Equal(t, 9, report.Count(publish.OutcomePublished))
	assert.Nil(t, transport.message(publish.StreamPoints))

	err := report.Err()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrEncodeFailed))
	assert.True(t, errors.HasCode(err, errors.ErrIntegrityMismatch))
}

func TestDispatchSizeMismatchIsolated(t *testing.T) {
	snap := twoPixelFrame()
	snap.State = []uint8{1}

	transport := newFakeTransport(publish.AllStreams()...)
	report := publish.NewDispatcher(transport).Dispatch(testHeader, snap)

	assert.Equal(t, publish.OutcomeFailed, report.Outcome(publish.StreamState))
	assert.Equal(t, 9, report.Count(publish.OutcomePublished))
	assert.True(t, errors.HasCode(report.Err(), errors.ErrSizeMismatch))
}

func TestDispatchWithoutDemand(t *testing.T) {
	snap := &countingSnapshot{Data: twoPixelFrame()}
	transport := newFakeTransport()

	report := publish.NewDispatcher(transport).Dispatch(testHeader, snap)

	assert.Equal(t, 10, report.Count(publish.OutcomeSkipped))
	assert.NoError(t, report.Err())
	assert.Empty(t, transport.sent)
	assert.Zero(t, snap.geometryCalls)
}

func TestDispatchOnlyDemandedStreams(t *testing.T) {
	snap := &countingSnapshot{Data: twoPixelFrame()}
	transport := newFakeTransport(publish.StreamPoints, publish.StreamIMU)

	report := publish.NewDispatcher(transport).Dispatch(testHeader, snap)

	assert.Equal(t, 2, report.Count(publish.OutcomePublished))
	assert.Equal(t, 8, report.Count(publish.OutcomeSkipped))
	assert.Equal(t, 1, snap.geometryCalls)
	assert.Equal(t, publish.OutcomeSkipped, report.Outcome(publish.StreamDepth))
}

func TestDispatchPublishFailure(t *testing.T) {
	transport := newFakeTransport(publish.AllStreams()...)
	transport.failOn[publish.StreamCameraIO] = stderrors.New("queue full")

	report := publish.NewDispatcher(transport).Dispatch(testHeader, twoPixelFrame())

	assert.Equal(t, publish.OutcomeFailed, report.Outcome(publish.StreamCameraIO))
	assert.Equal(t, 9, report.Count(publish.OutcomePublished))
	assert.True(t, errors.HasCode(report.Err(), errors.ErrPublishFailed))
	assert.ErrorContains(t, report.Err(), "queue full")
}

func TestDispatchAppliesMount(t *testing.T) {
	snap := twoPixelFrame()
	snap.Mount = frame.NewExtrinsics(0, 0, 1, 0, 0, 0)

	transport := newFakeTransport(publish.StreamPoints)
	report := publish.NewDispatcher(transport).Dispatch(testHeader, snap)
	require.NoError(t, report.Err())

	cloud := transport.message(publish.StreamPoints).(*msgs.PointCloud)
	p, _, err := encode.ReadPoint(cloud, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, p.X, 1e-6)
	assert.InDelta(t, 2, p.Y, 1e-6)
	assert.InDelta(t, 4, p.Z, 1e-6)
}

func TestDispatchMultipleFailures(t *testing.T) {
	snap := twoPixelFrame()
	snap.Intensity = []uint16{10}

	transport := newFakeTransport(publish.AllStreams()...)
	report := publish.NewDispatcher(transport).Dispatch(testHeader, snap)

	// Intensity feeds both the cloud and the intensity image.
	assert.Equal(t, 2, report.Count(publish.OutcomeFailed))
	assert.Equal(t, publish.OutcomeFailed, report.Outcome(publish.StreamPoints))
	assert.Equal(t, publish.OutcomeFailed, report.Outcome(publish.StreamIntensity))
	assert.True(t, errors.HasCode(report.Err(), errors.ErrIntegrityMismatch))
	assert.True(t, errors.HasCode(report.Err(), errors.ErrSizeMismatch))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "published", publish.OutcomePublished.String())
	assert.Equal(t, "skipped", publish.OutcomeSkipped.String())
	assert.Equal(t, "failed", publish.OutcomeFailed.String())
}
