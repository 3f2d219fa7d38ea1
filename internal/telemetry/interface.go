// Package telemetry stores the outcome of every dispatched frame in a
// local sqlite database. It never stores message contents.
package telemetry

import (
	"context"
	"time"

	"codeberg.org/mutker/visionarypub/internal/publish"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, report *publish.Report) error
	Close() error
	// RunID identifies this process in stored rows.
	RunID() string
}

// Repository defines the interface for telemetry data storage
type Repository interface {
	Record(record *FrameRecord) error
	Close() error
}

// FrameRecord is the stored summary of one dispatched frame.
type FrameRecord struct {
	RunID     string
	Seq       uint32
	Stamp     time.Time
	Duration  time.Duration
	Published int
	Skipped   int
	Failed    int
	Streams   []StreamRecord
}

// StreamRecord is the stored outcome of one stream within a frame.
type StreamRecord struct {
	Stream    string
	Outcome   string
	ErrorCode string
	Error     string
}
