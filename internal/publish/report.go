package publish

import (
	"time"

	"codeberg.org/mutker/visionarypub/internal/msgs"
	"go.uber.org/multierr"
)

// Outcome is the fate of one stream within one frame.
type Outcome uint8

const (
	OutcomeSkipped Outcome = iota
	OutcomePublished
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomePublished:
		return "published"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StreamResult records what happened to a stream. Err is set only when
// Outcome is OutcomeFailed.
type StreamResult struct {
	Stream  Stream
	Outcome Outcome
	Err     error
}

// Report summarizes one Dispatch call.
type Report struct {
	Header   msgs.Header
	Results  []StreamResult
	Duration time.Duration
}

// Outcome returns the recorded outcome of stream, or OutcomeSkipped if it
// was not part of the dispatch.
func (r *Report) Outcome(stream Stream) Outcome {
	for _, res := range r.Results {
		if res.Stream == stream {
			return res.Outcome
		}
	}
	return OutcomeSkipped
}

// Count returns how many streams ended with outcome o.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Err combines the failures of the frame, or returns nil.
func (r *Report) Err() error {
	var err error
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			err = multierr.Append(err, res.Err)
		}
	}
	return err
}
