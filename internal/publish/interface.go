// Package publish turns one frame snapshot into the per-stream output
// messages and hands each one to a transport, skipping streams nobody is
// listening to.
package publish

import "codeberg.org/mutker/visionarypub/internal/msgs"

// DemandCounter reports how many subscribers are attached to a stream.
type DemandCounter interface {
	SubscriberCount(stream Stream) int
}

// Transport delivers finished messages. Publish receives only complete
// messages.
type Transport interface {
	DemandCounter
	Publish(stream Stream, msg msgs.Message) error
}
