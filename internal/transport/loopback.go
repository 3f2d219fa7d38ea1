// Package transport provides an in-process Transport. Each published
// message is serialized once and handed to every subscriber of its stream.
package transport

import (
	"sync"

	"codeberg.org/mutker/visionarypub/internal/errors"
	"codeberg.org/mutker/visionarypub/internal/logger"
	"codeberg.org/mutker/visionarypub/internal/msgs"
	"codeberg.org/mutker/visionarypub/internal/publish"
	"codeberg.org/mutker/visionarypub/internal/wire"
)

// Handler receives one serialized envelope. Handlers run on the
// publishing goroutine and must not block.
type Handler func(stream publish.Stream, data []byte)

type subscriber struct {
	id      uint64
	handler Handler
}

// Loopback is a Transport that delivers to in-process handlers.
type Loopback struct {
	mu     sync.RWMutex
	subs   map[publish.Stream][]subscriber
	nextID uint64
	log    logger.Logger
}

var _ publish.Transport = (*Loopback)(nil)

func NewLoopback(log logger.Logger) *Loopback {
	return &Loopback{
		subs: make(map[publish.Stream][]subscriber),
		log:  log,
	}
}

// Subscribe attaches h to stream and returns a function that detaches it.
// Calling the returned function more than once is a no-op.
func (l *Loopback) Subscribe(stream publish.Stream, h Handler) (cancel func()) {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.subs[stream] = append(l.subs[stream], subscriber{id: id, handler: h})
	l.mu.Unlock()

	l.log.Debug().
		Str("stream", stream.String()).
		Uint64("subscriber", id).
		Msg("Subscriber attached")

	var once sync.Once
	return func() {
		once.Do(func() { l.unsubscribe(stream, id) })
	}
}

func (l *Loopback) unsubscribe(stream publish.Stream, id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	subs := l.subs[stream]
	for i, s := range subs {
		if s.id == id {
			l.subs[stream] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(l.subs[stream]) == 0 {
		delete(l.subs, stream)
	}

	l.log.Debug().
		Str("stream", stream.String()).
		Uint64("subscriber", id).
		Msg("Subscriber detached")
}

func (l *Loopback) SubscriberCount(stream publish.Stream) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.subs[stream])
}

// Publish serializes msg and delivers it to the current subscribers of
// stream. Nothing is serialized when there are none.
func (l *Loopback) Publish(stream publish.Stream, msg msgs.Message) error {
	l.mu.RLock()
	subs := l.subs[stream]
	l.mu.RUnlock()

	if len(subs) == 0 {
		return nil
	}

	data, err := wire.Marshal(stream.String(), msg)
	if err != nil {
		return errors.New().Wrap(errors.ErrPublishFailed, err)
	}

	for _, s := range subs {
		s.handler(stream, data)
	}

	return nil
}
