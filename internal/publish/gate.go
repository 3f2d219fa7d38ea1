package publish

// Gate decides whether a stream is worth encoding for the current frame.
type Gate struct {
	demand DemandCounter
}

func NewGate(demand DemandCounter) Gate {
	return Gate{demand: demand}
}

// ShouldEncode reports whether the stream has at least one subscriber.
func (g Gate) ShouldEncode(stream Stream) bool {
	return g.demand.SubscriberCount(stream) > 0
}
