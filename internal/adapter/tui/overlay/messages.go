package overlay

import "opsdeck/internal/domain"

// StreamOpenedMsg reports that the agent accepted the query and the
// response stream is live. ID is the session's stream tag for this
// exchange; every later stream message carries it so stale exchanges
// can be discarded.
type StreamOpenedMsg struct {
	ID string
	Ch <-chan domain.StreamDelta
}

// StreamFailedMsg reports that the stream could not be opened at all.
type StreamFailedMsg struct {
	ID  string
	Err error
}

// StreamDeltaMsg carries one increment from a live stream, plus the
// channel to keep receiving from.
type StreamDeltaMsg struct {
	ID    string
	Delta domain.StreamDelta
	Ch    <-chan domain.StreamDelta
}

// StreamClosedMsg reports that the stream channel closed. Arriving
// without a prior terminal delta means the transport dropped mid-stream.
type StreamClosedMsg struct {
	ID string
}
