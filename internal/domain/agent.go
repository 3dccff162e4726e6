package domain

import "context"

// StreamDelta is a single incremental chunk from a streaming agent response.
// Exactly one terminal delta arrives per stream: either Done is true
// (optionally carrying Meta) or Err is non-nil. The channel closes after it.
type StreamDelta struct {
	Content string        `json:"content,omitempty"`
	Done    bool          `json:"done,omitempty"`
	Meta    *ResponseMeta `json:"meta,omitempty"`
	Err     error         `json:"-"`
}

// ResponseMeta is end-of-stream metadata the backend attaches to a response.
type ResponseMeta struct {
	SessionID        string   `json:"uid"`
	AgentUsed        string   `json:"agent_used"`
	NewSession       bool     `json:"is_new_session"`
	SuggestedActions []string `json:"suggested_next_actions"`
}

// QueryRequest is one prompt sent to the agent backend. SessionID is empty
// on the first exchange; the backend mints one and returns it in Meta.
type QueryRequest struct {
	Prompt    string `json:"query"`
	SessionID string `json:"uid,omitempty"`
}

// AgentClient produces a lazy, finite, non-restartable stream of deltas for
// one prompt. A nil error with a channel that yields zero content deltas and
// a clean Done is a valid, empty response.
type AgentClient interface {
	Query(ctx context.Context, req QueryRequest) (<-chan StreamDelta, error)
	Name() string
}
