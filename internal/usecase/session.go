// Package usecase implements the chat session state machine. It has no
// presentation dependency: the TUI layer projects session state and calls
// the entry points below, always from a single goroutine (the Bubble Tea
// update loop), so no locking is needed.
package usecase

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"opsdeck/internal/domain"
)

// Session holds one conversation: the ordered message log, the panel's
// open flag, and the in-flight exchange state.
//
// Invariants:
//   - Loading() == true iff ActiveStreamID() != ""
//   - at most one message has status streaming, and it is the last one
//   - messages are append-only; terminal messages are never mutated
type Session struct {
	messages []domain.Message
	open     bool
	loading  bool

	// activeStreamID tags the in-flight exchange. Transitions carrying a
	// different id are stale (from an abandoned exchange) and are ignored.
	activeStreamID string

	// backendSession is the backend's conversation uid, adopted from the
	// first response's metadata and echoed on every later query.
	backendSession string

	meta *domain.ResponseMeta // metadata of the last completed exchange
}

// NewSession creates an empty, closed, idle session.
func NewSession() *Session {
	return &Session{}
}

// Submit starts a new exchange: it appends a complete user message and an
// empty streaming assistant placeholder, marks the session loading, and
// returns the fresh stream id the consumer must tag every delta with.
//
// Empty or whitespace-only text returns domain.ErrEmptySubmission.
// Submitting while an exchange is in flight returns
// domain.ErrExchangeInFlight; both leave the session untouched. Callers are
// already disabled while loading, this re-enforces the rule.
func (s *Session) Submit(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrEmptySubmission
	}
	if s.loading {
		return "", domain.ErrExchangeInFlight
	}

	// A new exchange invalidates the previous one's metadata: its
	// suggested follow-ups no longer apply to the conversation tail.
	s.meta = nil

	now := time.Now()
	s.messages = append(s.messages, domain.Message{
		ID:        ulid.Make().String(),
		Role:      domain.RoleUser,
		Content:   text,
		CreatedAt: now,
		Status:    domain.StatusComplete,
	})
	s.messages = append(s.messages, domain.Message{
		ID:        ulid.Make().String(),
		Role:      domain.RoleAssistant,
		CreatedAt: now,
		Status:    domain.StatusStreaming,
	})

	s.activeStreamID = ulid.Make().String()
	s.loading = true
	return s.activeStreamID, nil
}

// AppendToken appends one token to the active assistant message. Tokens are
// strictly appended in arrival order; a stale or unknown stream id is a
// no-op. Appending is the only mutation a streaming message permits.
func (s *Session) AppendToken(streamID, token string) {
	if streamID == "" || streamID != s.activeStreamID {
		return
	}
	last := s.lastStreaming()
	if last == nil {
		return
	}
	last.Content += token
}

// End settles the active exchange successfully: the assistant message is
// frozen as complete (possibly with empty content) and the session returns
// to idle. meta may be nil.
func (s *Session) End(streamID string, meta *domain.ResponseMeta) {
	if streamID == "" || streamID != s.activeStreamID {
		return
	}
	if last := s.lastStreaming(); last != nil {
		last.Status = domain.StatusComplete
	}
	if meta != nil {
		s.meta = meta
		if meta.SessionID != "" {
			s.backendSession = meta.SessionID
		}
	}
	s.activeStreamID = ""
	s.loading = false
}

// Fail settles the active exchange with a transport failure: the assistant
// message is frozen as errored, preserving whatever partial content already
// streamed in. The session returns to idle and stays usable.
func (s *Session) Fail(streamID string, reason error) {
	if streamID == "" || streamID != s.activeStreamID {
		return
	}
	if last := s.lastStreaming(); last != nil {
		last.Status = domain.StatusErrored
		if reason != nil {
			last.FailReason = reason.Error()
		}
	}
	s.activeStreamID = ""
	s.loading = false
}

// Retry resubmits the user message preceding the given errored assistant
// message, through the same Submit transition. The errored message itself
// is not mutated. Returns domain.ErrExchangeInFlight while loading.
func (s *Session) Retry(erroredID string) (string, error) {
	if s.loading {
		return "", domain.ErrExchangeInFlight
	}
	for i := len(s.messages) - 1; i >= 0; i-- {
		m := s.messages[i]
		if m.ID != erroredID || m.Status != domain.StatusErrored {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if s.messages[j].Role == domain.RoleUser {
				return s.Submit(s.messages[j].Content)
			}
		}
		break
	}
	return "", domain.ErrEmptySubmission
}

// LastErrored returns the most recent errored assistant message, if any.
func (s *Session) LastErrored() (domain.Message, bool) {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Status == domain.StatusErrored {
			return s.messages[i], true
		}
	}
	return domain.Message{}, false
}

// Messages returns the conversation log, oldest first. The slice is a
// read-only view; callers must not mutate it.
func (s *Session) Messages() []domain.Message {
	return s.messages
}

// Len returns the number of messages.
func (s *Session) Len() int { return len(s.messages) }

// Clear drops the conversation log when idle. While an exchange is in
// flight it is a no-op, matching the submit guard.
func (s *Session) Clear() {
	if s.loading {
		return
	}
	s.messages = nil
	s.meta = nil
}

// Open reports whether the panel is open. The flag is presentation state
// only: closing the panel does not cancel an in-flight stream, which keeps
// updating the session invisibly until the panel reopens.
func (s *Session) Open() bool { return s.open }

// SetOpen sets the panel open flag.
func (s *Session) SetOpen(open bool) { s.open = open }

// Toggle flips the panel open flag and returns the new value.
func (s *Session) Toggle() bool {
	s.open = !s.open
	return s.open
}

// Loading reports whether an exchange is in flight.
func (s *Session) Loading() bool { return s.loading }

// ActiveStreamID returns the in-flight stream id, or "" when idle.
func (s *Session) ActiveStreamID() string { return s.activeStreamID }

// BackendSession returns the backend conversation uid, or "" before the
// first completed exchange.
func (s *Session) BackendSession() string { return s.backendSession }

// Meta returns the metadata of the last completed exchange, or nil.
func (s *Session) Meta() *domain.ResponseMeta { return s.meta }

// lastStreaming returns the active streaming assistant message. It is
// always the last message while an exchange is in flight.
func (s *Session) lastStreaming() *domain.Message {
	if len(s.messages) == 0 {
		return nil
	}
	last := &s.messages[len(s.messages)-1]
	if last.Status != domain.StatusStreaming {
		return nil
	}
	return last
}
