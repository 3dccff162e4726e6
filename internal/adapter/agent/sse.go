package agent

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"opsdeck/internal/domain"
)

// maxDecodeFailures is the tolerance for consecutive malformed increments.
// A single bad payload is skipped; a run of them means the stream is
// garbage and the whole exchange fails.
const maxDecodeFailures = 3

// streamEvent is one decoded SSE data payload from the agent backend.
type streamEvent struct {
	Delta                string   `json:"delta"`
	Done                 bool     `json:"done"`
	Error                string   `json:"error"`
	UID                  string   `json:"uid"`
	AgentUsed            string   `json:"agent_used"`
	IsNewSession         bool     `json:"is_new_session"`
	SuggestedNextActions []string `json:"suggested_next_actions"`
}

// parseSSEStream reads SSE-formatted lines from body and converts each data
// payload into a StreamDelta, in arrival order and without buffering. The
// returned channel yields exactly one terminal delta (Done or Err) and is
// then closed; the body is closed with it.
func parseSSEStream(ctx context.Context, body io.ReadCloser) <-chan domain.StreamDelta {
	ch := make(chan domain.StreamDelta, 16)
	go func() {
		defer close(ch)
		defer body.Close()

		send := func(d domain.StreamDelta) bool {
			select {
			case ch <- d:
				return true
			case <-ctx.Done():
				return false
			}
		}

		decodeFailures := 0
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				return
			default:
			}

			line := scanner.Bytes()

			// Skip empty lines and comments.
			if len(line) == 0 || line[0] == ':' {
				continue
			}

			// We only care about "data: ..." lines.
			if !bytes.HasPrefix(line, []byte("data: ")) {
				continue
			}
			data := bytes.TrimPrefix(line, []byte("data: "))

			// Common termination signal.
			if bytes.Equal(data, []byte("[DONE]")) {
				send(domain.StreamDelta{Done: true})
				return
			}

			var ev streamEvent
			if err := json.Unmarshal(data, &ev); err != nil {
				// Skip a stray malformed increment, fail past the tolerance.
				decodeFailures++
				if decodeFailures > maxDecodeFailures {
					send(domain.StreamDelta{Err: fmt.Errorf("malformed stream: %w", err)})
					return
				}
				continue
			}
			decodeFailures = 0

			if ev.Error != "" {
				send(domain.StreamDelta{Err: fmt.Errorf("agent error: %s", ev.Error)})
				return
			}

			if ev.Done {
				send(domain.StreamDelta{Done: true, Meta: &domain.ResponseMeta{
					SessionID:        ev.UID,
					AgentUsed:        ev.AgentUsed,
					NewSession:       ev.IsNewSession,
					SuggestedActions: ev.SuggestedNextActions,
				}})
				return
			}

			if ev.Delta == "" {
				continue
			}
			if !send(domain.StreamDelta{Content: ev.Delta}) {
				return
			}
		}

		// The source closed without an end signal: either an I/O error or a
		// silent disconnect. Both are transport failures.
		if err := scanner.Err(); err != nil {
			send(domain.StreamDelta{Err: fmt.Errorf("read stream: %w", err)})
			return
		}
		send(domain.StreamDelta{Err: domain.ErrStreamInterrupted})
	}()
	return ch
}
