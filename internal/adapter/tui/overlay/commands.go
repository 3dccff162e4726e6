package overlay

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"opsdeck/internal/domain"
)

// openStreamCmd issues the query and hands the live stream channel back
// to the update loop. The context is not tied to the panel's visibility:
// closing the panel leaves the stream running.
func openStreamCmd(agent domain.AgentClient, streamID, prompt, sessionUID string) tea.Cmd {
	return func() tea.Msg {
		ch, err := agent.Query(context.Background(), domain.QueryRequest{
			Prompt:    prompt,
			SessionID: sessionUID,
		})
		if err != nil {
			return StreamFailedMsg{ID: streamID, Err: err}
		}
		return StreamOpenedMsg{ID: streamID, Ch: ch}
	}
}

// awaitDeltaCmd blocks on the next increment. The update loop re-issues
// it after each delta until a terminal one arrives, so the stream is
// consumed lazily, one receive per loop iteration.
func awaitDeltaCmd(streamID string, ch <-chan domain.StreamDelta) tea.Cmd {
	return func() tea.Msg {
		delta, ok := <-ch
		if !ok {
			return StreamClosedMsg{ID: streamID}
		}
		return StreamDeltaMsg{ID: streamID, Delta: delta, Ch: ch}
	}
}
