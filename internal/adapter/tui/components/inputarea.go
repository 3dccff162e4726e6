// Package components holds the overlay's reusable view models.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opsdeck/internal/adapter/tui/theme"
)

// Compose box height bounds, in rows. Height is a pure function of the
// buffered content: it grows and shrinks with the line count.
const (
	MinInputRows = 1
	MaxInputRows = 5
)

// InputSubmitMsg is sent when the user presses Enter to submit input.
// Value is already trimmed and never empty.
type InputSubmitMsg struct {
	Value string
}

// InputArea wraps a textarea with submit handling and loading disablement.
type InputArea struct {
	Textarea textarea.Model
	Enabled  bool
	width    int
}

// NewInputArea creates an input area with sensible defaults.
func NewInputArea() InputArea {
	ta := textarea.New()
	ta.Placeholder = "Ask about dashboards, logs, alerts..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0 // no limit
	ta.SetHeight(MinInputRows)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Prompt = theme.InputPrompt
	ta.FocusedStyle.Placeholder = theme.InputPlaceholder
	ta.Focus()

	return InputArea{
		Textarea: ta,
		Enabled:  true,
	}
}

// HeightForContent returns the compose box height for the given buffer:
// one row per line, clamped to [MinInputRows, MaxInputRows].
func HeightForContent(value string) int {
	lines := strings.Count(value, "\n") + 1
	return theme.Clamp(lines, MinInputRows, MaxInputRows)
}

// SetWidth updates the textarea width.
func (m *InputArea) SetWidth(w int) {
	m.width = w
	m.Textarea.SetWidth(w - 2) // account for border/padding
}

// SetEnabled enables or disables input. Disabled while the session is
// loading; re-enabled on completion or error.
func (m *InputArea) SetEnabled(enabled bool) {
	m.Enabled = enabled
	if enabled {
		m.Textarea.Focus()
	} else {
		m.Textarea.Blur()
	}
}

// Reset clears the buffer and shrinks the box back to its minimum height.
func (m *InputArea) Reset() {
	m.Textarea.Reset()
	m.Textarea.SetHeight(MinInputRows)
}

// Value returns the current buffer.
func (m InputArea) Value() string {
	return m.Textarea.Value()
}

// Update handles key events. Plain Enter submits; Alt+Enter inserts a
// newline. An empty or whitespace-only buffer makes Enter a no-op.
func (m InputArea) Update(msg tea.Msg) (InputArea, tea.Cmd) {
	if !m.Enabled {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		if keyMsg.Alt {
			m.Textarea.InsertString("\n")
			m.Textarea.SetHeight(HeightForContent(m.Textarea.Value()))
			return m, nil
		}
		value := strings.TrimSpace(m.Textarea.Value())
		if value == "" {
			return m, nil
		}
		m.Reset()
		return m, func() tea.Msg {
			return InputSubmitMsg{Value: value}
		}
	}

	var cmd tea.Cmd
	m.Textarea, cmd = m.Textarea.Update(msg)
	m.Textarea.SetHeight(HeightForContent(m.Textarea.Value()))
	return m, cmd
}

// Height returns the current box height in rows.
func (m InputArea) Height() int {
	return m.Textarea.Height()
}

// View renders the compose box, dimmed while disabled.
func (m InputArea) View() string {
	if !m.Enabled {
		return theme.Dim.Render("> waiting for response...")
	}
	return m.Textarea.View()
}
