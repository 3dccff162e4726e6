package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"opsdeck/internal/adapter/tui/theme"
)

// KeyHint is a single key binding shown in the status line.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders the bottom line of the panel: key hints on the left,
// the responding agent and transient status text on the right.
type StatusLine struct {
	Hints     []KeyHint
	AgentUsed string
	Extra     string
	width     int
}

func NewStatusLine(hints []KeyHint) StatusLine {
	return StatusLine{Hints: hints}
}

func (m *StatusLine) SetWidth(w int) {
	m.width = w
}

func (m StatusLine) View() string {
	parts := make([]string, 0, len(m.Hints))
	for _, h := range m.Hints {
		parts = append(parts, theme.StatusKey.Render(h.Key)+" "+h.Desc)
	}
	left := strings.Join(parts, "  ")

	var right string
	switch {
	case m.Extra != "":
		right = m.Extra
	case m.AgentUsed != "":
		right = "agent: " + m.AgentUsed
	}

	line := left
	if right != "" {
		gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
		if gap > 1 {
			line = left + strings.Repeat(" ", gap) + right
		} else {
			line = left + "  " + right
		}
	}

	return theme.StatusLine.Render(lipgloss.NewStyle().MaxWidth(m.width).Render(line))
}
