package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"opsdeck/internal/adapter/tui/theme"
	"opsdeck/internal/domain"
)

// ActionBar renders the fixed quick actions plus the backend's transient
// suggested follow-ups as numbered chips. Activating chip N (alt+N)
// submits its prompt through the same session entry point as typed input,
// so the bar is disabled whenever the input is.
type ActionBar struct {
	actions     []domain.QuickAction
	suggestions []string
	Disabled    bool
	width       int
}

// NewActionBar creates a bar over a fixed, ordered set of quick actions.
func NewActionBar(actions []domain.QuickAction) ActionBar {
	return ActionBar{actions: actions}
}

// SetWidth updates the available width.
func (m *ActionBar) SetWidth(w int) {
	m.width = w
}

// SetSuggestions replaces the transient follow-ups. At most three are kept,
// mirroring the backend's suggestion cap. Suggestions from the previous
// exchange are dropped on the next one.
func (m *ActionBar) SetSuggestions(s []string) {
	if len(s) > 3 {
		s = s[:3]
	}
	m.suggestions = s
}

// Count returns the number of activatable chips.
func (m ActionBar) Count() int {
	return len(m.actions) + len(m.suggestions)
}

// PromptAt returns the prompt for chip n (1-based), in display order:
// fixed actions first, then suggestions. ok is false out of range or
// while disabled.
func (m ActionBar) PromptAt(n int) (string, bool) {
	if m.Disabled || n < 1 || n > m.Count() {
		return "", false
	}
	if n <= len(m.actions) {
		return m.actions[n-1].PromptTemplate, true
	}
	return m.suggestions[n-len(m.actions)-1], true
}

// View renders the chips on a single line, truncated to the bar width.
func (m ActionBar) View() string {
	if m.Count() == 0 {
		return ""
	}

	chip := theme.ActionChip
	suggestion := theme.SuggestionChip
	if m.Disabled {
		chip = theme.ActionChipDisabled
		suggestion = theme.ActionChipDisabled
	}

	var chips []string
	n := 1
	for _, a := range m.actions {
		label := fmt.Sprintf("%d %s %s", n, a.Emoji, a.Label)
		chips = append(chips, chip.Render(label))
		n++
	}
	for _, s := range m.suggestions {
		chips = append(chips, suggestion.Render(fmt.Sprintf("%d %s", n, s)))
		n++
	}

	line := strings.Join(chips, " ")
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}
