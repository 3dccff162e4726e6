package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressEnter(alt bool) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter, Alt: alt}
}

func typeText(t *testing.T, m InputArea, s string) InputArea {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestEnterSubmitsTrimmedValue(t *testing.T) {
	m := NewInputArea()
	m = typeText(t, m, "  show cpu dashboards  ")

	m, cmd := m.Update(pressEnter(false))
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	msg, ok := cmd().(InputSubmitMsg)
	if !ok {
		t.Fatalf("expected InputSubmitMsg, got %T", cmd())
	}
	if msg.Value != "show cpu dashboards" {
		t.Errorf("Value = %q", msg.Value)
	}
	if m.Value() != "" {
		t.Errorf("buffer not cleared after submit: %q", m.Value())
	}
	if m.Height() != MinInputRows {
		t.Errorf("height after submit = %d, want %d", m.Height(), MinInputRows)
	}
}

func TestEnterOnEmptyBufferIsNoOp(t *testing.T) {
	m := NewInputArea()

	for _, buffer := range []string{"", "   ", "\n\n"} {
		m.Reset()
		if buffer != "" {
			m.Textarea.InsertString(buffer)
		}
		var cmd tea.Cmd
		m, cmd = m.Update(pressEnter(false))
		if cmd != nil {
			t.Errorf("buffer %q: expected no command on empty submit", buffer)
		}
	}
}

func TestAltEnterInsertsNewline(t *testing.T) {
	m := NewInputArea()
	m = typeText(t, m, "line one")

	m, cmd := m.Update(pressEnter(true))
	if cmd != nil {
		t.Fatal("alt+enter must not submit")
	}
	m = typeText(t, m, "line two")

	if m.Value() != "line one\nline two" {
		t.Errorf("Value = %q", m.Value())
	}
	if m.Height() != 2 {
		t.Errorf("height = %d, want 2", m.Height())
	}
}

func TestHeightForContentClamps(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{"", MinInputRows},
		{"one line", MinInputRows},
		{"a\nb\nc", 3},
		{"a\nb\nc\nd\ne\nf\ng\nh", MaxInputRows},
	}
	for _, tc := range cases {
		if got := HeightForContent(tc.value); got != tc.want {
			t.Errorf("HeightForContent(%q) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestDisabledInputIgnoresKeys(t *testing.T) {
	m := NewInputArea()
	m = typeText(t, m, "pending question")
	m.SetEnabled(false)

	m, cmd := m.Update(pressEnter(false))
	if cmd != nil {
		t.Fatal("disabled input must not submit")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if m.Value() != "pending question" {
		t.Errorf("disabled input mutated buffer: %q", m.Value())
	}

	m.SetEnabled(true)
	_, cmd = m.Update(pressEnter(false))
	if cmd == nil {
		t.Error("re-enabled input should submit the preserved buffer")
	}
}
