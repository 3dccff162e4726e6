package components

import (
	"strings"
	"testing"

	"opsdeck/internal/domain"
)

func testActions() []domain.QuickAction {
	return []domain.QuickAction{
		{Label: "Dashboard", Emoji: "📊", PromptTemplate: "Create a CPU usage dashboard"},
		{Label: "Errors", Emoji: "🔍", PromptTemplate: "Show dashboard errors"},
	}
}

func TestPromptAtReturnsFixedActions(t *testing.T) {
	m := NewActionBar(testActions())

	prompt, ok := m.PromptAt(1)
	if !ok || prompt != "Create a CPU usage dashboard" {
		t.Errorf("PromptAt(1) = %q, %v", prompt, ok)
	}
	prompt, ok = m.PromptAt(2)
	if !ok || prompt != "Show dashboard errors" {
		t.Errorf("PromptAt(2) = %q, %v", prompt, ok)
	}
}

func TestPromptAtOutOfRange(t *testing.T) {
	m := NewActionBar(testActions())
	for _, n := range []int{0, -1, 3, 10} {
		if _, ok := m.PromptAt(n); ok {
			t.Errorf("PromptAt(%d) should be out of range", n)
		}
	}
}

func TestSuggestionsNumberAfterActions(t *testing.T) {
	m := NewActionBar(testActions())
	m.SetSuggestions([]string{"Drill into error spikes", "Add an alert rule"})

	if m.Count() != 4 {
		t.Fatalf("Count = %d, want 4", m.Count())
	}
	prompt, ok := m.PromptAt(3)
	if !ok || prompt != "Drill into error spikes" {
		t.Errorf("PromptAt(3) = %q, %v", prompt, ok)
	}
	prompt, ok = m.PromptAt(4)
	if !ok || prompt != "Add an alert rule" {
		t.Errorf("PromptAt(4) = %q, %v", prompt, ok)
	}
}

func TestSuggestionsCappedAtThree(t *testing.T) {
	m := NewActionBar(nil)
	m.SetSuggestions([]string{"a", "b", "c", "d", "e"})
	if m.Count() != 3 {
		t.Errorf("Count = %d, want 3", m.Count())
	}
}

func TestDisabledBarRejectsActivation(t *testing.T) {
	m := NewActionBar(testActions())
	m.Disabled = true
	if _, ok := m.PromptAt(1); ok {
		t.Error("disabled bar must not return prompts")
	}
}

func TestViewListsChipsInOrder(t *testing.T) {
	m := NewActionBar(testActions())
	m.SetSuggestions([]string{"Check log volume"})
	m.SetWidth(200)

	view := m.View()
	for _, want := range []string{"1", "Dashboard", "2", "Errors", "3", "Check log volume"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
