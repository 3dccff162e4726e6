package components

import (
	"strings"
	"testing"
	"time"

	"opsdeck/internal/domain"
)

func newSizedTranscript() Transcript {
	tr := NewTranscript()
	tr.SetSize(60, 20)
	return tr
}

func TestEmptyTranscriptShowsPrompt(t *testing.T) {
	tr := newSizedTranscript()
	if !strings.Contains(tr.View(), "Ask the copilot") {
		t.Error("empty transcript should show the hint")
	}
}

func TestTranscriptRendersRolesAndContent(t *testing.T) {
	tr := newSizedTranscript()
	tr.SetMessages([]domain.Message{
		{ID: "m1", Role: domain.RoleUser, Content: "cpu usage?", Status: domain.StatusComplete, CreatedAt: time.Now()},
		{ID: "m2", Role: domain.RoleAssistant, Content: "CPU is at 40%.", Status: domain.StatusComplete, CreatedAt: time.Now()},
	})

	view := tr.View()
	for _, want := range []string{"You", "Copilot", "cpu usage?", "CPU is at 40%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStreamingMessageShowsCursor(t *testing.T) {
	tr := newSizedTranscript()
	tr.SetMessages([]domain.Message{
		{ID: "m1", Role: domain.RoleUser, Content: "hi", Status: domain.StatusComplete},
		{ID: "m2", Role: domain.RoleAssistant, Content: "Hel", Status: domain.StatusStreaming},
	})
	if !strings.Contains(tr.View(), "▌") {
		t.Error("streaming message should render the cursor")
	}

	tr.SetMessages([]domain.Message{
		{ID: "m1", Role: domain.RoleUser, Content: "hi", Status: domain.StatusComplete},
		{ID: "m2", Role: domain.RoleAssistant, Content: "Hello", Status: domain.StatusComplete},
	})
	if strings.Contains(tr.View(), "▌") {
		t.Error("settled message should drop the cursor")
	}
}

func TestErroredMessageShowsReasonAndRetryHint(t *testing.T) {
	tr := newSizedTranscript()
	tr.SetMessages([]domain.Message{
		{ID: "m1", Role: domain.RoleUser, Content: "ping", Status: domain.StatusComplete},
		{ID: "m2", Role: domain.RoleAssistant, Status: domain.StatusErrored, FailReason: "stream interrupted"},
	})

	view := tr.View()
	if !strings.Contains(view, "stream interrupted") {
		t.Error("errored message should show its reason")
	}
	if !strings.Contains(view, "alt+r") {
		t.Error("errored message should show the retry hint")
	}
}

func TestCacheInvalidatesOnContentGrowth(t *testing.T) {
	tr := newSizedTranscript()
	msg := domain.Message{ID: "m1", Role: domain.RoleAssistant, Content: "Hel", Status: domain.StatusStreaming}
	tr.SetMessages([]domain.Message{msg})

	msg.Content = "Hello world"
	tr.SetMessages([]domain.Message{msg})
	if !strings.Contains(tr.View(), "Hello world") {
		t.Error("grown content should invalidate the cached render")
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, ""},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
	}
	for _, tc := range cases {
		if got := RelativeTime(tc.t); got != tc.want {
			t.Errorf("RelativeTime(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
}

func TestWrapTextBreaksLongLines(t *testing.T) {
	wrapped := wrapText("alpha beta gamma delta epsilon", 12)
	for _, line := range strings.Split(wrapped, "\n") {
		if len([]rune(line)) > 12 {
			t.Errorf("line too long: %q", line)
		}
	}
	if strings.ReplaceAll(wrapped, "\n", " ") != "alpha beta gamma delta epsilon" {
		t.Errorf("wrap lost content: %q", wrapped)
	}
}
