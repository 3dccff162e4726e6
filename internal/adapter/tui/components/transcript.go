package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"opsdeck/internal/adapter/tui/theme"
	"opsdeck/internal/domain"
)

// Transcript is the scrollable conversation view. It owns no conversation
// state: the overlay projects the session's message log into it after
// every transition, and it only renders. Auto-scroll is active while the
// user is at the bottom and pauses when they scroll up.
type Transcript struct {
	Viewport viewport.Model

	messages   []domain.Message
	ready      bool
	atBottom   bool
	width      int
	mdRenderer *glamour.TermRenderer
	cache      map[string]renderedMessage
}

// renderedMessage caches one message's rendered body. Terminal messages
// never change, so the cache is keyed by id and invalidated on content
// growth or status change (streaming appends).
type renderedMessage struct {
	contentLen int
	status     domain.MessageStatus
	out        string
}

// NewTranscript creates an empty transcript. The viewport is initialized
// lazily on the first SetSize.
func NewTranscript() Transcript {
	return Transcript{
		atBottom: true,
		cache:    map[string]renderedMessage{},
	}
}

// SetSize sets the viewport dimensions and re-renders at the new width.
func (m *Transcript) SetSize(w, h int) {
	if w != m.width {
		m.width = w
		m.mdRenderer = nil // force re-creation at the new width
		m.cache = map[string]renderedMessage{}
	}
	if !m.ready {
		m.Viewport = viewport.New(w, h)
		m.Viewport.MouseWheelEnabled = true
		m.Viewport.MouseWheelDelta = 3
		m.ready = true
	} else {
		m.Viewport.Width = w
		m.Viewport.Height = h
	}
	m.refreshContent()
}

// SetMessages replaces the projected message log and re-renders,
// scrolling to the bottom if auto-scroll is active.
func (m *Transcript) SetMessages(msgs []domain.Message) {
	m.messages = msgs
	m.refreshContent()
	if m.atBottom {
		m.Viewport.GotoBottom()
	}
}

// Update handles viewport scrolling and tracks auto-scroll state.
func (m Transcript) Update(msg tea.Msg) (Transcript, tea.Cmd) {
	if !m.ready {
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	m.atBottom = m.Viewport.AtBottom()
	return m, cmd
}

// View renders the transcript viewport.
func (m Transcript) View() string {
	if !m.ready {
		return ""
	}
	return m.Viewport.View()
}

func (m *Transcript) refreshContent() {
	if !m.ready {
		return
	}
	m.Viewport.SetContent(m.renderAll())
}

func (m *Transcript) renderAll() string {
	if len(m.messages) == 0 {
		return theme.TextMuted.Render("  Ask the copilot about your dashboards.")
	}

	contentWidth := m.width - 2
	if contentWidth < 20 {
		contentWidth = 20
	}

	var sb strings.Builder
	for i := range m.messages {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderMessage(&m.messages[i], contentWidth))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *Transcript) renderMessage(msg *domain.Message, width int) string {
	header := m.roleLabel(msg) + " " + theme.Timestamp.Render(RelativeTime(msg.CreatedAt))

	cached, ok := m.cache[msg.ID]
	if ok && cached.contentLen == len(msg.Content) && cached.status == msg.Status {
		return header + "\n" + cached.out
	}

	var body string
	switch {
	case msg.Status == domain.StatusErrored:
		reason := msg.FailReason
		if reason == "" {
			reason = "response failed"
		}
		body = theme.TextError.Render(wrapText(reason, width)) + "\n" +
			theme.TextMuted.Render("alt+r to retry")
		if msg.Content != "" {
			body = wrapText(msg.Content, width) + "\n" + body
		}
	case msg.Status == domain.StatusStreaming:
		body = wrapText(msg.Content, width) + theme.StreamCursor.Render(theme.SymbolCursor)
	case msg.Role == domain.RoleAssistant:
		body = strings.TrimRight(m.renderMarkdown(msg.Content, width), "\n")
	default:
		body = wrapText(msg.Content, width)
	}

	m.cache[msg.ID] = renderedMessage{contentLen: len(msg.Content), status: msg.Status, out: body}
	return header + "\n" + body
}

func (m *Transcript) roleLabel(msg *domain.Message) string {
	switch {
	case msg.Status == domain.StatusErrored:
		return theme.ErrorLabel.Render(theme.SymbolError + " " + theme.SymbolBot)
	case msg.Role == domain.RoleUser:
		return theme.UserLabel.Render(theme.SymbolUser)
	default:
		return theme.AssistantLabel.Render(theme.SymbolBot)
	}
}

func (m *Transcript) renderMarkdown(content string, width int) string {
	if content == "" {
		return theme.TextMuted.Render("(empty response)")
	}
	if m.mdRenderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		m.mdRenderer = r
	}
	rendered, err := m.mdRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// RelativeTime returns a human-readable relative time string.
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2 15:04")
	}
}

// wrapText wraps text to the given width with a rune-based break search,
// safe for multibyte UTF-8.
func wrapText(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	var lines []string
	for len(runes) > width {
		idx := -1
		for i := width - 1; i > 0; i-- {
			if runes[i] == ' ' {
				idx = i
				break
			}
		}
		if idx <= 0 {
			idx = width
		}
		lines = append(lines, string(runes[:idx]))
		runes = runes[idx:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}
	return strings.Join(lines, "\n")
}
