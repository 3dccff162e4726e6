// Package overlay mounts the copilot chat panel on top of a host
// dashboard model. The host keeps running underneath: the overlay
// intercepts its toggle key, docks a panel beside the host while open,
// and forwards everything else.
package overlay

import (
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opsdeck/internal/adapter/tui/components"
	"opsdeck/internal/adapter/tui/theme"
	"opsdeck/internal/domain"
	"opsdeck/internal/usecase"
)

// Below this terminal width the docked panel would starve the host, so
// the open overlay takes the whole screen instead.
const minSplitWidth = 80

// Model wraps a host model with the chat overlay. All conversation state
// lives in the session; the model only projects it.
type Model struct {
	host    tea.Model
	session *usecase.Session
	agent   domain.AgentClient
	logger  *slog.Logger

	input      components.InputArea
	actions    components.ActionBar
	transcript components.Transcript
	status     components.StatusLine
	spinner    spinner.Model

	toggleKey  string
	badgeLabel string
	panelWidth int

	width  int
	height int
}

func newModel(host tea.Model, opts Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.TextInfo

	session := opts.Session
	if session == nil {
		session = usecase.NewSession()
	}

	return Model{
		host:       host,
		session:    session,
		agent:      opts.Agent,
		logger:     opts.Logger,
		input:      components.NewInputArea(),
		actions:    components.NewActionBar(opts.QuickActions),
		transcript: components.NewTranscript(),
		status: components.NewStatusLine([]components.KeyHint{
			{Key: "enter", Desc: "send"},
			{Key: "alt+enter", Desc: "newline"},
			{Key: "alt+1..9", Desc: "actions"},
			{Key: "esc", Desc: "close"},
		}),
		spinner:    sp,
		toggleKey:  opts.ToggleKey,
		badgeLabel: opts.BadgeLabel,
		panelWidth: opts.PanelWidth,
	}
}

// Session exposes the conversation state, mainly for tests.
func (m Model) Session() *usecase.Session { return m.session }

func (m Model) Init() tea.Cmd {
	return m.host.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		var cmd tea.Cmd
		m.host, cmd = m.host.Update(m.hostSize())
		return m, cmd

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		if m.session.Open() {
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(msg)
			return m, cmd
		}
		return m.forward(msg)

	case components.InputSubmitMsg:
		return m.submit(msg.Value)

	case StreamOpenedMsg:
		if msg.ID != m.session.ActiveStreamID() {
			return m, nil
		}
		return m, awaitDeltaCmd(msg.ID, msg.Ch)

	case StreamFailedMsg:
		if m.logger != nil {
			m.logger.Error("query failed", "error", msg.Err)
		}
		m.session.Fail(msg.ID, msg.Err)
		m.sync()
		return m, nil

	case StreamDeltaMsg:
		return m.updateDelta(msg)

	case StreamClosedMsg:
		// Only reachable when the transport dropped before a terminal
		// delta; after a normal end this id is already stale.
		m.session.Fail(msg.ID, domain.ErrStreamInterrupted)
		m.sync()
		return m, nil

	case spinner.TickMsg:
		if !m.session.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.forward(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == m.toggleKey {
		m.session.Toggle()
		m.layout()
		var cmd tea.Cmd
		m.host, cmd = m.host.Update(m.hostSize())
		m.sync()
		return m, cmd
	}

	if !m.session.Open() {
		return m.forward(msg)
	}

	switch key {
	case "esc":
		m.session.SetOpen(false)
		var cmd tea.Cmd
		m.host, cmd = m.host.Update(m.hostSize())
		return m, cmd
	case "alt+r":
		return m.retry()
	case "alt+c":
		m.session.Clear()
		m.sync()
		return m, nil
	}

	if msg.Alt && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
		n, _ := strconv.Atoi(string(msg.Runes))
		if prompt, ok := m.actions.PromptAt(n); ok {
			return m.submit(prompt)
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	// Typed runes belong to the compose box; only navigation keys reach
	// the transcript viewport.
	if msg.Type != tea.KeyRunes {
		m.transcript, cmd = m.transcript.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// submit runs typed input, quick actions, and suggestions through the one
// session entry point, then opens the stream for the returned id.
func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	streamID, err := m.session.Submit(text)
	if err != nil {
		return m, nil
	}
	m.sync()
	return m, tea.Batch(
		openStreamCmd(m.agent, streamID, text, m.session.BackendSession()),
		m.spinner.Tick,
	)
}

func (m Model) retry() (tea.Model, tea.Cmd) {
	errored, ok := m.session.LastErrored()
	if !ok {
		return m, nil
	}
	streamID, err := m.session.Retry(errored.ID)
	if err != nil {
		return m, nil
	}
	msgs := m.session.Messages()
	prompt := msgs[len(msgs)-2].Content
	m.sync()
	return m, tea.Batch(
		openStreamCmd(m.agent, streamID, prompt, m.session.BackendSession()),
		m.spinner.Tick,
	)
}

func (m Model) updateDelta(msg StreamDeltaMsg) (tea.Model, tea.Cmd) {
	delta := msg.Delta
	switch {
	case delta.Err != nil:
		m.session.Fail(msg.ID, delta.Err)
		m.sync()
		return m, nil
	case delta.Done:
		m.session.End(msg.ID, delta.Meta)
		m.sync()
		return m, nil
	default:
		m.session.AppendToken(msg.ID, delta.Content)
		m.sync()
		if msg.ID != m.session.ActiveStreamID() {
			return m, nil
		}
		return m, awaitDeltaCmd(msg.ID, msg.Ch)
	}
}

// forward passes a message to the host; the overlay stays transparent to
// everything it does not own.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.host, cmd = m.host.Update(msg)
	return m, cmd
}

// sync projects the session into the view components and re-issues the
// delta wait when a stream is live.
func (m *Model) sync() {
	loading := m.session.Loading()
	m.input.SetEnabled(!loading)
	m.actions.Disabled = loading
	m.transcript.SetMessages(m.session.Messages())

	if meta := m.session.Meta(); meta != nil {
		m.status.AgentUsed = meta.AgentUsed
		m.actions.SetSuggestions(meta.SuggestedActions)
	} else {
		m.actions.SetSuggestions(nil)
	}
	if loading {
		m.status.Extra = m.spinner.View() + " thinking"
	} else {
		m.status.Extra = ""
	}
}

// hostSize returns the window size the host should lay itself out for,
// given the overlay's current footprint.
func (m Model) hostSize() tea.WindowSizeMsg {
	if m.session.Open() && m.width >= minSplitWidth {
		return tea.WindowSizeMsg{Width: m.width - m.effectivePanelWidth(), Height: m.height}
	}
	return tea.WindowSizeMsg{Width: m.width, Height: m.height - 1}
}

func (m Model) effectivePanelWidth() int {
	if m.width < minSplitWidth {
		return m.width
	}
	return theme.Clamp(m.panelWidth, 40, m.width/2)
}

// layout resizes the panel components for the current terminal size.
func (m *Model) layout() {
	pw := m.effectivePanelWidth()
	inner := pw - 4 // panel border and padding

	m.input.SetWidth(inner)
	m.actions.SetWidth(inner)
	m.status.SetWidth(inner)

	// title + actions + input + status + border rows
	chrome := 4 + m.input.Height() + 2
	m.transcript.SetSize(inner, theme.Clamp(m.height-chrome, 3, m.height))
}

func (m Model) View() string {
	if m.width == 0 {
		return m.host.View()
	}

	if !m.session.Open() {
		return m.host.View() + "\n" + m.badgeLine()
	}

	panel := m.panelView()
	if m.width < minSplitWidth {
		return panel
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.host.View(), panel)
}

func (m Model) badgeLine() string {
	style := theme.Badge
	label := m.badgeLabel
	if m.session.Loading() {
		style = theme.BadgeLoading
		label += " " + theme.SymbolSpinner
	}
	hint := theme.TextMuted.Render(" " + m.toggleKey + " to open")
	return style.Render(label) + hint
}

func (m Model) panelView() string {
	border := theme.PanelBorder
	if m.session.Loading() {
		border = theme.PanelBorderLoading
	}

	title := theme.PanelTitle.Render(m.badgeLabel)
	if name := m.agentName(); name != "" {
		title += theme.TextMuted.Render(" · " + name)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.transcript.View(),
		m.actions.View(),
		m.input.View(),
		m.status.View(),
	)

	return border.Width(m.effectivePanelWidth() - 2).Render(body)
}

func (m Model) agentName() string {
	if m.agent == nil {
		return ""
	}
	return m.agent.Name()
}
