package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opsdeck/internal/adapter/tui/theme"
)

// Ensure dashboardModel satisfies tea.Model.
var _ tea.Model = dashboardModel{}

// statCard is one metric tile on the demo dashboard.
type statCard struct {
	title string
	value string
	trend string
}

// dashboardModel is a small read-only host dashboard that the chat
// overlay mounts on. It stands in for whatever observability UI the
// process actually renders.
type dashboardModel struct {
	cards  []statCard
	width  int
	height int
	now    time.Time
}

type clockTickMsg time.Time

func newDashboard() dashboardModel {
	return dashboardModel{
		cards: []statCard{
			{title: "CPU", value: "41%", trend: "▁▂▃▅▃▂"},
			{title: "Memory", value: "6.2 GiB", trend: "▃▃▄▄▅▅"},
			{title: "Error rate", value: "0.3%", trend: "▁▁▂▁▁▁"},
			{title: "P99 latency", value: "231 ms", trend: "▂▃▂▅▂▂"},
		},
		now: time.Now(),
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (m dashboardModel) Init() tea.Cmd {
	return clockTick()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case clockTickMsg:
		m.now = time.Time(msg)
		return m, clockTick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	cardWidth := theme.Clamp(m.width/len(m.cards)-2, 14, 28)
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Width(cardWidth)

	cards := make([]string, 0, len(m.cards))
	for _, c := range m.cards {
		body := theme.TextMuted.Render(c.title) + "\n" +
			theme.Bold.Render(c.value) + "\n" +
			theme.TextInfo.Render(c.trend)
		cards = append(cards, cardStyle.Render(body))
	}

	header := theme.Bold.Render("opsdeck") +
		theme.TextMuted.Render(fmt.Sprintf("  %s  ·  q to quit", m.now.Format("15:04:05")))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	)
}
