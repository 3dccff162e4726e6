package overlay

import (
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"opsdeck/internal/domain"
	"opsdeck/internal/usecase"
)

// Options configures a mounted overlay. Zero-value fields fall back to
// the defaults below.
type Options struct {
	Agent        domain.AgentClient
	Logger       *slog.Logger
	ToggleKey    string
	BadgeLabel   string
	PanelWidth   int
	QuickActions []domain.QuickAction

	// Session lets a caller supply pre-existing conversation state. When
	// nil a fresh session is created.
	Session *usecase.Session
}

const (
	defaultToggleKey  = "ctrl+g"
	defaultBadgeLabel = "💬 Copilot"
	defaultPanelWidth = 64
)

var (
	mountMu sync.Mutex
	mounted *Model
)

// Mount wraps host with the chat overlay and returns the combined model.
// It is idempotent: while an overlay is mounted, further calls return the
// existing one unchanged, whatever host or options they carry. Unmount
// releases it.
func Mount(host tea.Model, opts Options) tea.Model {
	mountMu.Lock()
	defer mountMu.Unlock()

	if mounted != nil {
		return *mounted
	}

	if opts.ToggleKey == "" {
		opts.ToggleKey = defaultToggleKey
	}
	if opts.BadgeLabel == "" {
		opts.BadgeLabel = defaultBadgeLabel
	}
	if opts.PanelWidth <= 0 {
		opts.PanelWidth = defaultPanelWidth
	}
	if len(opts.QuickActions) == 0 {
		opts.QuickActions = domain.DefaultQuickActions()
	}

	m := newModel(host, opts)
	mounted = &m
	return *mounted
}

// Unmount releases the mounted overlay so a later Mount starts fresh.
func Unmount() {
	mountMu.Lock()
	mounted = nil
	mountMu.Unlock()
}

// IsMounted reports whether an overlay is currently mounted.
func IsMounted() bool {
	mountMu.Lock()
	defer mountMu.Unlock()
	return mounted != nil
}
