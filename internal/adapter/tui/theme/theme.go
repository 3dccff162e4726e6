// Package theme is the overlay's visual design system and its stable
// styling contract: the exported styles below are bound to message role,
// session loading state, and panel open/closed state, so surrounding
// theming can restyle the overlay without touching its internals.
// All colors are adaptive and work on light and dark terminals; NO_COLOR
// is respected automatically by lipgloss via color profile detection.
package theme

import "github.com/charmbracelet/lipgloss"

// --- Adaptive color palette ---

var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#66bb6a"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#ef5350"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0277bd", Dark: "#4fc3f7"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#6a1b9a", Dark: "#ce93d8"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9e9e9e"}

	ColorBorder       = lipgloss.AdaptiveColor{Light: "#bdbdbd", Dark: "#616161"}
	ColorBorderActive = lipgloss.AdaptiveColor{Light: "#1565c0", Dark: "#42a5f5"}

	ColorBgAlt = lipgloss.AdaptiveColor{Light: "#f5f5f5", Dark: "#2d2d2d"}
	ColorFgDim = lipgloss.AdaptiveColor{Light: "#9e9e9e", Dark: "#757575"}
)

// --- Symbols ---

const (
	SymbolError   = "✗"
	SymbolSpinner = "⏳"
	SymbolBullet  = "•"
	SymbolCursor  = "▌"
	SymbolUser    = "You"
	SymbolBot     = "Copilot"
)

// --- Base styles ---

var (
	Bold = lipgloss.NewStyle().Bold(true)
	Dim  = lipgloss.NewStyle().Faint(true)

	TextError = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	TextInfo  = lipgloss.NewStyle().Foreground(ColorInfo)
	TextMuted = lipgloss.NewStyle().Foreground(ColorMuted)
)

// --- Message role styles ---

var (
	UserLabel = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	AssistantLabel = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	ErrorLabel = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	Timestamp = lipgloss.NewStyle().
			Foreground(ColorFgDim).
			Faint(true)

	StreamCursor = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Blink(true)
)

// --- Panel open/closed and loading state styles ---

var (
	// PanelBorder frames the open panel; PanelBorderLoading replaces it
	// while an exchange is in flight.
	PanelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelBorderLoading = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderActive)

	PanelTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	// Badge is the always-visible toggle control. BadgeOpen styles it
	// while the panel is open, BadgeLoading while an exchange streams
	// behind a closed panel.
	Badge = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorBgAlt).
		Padding(0, 1)

	BadgeOpen = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Background(ColorBgAlt).
			Bold(true).
			Padding(0, 1)

	BadgeLoading = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Background(ColorBgAlt).
			Padding(0, 1)
)

// --- Quick actions ---

var (
	ActionChip = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Background(ColorBgAlt).
			Padding(0, 1)

	ActionChipDisabled = lipgloss.NewStyle().
				Foreground(ColorFgDim).
				Background(ColorBgAlt).
				Faint(true).
				Padding(0, 1)

	SuggestionChip = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Background(ColorBgAlt).
			Padding(0, 1)
)

// --- Status line and input ---

var (
	StatusLine = lipgloss.NewStyle().
			Foreground(ColorFgDim).
			Background(ColorBgAlt).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	InputPrompt = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	InputPlaceholder = lipgloss.NewStyle().
				Foreground(ColorFgDim)
)

// Clamp returns v clamped to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
