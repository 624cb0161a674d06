// Package ui drives the guided session flow as a full-screen terminal
// program. One model per screen; the root model swaps screens as the
// session advances.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("#d97706") // amber
	colorBright = lipgloss.Color("#fafaf9")
	colorText   = lipgloss.Color("#d6d3d1")
	colorMuted  = lipgloss.Color("#78716c")
	colorBorder = lipgloss.Color("#44403c")
	colorDanger = lipgloss.Color("#f87171")
	colorOK     = lipgloss.Color("#4ade80")
)

// Styles is the shared style set every screen renders with.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Modal        lipgloss.Style
	BadgeDone    lipgloss.Style
	BadgePending lipgloss.Style
	Announce     lipgloss.Style
	Help         lipgloss.Style
}

func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2)
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(colorBright),
		Subtitle: lipgloss.NewStyle().Foreground(colorText),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(colorMuted),
		Text:     lipgloss.NewStyle().Foreground(colorText),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Accent:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(colorDanger),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(colorOK),

		Card:         card,
		CardSelected: card.BorderForeground(colorAccent),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 3),
		BadgeDone: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#1c1917")).Background(colorOK).Padding(0, 1),
		BadgePending: lipgloss.NewStyle().Bold(true).
			Foreground(colorText).Background(colorBorder).Padding(0, 1),
		Announce: lipgloss.NewStyle().Italic(true).Foreground(colorBright).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(colorAccent).PaddingLeft(2),
		Help: lipgloss.NewStyle().Foreground(colorMuted),
	}
}
