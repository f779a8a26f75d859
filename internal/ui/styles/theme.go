// Package styles holds the colour palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette of the interface.
type Theme struct {
	Accent    lipgloss.Color // focused borders, playing track
	AccentAlt lipgloss.Color // header gradient end

	Fg       lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color
	BgCursor lipgloss.Color

	Border lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	styles *Styles
}

// Styles are the styles built from a Theme.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Cursor  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

var defaultTheme = Theme{
	Accent:    lipgloss.Color("#7dcfff"),
	AccentAlt: lipgloss.Color("#bb9af7"),

	Fg:       lipgloss.Color("#c8c8c8"),
	FgMuted:  lipgloss.Color("#858585"),
	FgSubtle: lipgloss.Color("#5a5a5a"),
	BgCursor: lipgloss.Color("#2f3342"),

	Border: lipgloss.Color("#4a4a4a"),

	Success: lipgloss.Color("#9ece6a"),
	Error:   lipgloss.Color("#f7768e"),
}

// T returns the theme in use.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles of the theme, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		base := lipgloss.NewStyle().Foreground(t.Fg)
		t.styles = &Styles{
			Base:    base,
			Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
			Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
			Title:   base.Bold(true),
			Playing: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
			Cursor:  lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.Fg),
			Success: lipgloss.NewStyle().Foreground(t.Success),
			Error:   lipgloss.NewStyle().Foreground(t.Error),
		}
	}
	return t.styles
}

// Panel returns the bordered style of a browser panel.
func Panel(focused bool) lipgloss.Style {
	border := T().Border
	if focused {
		border = T().Accent
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
