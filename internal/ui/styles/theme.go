// Package styles holds the palette and the lipgloss styles shared by the
// panels.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is a color palette plus the styles derived from it.
type Theme struct {
	Primary   lipgloss.Color // focus, now playing
	Secondary lipgloss.Color // markers, countdowns

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color
	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles Styles
}

// Styles are the text styles built from a Theme.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Cursor  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// floor is a dark palette with a magenta and teal accent that reads well
// from a distance in a dim room.
var floor = newTheme(Theme{
	Primary:     "#e879f9",
	Secondary:   "#2dd4bf",
	FgBase:      "#d4d4d8",
	FgMuted:     "#8b8b93",
	FgSubtle:    "#5c5c66",
	BgCursor:    "#2e2e38",
	Border:      "#4b4b55",
	BorderFocus: "#e879f9",
	Success:     "#4ade80",
	Error:       "#f87171",
	Warning:     "#fbbf24",
})

func newTheme(t Theme) *Theme {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	t.styles = Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor:  lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
	return &t
}

// T returns the active theme.
func T() *Theme {
	return floor
}

// S returns the theme's text styles.
func (t *Theme) S() *Styles {
	return &t.styles
}
