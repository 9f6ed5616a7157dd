package dancepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/ui/render"
	"github.com/llehouerou/dancefloor/internal/ui/styles"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(styles.T().Secondary).
			Bold(true)

	leafStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))
)

// View renders the dance panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.InnerWidth()
	listHeight := m.ListHeight()

	header := headerStyle.Render(render.Fit("Dances", innerWidth))

	lines := make([]string, 0, max(listHeight, 0))
	for i := range listHeight {
		idx := i + m.cursor.Offset()
		if idx >= len(m.rows) {
			lines = append(lines, render.Blank(innerWidth))
			continue
		}
		lines = append(lines, m.renderRow(m.rows[idx], idx, innerWidth))
	}

	content := header + "\n" + render.Separator(innerWidth) + "\n" + strings.Join(lines, "\n")
	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// renderRow renders "  Waltz           ×3  12".
func (m Model) renderRow(r Row, idx, width int) string {
	indent := strings.Repeat("  ", r.Depth)
	stats := fmt.Sprintf("×%d %4d", r.Weight, r.Tracks)
	nameWidth := max(width-len(indent)-lipgloss.Width(stats)-1, 0)
	line := indent + render.Fit(r.Name, nameWidth) + " " + stats

	style := leafStyle
	switch {
	case r.Muted:
		style = mutedStyle
	case r.Kind == dancetree.KindCategory:
		style = categoryStyle
	}
	if idx == m.cursor.Pos() && m.IsFocused() {
		style = cursorStyle
	}
	return style.Render(render.Pad(line, width))
}
