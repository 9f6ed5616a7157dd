package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// fallbackColor stands in for colors that are not #rrggbb, such as ANSI
// palette indexes.
var fallbackColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Gradient colors each grapheme of text along an HCL blend from one color
// to the other.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}

	style := lipgloss.NewStyle().Bold(bold)
	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return style.Foreground(from).Render(text)
	}

	start, end := toColorful(from), toColorful(to)
	last := float64(len(clusters) - 1)

	var b strings.Builder
	for i, c := range clusters {
		col := start.BlendHcl(end, float64(i)/last).Clamped()
		b.WriteString(style.Foreground(lipgloss.Color(col.Hex())).Render(c))
	}
	return b.String()
}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return fallbackColor
	}
	return col
}
