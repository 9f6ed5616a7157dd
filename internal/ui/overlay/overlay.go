// Package overlay draws boxes on top of already rendered views.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Center draws box in the middle of a width x height base view. Lines of
// the base outside the box keep their content and styling.
func Center(base, box string, width, height int) string {
	boxLines := strings.Split(box, "\n")
	boxWidth := 0
	for _, l := range boxLines {
		boxWidth = max(boxWidth, ansi.StringWidth(l))
	}
	top := max((height-len(boxLines))/2, 0)
	left := max((width-boxWidth)/2, 0)
	return Place(base, box, left, top, width)
}

// Place draws box with its top-left corner at column x of line y.
// The box is clipped to the base width and height.
func Place(base, box string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, boxLine := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		if x >= width {
			break
		}

		line := baseLines[row]
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}

		end := min(x+ansi.StringWidth(boxLine), width)
		result := ansi.Cut(line, 0, x) + ansi.Cut(boxLine, 0, end-x)
		if end < width {
			result += ansi.Cut(line, end, width)
		}
		baseLines[row] = result
	}

	return strings.Join(baseLines, "\n")
}
