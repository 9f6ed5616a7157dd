// Package headerbar renders the single-line title bar.
package headerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/dancefloor/internal/ui/render"
	"github.com/llehouerou/dancefloor/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

const title = "dancefloor"

// Info is the session summary shown next to the title.
type Info struct {
	Started    time.Time
	Now        time.Time
	Played     int
	AutoQueue  bool
	Duplicates bool
	Tracks     int
	Unassigned int
	Scanning   bool
}

func flagStyle(on bool) lipgloss.Style {
	if on {
		return lipgloss.NewStyle().Foreground(styles.T().Success)
	}
	return styles.T().S().Subtle
}

func flag(name string, on bool) string {
	mark := "off"
	if on {
		mark = "on"
	}
	return flagStyle(on).Render(name + " " + mark)
}

// Render returns the header bar string for the given width.
func Render(info Info, width int) string {
	if width < 20 {
		return ""
	}

	t := styles.T()
	sep := t.S().Subtle.Render(" │ ")

	parts := []string{styles.Gradient(title, t.Primary, t.Secondary, true)}
	if !info.Started.IsZero() {
		parts = append(parts, t.S().Muted.Render(
			fmt.Sprintf("started %s · %s played",
				humanize.RelTime(info.Started, info.Now, "ago", "from now"),
				humanize.Comma(int64(info.Played)))))
	}
	parts = append(parts, flag("auto", info.AutoQueue)+" "+flag("dups", info.Duplicates))

	switch {
	case info.Scanning:
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Warning).Render("scanning…"))
	case info.Tracks > 0:
		lib := humanize.Comma(int64(info.Tracks)) + " tracks"
		if info.Unassigned > 0 {
			lib += fmt.Sprintf(" (%s unassigned)", humanize.Comma(int64(info.Unassigned)))
		}
		parts = append(parts, t.S().Muted.Render(lib))
	}

	content := render.Clip(strings.Join(parts, sep), width)
	if w := lipgloss.Width(content); w < width {
		content += strings.Repeat(" ", width-w)
	}
	return content
}
