package playerbar

import (
	"fmt"
	"strings"
	"time"
)

// renderBar renders a bar of width cells filled in proportion to done/total.
func renderBar(done, total time.Duration, width int) string {
	var ratio float64
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	filled := max(min(int(float64(width)*ratio), width), 0)
	return progressBarFilled().Render(strings.Repeat("━", filled)) +
		progressBarEmpty().Render(strings.Repeat("─", width-filled))
}

func formatDuration(d time.Duration) string {
	d = max(d, 0)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
