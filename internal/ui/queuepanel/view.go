package queuepanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dancefloor/internal/queue"
	"github.com/llehouerou/dancefloor/internal/ui/render"
	"github.com/llehouerou/dancefloor/internal/ui/styles"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.InnerWidth()
	listHeight := m.ListHeight()

	header := headerStyle.Render(render.Fit(m.headerText(), innerWidth))
	content := header + "\n" + render.Separator(innerWidth) + "\n" + m.renderItems(innerWidth, listHeight)

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

func (m Model) headerText() string {
	var total time.Duration
	for _, it := range m.items {
		total += it.Duration()
	}
	if total == 0 {
		return fmt.Sprintf("Queue (%d)", len(m.items))
	}
	return fmt.Sprintf("Queue (%d · %s)", len(m.items), formatDuration(total))
}

func (m Model) renderItems(innerWidth, listHeight int) string {
	lines := make([]string, 0, max(listHeight, 0))
	for i := range listHeight {
		idx := i + m.cursor.Offset()
		if idx >= len(m.items) {
			lines = append(lines, render.Blank(innerWidth))
			continue
		}
		lines = append(lines, m.renderItem(m.items[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderItem renders "♪ Artist - Title        3:12".
func (m Model) renderItem(it queue.Item, idx, width int) string {
	symbol, style := itemDecoration(it)

	dur := ""
	if d := it.Duration(); d > 0 {
		dur = formatDuration(d)
	}
	durWidth := lipgloss.Width(dur)
	labelWidth := max(width-2-durWidth-1, 0)

	line := symbol + " " + render.Fit(it.Label(), labelWidth) + " " + dur
	line = render.Pad(line, width)

	if idx == m.cursor.Pos() && m.IsFocused() {
		return cursorStyle.Render(line)
	}
	return style.Render(line)
}

func itemDecoration(it queue.Item) (string, lipgloss.Style) {
	switch it.Kind() {
	case queue.KindAuto:
		return autoSymbol, autoStyle
	case queue.KindStop:
		return stopSymbol, markerStyle
	case queue.KindDelay:
		return delaySymbol, markerStyle
	case queue.KindMessage:
		return messageSymbol, markerStyle
	default:
		return trackSymbol, trackStyle
	}
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
