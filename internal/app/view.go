package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dancefloor/internal/ui/headerbar"
	"github.com/llehouerou/dancefloor/internal/ui/layout"
	"github.com/llehouerou/dancefloor/internal/ui/overlay"
	"github.com/llehouerou/dancefloor/internal/ui/playerbar"
	"github.com/llehouerou/dancefloor/internal/ui/render"
	"github.com/llehouerou/dancefloor/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := headerbar.Render(m.headerInfo(), m.width)

	var body string
	if layout.IsNarrowMode(m.width) {
		body = lipgloss.JoinVertical(lipgloss.Left, m.dances.View(), m.queue.View())
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.dances.View(), m.queue.View())
	}
	switch {
	case m.confirm.Active():
		body = overlay.Center(body, m.confirm.View(), m.width, m.bodyHeight())
	case m.showHelp:
		body = overlay.Center(body, m.help.View(), m.width, m.bodyHeight())
	}

	bar := playerbar.Render(playerbar.NewState(m.status, m.deps.Backend, m.now), m.width)

	view := header + "\n" + body + "\n" + bar + "\n" + m.footer()
	return enforceHeight(view, m.height)
}

func (m Model) headerInfo() headerbar.Info {
	info := headerbar.Info{
		Now:        m.now,
		AutoQueue:  m.status.AutoQueue,
		Duplicates: m.duplicates,
		Tracks:     m.tracks,
		Unassigned: m.unassigned,
		Scanning:   m.scanning,
	}
	if s := m.deps.Session; s != nil {
		info.Started = s.Started()
		info.Played = s.Len()
	}
	return info
}

// footer shows the prompt, scan progress or the newest toast.
func (m Model) footer() string {
	t := styles.T()
	switch {
	case m.prompt.Active():
		return render.Clip(m.prompt.View(), m.width)
	case len(m.toasts) > 0:
		last := m.toasts[len(m.toasts)-1]
		style := t.S().Success
		if last.level == toastError {
			style = t.S().Error
		}
		text := render.Sanitize(last.text)
		if n := len(m.toasts); n > 1 {
			text += fmt.Sprintf("  (+%d, ctrl+x dismiss)", n-1)
		}
		return render.Clip(style.Render(text), m.width)
	case m.scanning:
		p := m.scanProgress
		text := "Scanning music directory…"
		if p.Total > 0 {
			text = fmt.Sprintf("Reading tags %d/%d", p.Current, p.Total)
		}
		return render.Clip(t.S().Muted.Render(text), m.width)
	}
	return render.Clip(t.S().Subtle.Render("? help · tab switch panel · q quit"), m.width)
}

// enforceHeight ensures the view has exactly the specified number of lines.
func enforceHeight(view string, targetHeight int) string {
	lines := strings.Split(view, "\n")
	if len(lines) > targetHeight {
		lines = lines[:targetHeight]
	}
	for len(lines) < targetHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
