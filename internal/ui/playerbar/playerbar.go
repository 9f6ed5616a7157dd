// Package playerbar renders the now-playing bar: the current track, a
// running delay or message countdown, and when the queue runs dry.
package playerbar

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/dancefloor/internal/orchestrator"
	"github.com/llehouerou/dancefloor/internal/player"
	"github.com/llehouerou/dancefloor/internal/queue"
	"github.com/llehouerou/dancefloor/internal/ui"
	"github.com/llehouerou/dancefloor/internal/ui/render"
)

// Height is the total height of the bar: top border, content, bottom border.
const Height = 3

// State holds everything needed to render the player bar.
type State struct {
	Status   orchestrator.Status
	Position time.Duration
	Duration time.Duration
	Finish   string // estimated clock time the queue runs dry
}

// NewState builds a State from the orchestrator status and the backend's
// position in the current track.
func NewState(st orchestrator.Status, backend player.Backend, now time.Time) State {
	s := State{Status: st}
	if st.Track != nil {
		s.Position = backend.Position()
		s.Duration = backend.Duration()
		if s.Duration == 0 {
			s.Duration = st.Track.Duration
		}
	}
	remaining := max(s.Duration-s.Position, 0)
	if st.Countdown.Active {
		remaining = st.Countdown.Remaining()
	}
	s.Finish = queue.FormatFinish(queue.EstimateFinish(st.Items, now, remaining))
	return s
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0)

	var left, right string
	st := s.Status
	switch {
	case st.Track != nil:
		left, right = renderTrack(s, innerWidth)
	case st.State == orchestrator.StateInDelay:
		left = delaySymbol + "  Pause"
		right = renderCountdown(st.Countdown, innerWidth/3)
	case st.State == orchestrator.StateInMessage:
		left = messageSymbol + "  " + messageStyle().Render(render.Sanitize(st.Message))
		if st.Countdown.Active {
			right = renderCountdown(st.Countdown, innerWidth/3)
		} else {
			right = metaStyle().Render("press n to continue")
		}
	case st.State == orchestrator.StateStoppedAtMarker:
		left = stopSymbol + "  Stopped at marker"
		right = metaStyle().Render("press n to continue")
	default:
		left = stopSymbol + "  Idle"
	}

	right += "   " + metaStyle().Render("ends "+s.Finish)
	left = render.Clip(left, innerWidth-lipgloss.Width(right)-1)
	return barStyle.Padding(0, 2).Width(width - 2).Render(render.Row(left, right, innerWidth))
}

// renderTrack lays out "▶  Waltz   Title · Artist" on the left and
// "━━━───  1:23 / 3:00" on the right.
func renderTrack(s State, innerWidth int) (left, right string) {
	st := s.Status
	status := playSymbol
	if st.Paused {
		status = pauseSymbol
	}

	title := st.Track.Title
	if title == "" {
		title = "Unknown Track"
	}
	info := titleStyle().Render(render.Sanitize(title))
	if st.Track.Artist != "" {
		info += artistStyle().Render(" · " + render.Sanitize(st.Track.Artist))
	}
	left = status + "  " + danceStyle().Render(render.Sanitize(st.Track.Dance)) + "   " + info

	timeStr := formatDuration(s.Position) + " / " + formatDuration(s.Duration)
	barWidth := max(innerWidth/4, ui.MinProgressBarWidth)
	right = renderBar(s.Position, s.Duration, barWidth) + "  " + timeStr
	return left, right
}

// renderCountdown shows the time left of a delay or message countdown.
func renderCountdown(cd orchestrator.Countdown, width int) string {
	if !cd.Active {
		return ""
	}
	label := formatDuration(cd.Remaining()) + " left"
	barWidth := max(min(width-lipgloss.Width(label)-2, 30), ui.MinProgressBarWidth)
	return renderBar(cd.Elapsed, cd.Total, barWidth) + "  " + label
}
