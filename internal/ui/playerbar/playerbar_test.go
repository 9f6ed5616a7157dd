package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/orchestrator"
	"github.com/llehouerou/dancefloor/internal/player"
	"github.com/llehouerou/dancefloor/internal/queue"
)

var waltz = dancetree.TrackRef{
	Dance:    "Waltz",
	Artist:   "Strauss",
	Title:    "Blue Danube",
	Path:     "/m/danube.mp3",
	Duration: 3 * time.Minute,
}

func TestNewState_FinishEstimate(t *testing.T) {
	backend := player.NewMock()
	backend.SetPosition(time.Minute)
	backend.SetDuration(3 * time.Minute)

	now := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)
	st := orchestrator.Status{
		State: orchestrator.StatePlaying,
		Track: &waltz,
		Items: []queue.Item{
			&queue.Track{Ref: dancetree.TrackRef{Path: "/m/b.mp3", Duration: 2 * time.Minute}},
			&queue.StopMarker{},
			&queue.Track{Ref: dancetree.TrackRef{Path: "/m/c.mp3", Duration: time.Hour}},
		},
	}

	s := NewState(st, backend, now)
	if s.Position != time.Minute || s.Duration != 3*time.Minute {
		t.Errorf("position/duration = %v/%v", s.Position, s.Duration)
	}
	// 2 minutes left on the current track plus 2 before the stop marker
	if s.Finish != "21:04" {
		t.Errorf("Finish = %q, want %q", s.Finish, "21:04")
	}
}

func TestNewState_FallsBackToTrackDuration(t *testing.T) {
	backend := player.NewMock()
	st := orchestrator.Status{State: orchestrator.StatePlaying, Track: &waltz}

	s := NewState(st, backend, time.Now())
	if s.Duration != waltz.Duration {
		t.Errorf("Duration = %v, want %v", s.Duration, waltz.Duration)
	}
}

func TestNewState_Idle(t *testing.T) {
	s := NewState(orchestrator.Status{}, player.NewMock(), time.Now())
	if s.Finish != queue.FinishSentinel {
		t.Errorf("Finish = %q, want %q", s.Finish, queue.FinishSentinel)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{
			name:  "idle",
			state: State{Finish: queue.FinishSentinel},
			want:  []string{"Idle", "ends --:--"},
		},
		{
			name: "playing",
			state: State{
				Status:   orchestrator.Status{State: orchestrator.StatePlaying, Track: &waltz},
				Position: 83 * time.Second,
				Duration: 3 * time.Minute,
				Finish:   "21:02",
			},
			want: []string{playSymbol, "Waltz", "Blue Danube", "Strauss", "1:23 / 3:00", "ends 21:02"},
		},
		{
			name: "paused",
			state: State{
				Status: orchestrator.Status{State: orchestrator.StatePlaying, Track: &waltz, Paused: true},
			},
			want: []string{pauseSymbol},
		},
		{
			name: "delay",
			state: State{Status: orchestrator.Status{
				State:     orchestrator.StateInDelay,
				Countdown: orchestrator.Countdown{Active: true, Total: 30 * time.Second, Elapsed: 10 * time.Second},
			}},
			want: []string{"Pause", "0:20 left"},
		},
		{
			name: "message waiting",
			state: State{Status: orchestrator.Status{
				State:   orchestrator.StateInMessage,
				Message: "Prize giving",
			}},
			want: []string{"Prize giving", "press n to continue"},
		},
		{
			name:  "stopped at marker",
			state: State{Status: orchestrator.Status{State: orchestrator.StateStoppedAtMarker}},
			want:  []string{"Stopped at marker"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ansi.Strip(Render(tt.state, 120))
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("Render() missing %q in:\n%s", w, out)
				}
			}
			if lines := strings.Count(out, "\n") + 1; lines != Height {
				t.Errorf("Render() has %d lines, want %d", lines, Height)
			}
		})
	}
}
