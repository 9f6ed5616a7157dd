package player

import "fmt"

// State is the backend playback state. Play moves any state to Playing,
// Stop, Clear and the end of a track move it to Stopped, and pausing only
// moves between Playing and Paused.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

var stateNames = [...]string{
	Stopped: "Stopped",
	Playing: "Playing",
	Paused:  "Paused",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// withPause returns the state after pausing or resuming from s. The bool
// is false when s has no loaded track in the opposite pause state.
func (s State) withPause(pause bool) (State, bool) {
	switch {
	case pause && s == Playing:
		return Paused, true
	case !pause && s == Paused:
		return Playing, true
	}
	return s, false
}
