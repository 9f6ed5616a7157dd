package orchestrator

// State is the orchestrator's position in the playback state machine.
type State int

const (
	StateIdle            State = iota // nothing loaded
	StatePlaying                      // a track is playing or paused
	StateStoppedAtMarker              // halted at a stop marker, waiting for the user
	StateInDelay                      // counting down a delay marker
	StateInMessage                    // showing a message, with or without a countdown
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StatePlaying:
		return "Playing"
	case StateStoppedAtMarker:
		return "Stopped"
	case StateInDelay:
		return "Delay"
	case StateInMessage:
		return "Message"
	default:
		return "Unknown"
	}
}

// IsHalted reports whether playback waits for the user or a countdown.
func (s State) IsHalted() bool {
	return s == StateStoppedAtMarker || s == StateInDelay || s == StateInMessage
}
