// Package player plays audio files for the orchestrator.
package player

import (
	"path/filepath"
	"strings"
	"time"
)

// Backend is the audio output used by the orchestrator. Implementations
// serialize their operations; Play, Stop and Clear never overlap.
type Backend interface {
	// Play stops whatever is playing and starts path. A returned error
	// means nothing is playing.
	Play(path string) error
	Stop()
	// Clear stops playback and releases decoder resources.
	Clear()
	Pause()
	Resume()
	// Toggle switches between Playing and Paused; no-op when Stopped.
	Toggle()
	State() State
	Position() time.Duration
	Duration() time.Duration
	// Finished receives a value each time a track plays to its end.
	Finished() <-chan struct{}
	// PlayingChanged receives true when playback starts and false when it
	// stops or pauses.
	PlayingChanged() <-chan bool
}

var supportedExtensions = map[string]bool{
	".mp3":  true,
	".flac": true,
	".wav":  true,
}

// IsMusicFile reports whether path has an extension the player decodes.
func IsMusicFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}
