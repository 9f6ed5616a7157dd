package queue

import (
	"fmt"
	"time"

	"github.com/llehouerou/dancefloor/internal/dancetree"
)

// MaxMessageLength is the longest message a MessageMarker keeps, in runes.
const MaxMessageLength = 60

// Kind identifies the concrete type of a queue item.
type Kind int

const (
	KindTrack Kind = iota
	KindAuto
	KindStop
	KindDelay
	KindMessage
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTrack:
		return "Track"
	case KindAuto:
		return "Auto"
	case KindStop:
		return "Stop"
	case KindDelay:
		return "Delay"
	case KindMessage:
		return "Message"
	default:
		return "Unknown"
	}
}

// Item is an entry of the playback queue. Items are compared by identity,
// so the same track queued twice yields two distinct items.
type Item interface {
	Kind() Kind
	Duration() time.Duration
	Label() string
}

// Track is a track added by the user.
type Track struct {
	Ref dancetree.TrackRef
}

func (*Track) Kind() Kind                { return KindTrack }
func (t *Track) Duration() time.Duration { return t.Ref.Duration }
func (t *Track) Label() string           { return trackLabel(t.Ref) }

// AutoTrack is a track suggested by the selector. It disappears on any
// manual queue edit.
type AutoTrack struct {
	Ref dancetree.TrackRef
}

func (*AutoTrack) Kind() Kind                { return KindAuto }
func (a *AutoTrack) Duration() time.Duration { return a.Ref.Duration }
func (a *AutoTrack) Label() string           { return trackLabel(a.Ref) + " (auto)" }

// StopMarker halts playback until the user resumes.
type StopMarker struct{}

func (*StopMarker) Kind() Kind              { return KindStop }
func (*StopMarker) Duration() time.Duration { return 0 }
func (*StopMarker) Label() string           { return "Stop" }

// DelayMarker halts playback for Delay, then resumes on its own.
type DelayMarker struct {
	Delay time.Duration
}

// NewDelay creates a delay marker lasting the given number of seconds.
func NewDelay(seconds int) *DelayMarker {
	return &DelayMarker{Delay: time.Duration(max(seconds, 0)) * time.Second}
}

func (*DelayMarker) Kind() Kind                { return KindDelay }
func (d *DelayMarker) Duration() time.Duration { return d.Delay }
func (d *DelayMarker) Label() string           { return fmt.Sprintf("Pause %s", d.Delay) }

// MessageMarker halts playback and shows Text. Without a delay it waits for
// the user like a StopMarker; with one it resumes like a DelayMarker.
type MessageMarker struct {
	Text  string
	Delay time.Duration // zero means wait for the user
}

// NewMessage creates a message marker. Text is truncated to
// MaxMessageLength runes; a non-positive delay means wait for the user.
func NewMessage(text string, delay time.Duration) *MessageMarker {
	if r := []rune(text); len(r) > MaxMessageLength {
		text = string(r[:MaxMessageLength])
	}
	return &MessageMarker{Text: text, Delay: max(delay, 0)}
}

// HasDelay reports whether the marker resumes playback on its own.
func (m *MessageMarker) HasDelay() bool { return m.Delay > 0 }

func (*MessageMarker) Kind() Kind                { return KindMessage }
func (m *MessageMarker) Duration() time.Duration { return m.Delay }
func (m *MessageMarker) Label() string           { return "Message: " + m.Text }

// TrackOf returns the track carried by a Track or AutoTrack item.
func TrackOf(it Item) (dancetree.TrackRef, bool) {
	switch v := it.(type) {
	case *Track:
		return v.Ref, true
	case *AutoTrack:
		return v.Ref, true
	default:
		return dancetree.TrackRef{}, false
	}
}

// haltsPlayback reports whether it stops the queue until the user acts.
func haltsPlayback(it Item) bool {
	switch v := it.(type) {
	case *StopMarker:
		return true
	case *MessageMarker:
		return !v.HasDelay()
	default:
		return false
	}
}

func trackLabel(t dancetree.TrackRef) string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Path
	}
}
