// Package queue holds the ordered playback queue of tracks and markers.
package queue

import (
	"errors"
	"slices"
	"time"

	"github.com/llehouerou/dancefloor/internal/dancetree"
)

var (
	ErrQueueFull  = errors.New("queue is full")
	ErrDuplicate  = errors.New("track already queued or played")
	ErrAutoManual = errors.New("auto tracks cannot be added manually")
)

// Options configures queue limits.
type Options struct {
	MaxItems        int  // <= 0 means unbounded
	AllowDuplicates bool // allow re-queueing queued, playing or played tracks
}

// History reports tracks already played this session.
type History interface {
	HasBeenPlayed(t dancetree.TrackRef) bool
}

// Queue is the upcoming playback sequence. It holds at most one AutoTrack.
// It is not safe for concurrent use.
type Queue struct {
	items      []Item
	opts       Options
	nowPlaying *dancetree.TrackRef
	history    History

	onFront   func(Item)
	onChanged func()
}

// New creates an empty queue.
func New(opts Options) *Queue {
	return &Queue{opts: opts}
}

// Options returns the queue options.
func (q *Queue) Options() Options { return q.opts }

// SetAllowDuplicates changes the duplicate policy.
func (q *Queue) SetAllowDuplicates(allow bool) { q.opts.AllowDuplicates = allow }

// SetHistory sets the session history consulted for duplicates.
func (q *Queue) SetHistory(h History) { q.history = h }

// SetNowPlaying records the track currently playing, or nil.
func (q *Queue) SetNowPlaying(t *dancetree.TrackRef) {
	if t == nil {
		q.nowPlaying = nil
		return
	}
	cp := *t
	q.nowPlaying = &cp
}

// NowPlaying returns the track currently playing, or nil.
func (q *Queue) NowPlaying() *dancetree.TrackRef { return q.nowPlaying }

// OnFrontChanged registers fn, called with the new front item (nil when
// empty) whenever the front of the queue changes.
func (q *Queue) OnFrontChanged(fn func(Item)) { q.onFront = fn }

// OnChanged registers fn, called after every mutation.
func (q *Queue) OnChanged(fn func()) { q.onChanged = fn }

// Items returns a copy of the queued items.
func (q *Queue) Items() []Item {
	return slices.Clone(q.items)
}

// Len returns the number of queued items.
func (q *Queue) Len() int { return len(q.items) }

// IsEmpty returns true if the queue has no items.
func (q *Queue) IsEmpty() bool { return len(q.items) == 0 }

// Front returns the first item, or nil.
func (q *Queue) Front() Item {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Auto returns the queued AutoTrack, or nil.
func (q *Queue) Auto() *AutoTrack {
	for _, it := range q.items {
		if a, ok := it.(*AutoTrack); ok {
			return a
		}
	}
	return nil
}

// HasManual reports whether any non-auto item is queued.
func (q *Queue) HasManual() bool {
	for _, it := range q.items {
		if it.Kind() != KindAuto {
			return true
		}
	}
	return false
}

func (q *Queue) full() bool {
	return q.opts.MaxItems > 0 && len(q.items) >= q.opts.MaxItems
}

// AddManual appends a user-chosen item. Any AutoTrack is removed first.
func (q *Queue) AddManual(it Item) error {
	if _, ok := it.(*AutoTrack); ok {
		return ErrAutoManual
	}
	q.RemoveAllAuto()
	if q.full() {
		return ErrQueueFull
	}
	if t, ok := TrackOf(it); ok && !q.opts.AllowDuplicates && q.IsDuplicate(t) {
		return ErrDuplicate
	}
	q.append(it)
	return nil
}

// AddAuto appends a suggested track. It fails silently when the queue is
// full or already holds a suggestion.
func (q *Queue) AddAuto(t dancetree.TrackRef) (*AutoTrack, bool) {
	if q.full() || q.Auto() != nil {
		return nil, false
	}
	a := &AutoTrack{Ref: t}
	q.append(a)
	return a, true
}

func (q *Queue) append(it Item) {
	wasEmpty := len(q.items) == 0
	q.items = append(q.items, it)
	if wasEmpty {
		q.frontChanged()
	}
	q.changed()
}

// DequeueFront removes and returns the first item, or nil if empty.
// The front-changed notification is always emitted.
func (q *Queue) DequeueFront() Item {
	var it Item
	if len(q.items) > 0 {
		it = q.items[0]
		q.items = slices.Delete(q.items, 0, 1)
	}
	q.frontChanged()
	if it != nil {
		q.changed()
	}
	return it
}

// Pin turns a suggestion into a regular track at the same position.
func (q *Queue) Pin(a *AutoTrack) (*Track, bool) {
	i := q.indexOf(a)
	if i < 0 {
		return nil, false
	}
	t := &Track{Ref: a.Ref}
	q.items[i] = t
	if i == 0 {
		q.frontChanged()
	}
	q.changed()
	return t, true
}

// ReplaceAuto swaps a suggestion for a new one at the same position.
func (q *Queue) ReplaceAuto(old *AutoTrack, t dancetree.TrackRef) (*AutoTrack, bool) {
	i := q.indexOf(old)
	if i < 0 {
		return nil, false
	}
	a := &AutoTrack{Ref: t}
	q.items[i] = a
	if i == 0 {
		q.frontChanged()
	}
	q.changed()
	return a, true
}

// RemoveAllAuto purges every suggestion and returns how many were removed.
func (q *Queue) RemoveAllAuto() int {
	if len(q.items) == 0 {
		return 0
	}
	front := q.items[0]
	before := len(q.items)
	q.items = slices.DeleteFunc(q.items, func(it Item) bool {
		return it.Kind() == KindAuto
	})
	removed := before - len(q.items)
	if removed == 0 {
		return 0
	}
	if q.Front() != front {
		q.frontChanged()
	}
	q.changed()
	return removed
}

// RemoveAt removes the item at index. Suggestions are purged as for any
// manual edit. Returns false if index is out of bounds.
func (q *Queue) RemoveAt(index int) bool {
	if index < 0 || index >= len(q.items) {
		return false
	}
	q.items = slices.Delete(q.items, index, index+1)
	if index == 0 {
		q.frontChanged()
	}
	q.changed()
	q.RemoveAllAuto()
	return true
}

// Move moves the item at fromIndex to toIndex after purging suggestions.
// Returns false if either index is out of bounds.
func (q *Queue) Move(fromIndex, toIndex int) bool {
	q.RemoveAllAuto()
	if fromIndex < 0 || fromIndex >= len(q.items) {
		return false
	}
	if toIndex < 0 || toIndex >= len(q.items) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}
	it := q.items[fromIndex]
	q.items = slices.Delete(q.items, fromIndex, fromIndex+1)
	q.items = slices.Insert(q.items, toIndex, it)
	if fromIndex == 0 || toIndex == 0 {
		q.frontChanged()
	}
	q.changed()
	return true
}

// Clear removes every item.
func (q *Queue) Clear() {
	if len(q.items) == 0 {
		return
	}
	q.items = nil
	q.frontChanged()
	q.changed()
}

// IsDuplicate reports whether t is already queued or playing, or, when
// duplicates are disallowed, was played earlier in the session.
func (q *Queue) IsDuplicate(t dancetree.TrackRef) bool {
	for _, it := range q.items {
		if qt, ok := TrackOf(it); ok && qt.Equal(t) {
			return true
		}
	}
	if q.nowPlaying != nil && q.nowPlaying.Equal(t) {
		return true
	}
	return !q.opts.AllowDuplicates && q.history != nil && q.history.HasBeenPlayed(t)
}

// EstimateFinish returns when the queue runs dry if played from now, given
// the time left on the current track. Estimation stops at the first item
// that waits for the user. Returns false when there is nothing to play.
func (q *Queue) EstimateFinish(now time.Time, remaining time.Duration) (time.Time, bool) {
	return EstimateFinish(q.items, now, remaining)
}

// EstimateFinish is Queue.EstimateFinish over a snapshot of items.
func EstimateFinish(items []Item, now time.Time, remaining time.Duration) (time.Time, bool) {
	total := max(remaining, 0)
	for _, it := range items {
		if haltsPlayback(it) {
			break
		}
		total += it.Duration()
	}
	if total <= 0 {
		return time.Time{}, false
	}
	return now.Add(total), true
}

// FinishSentinel is shown when no finish time can be estimated.
const FinishSentinel = "--:--"

// FormatFinish formats an estimate as a wall-clock time.
func FormatFinish(t time.Time, ok bool) string {
	if !ok {
		return FinishSentinel
	}
	return t.Format("15:04")
}

func (q *Queue) indexOf(it Item) int {
	return slices.IndexFunc(q.items, func(x Item) bool { return x == it })
}

func (q *Queue) frontChanged() {
	if q.onFront != nil {
		q.onFront(q.Front())
	}
}

func (q *Queue) changed() {
	if q.onChanged != nil {
		q.onChanged()
	}
}
