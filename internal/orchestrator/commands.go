package orchestrator

import (
	"context"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/errmsg"
	"github.com/llehouerou/dancefloor/internal/queue"
	"github.com/llehouerou/dancefloor/internal/selector"
)

// Advance plays the next queue item. It is the user's play/skip action and
// also interrupts a running countdown.
func (o *Orchestrator) Advance() error {
	return o.post(o.advance)
}

// Stop halts playback and drops the suggestion. The queue is kept.
func (o *Orchestrator) Stop() error {
	return o.post(func() {
		o.stopCountdown()
		o.message = ""
		o.halt(StateIdle, true)
	})
}

// TogglePause pauses or resumes the current track.
func (o *Orchestrator) TogglePause() error {
	return o.post(func() {
		if o.state == StatePlaying {
			o.backend.Toggle()
		}
	})
}

// CancelCountdown stops a running delay or message countdown without
// advancing. A delay then waits for the user like a stop marker; a message
// stays on screen.
func (o *Orchestrator) CancelCountdown() error {
	return o.post(func() {
		if !o.cd.active {
			return
		}
		o.stopCountdown()
		if o.state == StateInDelay {
			o.state = StateStoppedAtMarker
		}
	})
}

// Enqueue adds a user-chosen item. Queue-full and duplicate rejections are
// reported to the user and returned.
func (o *Orchestrator) Enqueue(it queue.Item) error {
	return o.call(func() error {
		if err := o.q.AddManual(it); err != nil {
			o.emitError(errmsg.Format(errmsg.OpQueueAdd, err), err)
			return err
		}
		return nil
	})
}

// EnqueueRandom adds a track picked under node as a regular item.
// Returns false when nothing under node is eligible.
func (o *Orchestrator) EnqueueRandom(node dancetree.NodeID) (bool, error) {
	var added bool
	err := o.call(func() error {
		tree := o.tree()
		if tree == nil {
			return nil
		}
		t, ok := o.sel.SelectTrack(tree, node, o.exclude)
		if !ok {
			o.emitError(selector.NoTracksMessage, nil)
			return nil
		}
		if err := o.q.AddManual(&queue.Track{Ref: t}); err != nil {
			o.emitError(errmsg.Format(errmsg.OpQueueAdd, err), err)
			return err
		}
		added = true
		return nil
	})
	return added, err
}

// RemoveAt removes the queue item at index.
func (o *Orchestrator) RemoveAt(index int) error {
	return o.post(func() { o.q.RemoveAt(index) })
}

// Move moves a queue item.
func (o *Orchestrator) Move(from, to int) error {
	return o.post(func() { o.q.Move(from, to) })
}

// Clear empties the queue.
func (o *Orchestrator) Clear() error {
	return o.post(o.q.Clear)
}

// RefreshSuggestion replaces the suggestion with a new pick, or adds one
// when the queue holds nothing else.
func (o *Orchestrator) RefreshSuggestion() error {
	return o.post(func() {
		tree := o.tree()
		if tree == nil {
			return
		}
		old := o.q.Auto()
		if old == nil {
			if o.q.HasManual() {
				return
			}
			if t, ok := o.sel.SelectFromRoot(tree, o.exclude); ok {
				o.q.AddAuto(t)
			}
			return
		}
		t, ok := o.sel.SelectFromRoot(tree, o.exclude)
		if !ok {
			return
		}
		o.q.ReplaceAuto(old, t)
	})
}

// PinSuggestion keeps the current suggestion as a regular queue item.
func (o *Orchestrator) PinSuggestion() error {
	return o.post(func() {
		if a := o.q.Auto(); a != nil {
			o.q.Pin(a)
		}
	})
}

// SetAutoQueue turns suggestions on or off. Turning them off removes the
// queued suggestion.
func (o *Orchestrator) SetAutoQueue(enabled bool) error {
	return o.post(func() {
		o.autoQueue = enabled
		if !enabled {
			o.q.RemoveAllAuto()
			return
		}
		if o.state == StatePlaying {
			o.tryAutoFill()
		}
	})
}

// SetAllowDuplicates changes the duplicate policy of the queue.
func (o *Orchestrator) SetAllowDuplicates(allow bool) error {
	return o.post(func() { o.q.SetAllowDuplicates(allow) })
}

// EditTree runs fn against the dance tree on the event loop. A failed
// edit is reported to the user.
func (o *Orchestrator) EditTree(ctx context.Context, fn func(*dancetree.Tree) error) error {
	errCh := make(chan error, 1)
	if err := o.Do(ctx, func() {
		tree := o.tree()
		if tree == nil {
			errCh <- nil
			return
		}
		err := fn(tree)
		if err != nil {
			o.emitError(errmsg.Format(errmsg.OpTreeEdit, err), err)
		}
		errCh <- err
	}); err != nil {
		return err
	}
	return <-errCh
}
