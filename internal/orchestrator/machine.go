package orchestrator

import (
	"context"
	"path/filepath"
	"time"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/errmsg"
	"github.com/llehouerou/dancefloor/internal/queue"
)

// advance moves to the next queue item. Tracks that fail to start are
// skipped; the number of attempts is bounded by the queue length so an
// all-failing queue ends in Idle.
func (o *Orchestrator) advance() {
	o.stopCountdown()
	o.paused = false
	o.message = ""

	attempts := o.q.Len() + 1
	for range attempts {
		it := o.q.DequeueFront()
		switch v := it.(type) {
		case nil:
			o.halt(StateIdle, true)
			return

		case *queue.StopMarker:
			o.halt(StateStoppedAtMarker, true)
			return

		case *queue.DelayMarker:
			o.halt(StateInDelay, false)
			o.startCountdown(v.Delay)
			return

		case *queue.MessageMarker:
			o.message = v.Text
			if !v.HasDelay() {
				o.halt(StateInMessage, true)
				return
			}
			o.halt(StateInMessage, false)
			o.startCountdown(v.Delay)
			return

		default:
			t, ok := queue.TrackOf(it)
			if !ok {
				o.logger.Warn().Str("kind", it.Kind().String()).Msg("unknown queue item skipped")
				continue
			}
			if o.start(t) {
				return
			}
		}
	}
	o.halt(StateIdle, true)
}

// start plays t and reports whether playback began.
func (o *Orchestrator) start(t dancetree.TrackRef) bool {
	o.dropFinished()
	o.setPlaying(&t)
	if err := o.backend.Play(t.Path); err != nil {
		o.logger.Error().Err(err).Str("path", t.Path).Msg("playback failed, skipping")
		o.emitError(errmsg.FormatWith(errmsg.OpPlaybackStart, filepath.Base(t.Path), err), err)
		o.setPlaying(nil)
		return false
	}

	o.preload.PromoteNextToCurrent()
	o.state = StatePlaying
	if o.history != nil {
		o.history.AddPlayed(t)
	}
	o.logger.Info().
		Str("dance", t.Dance).
		Str("artist", t.Artist).
		Str("title", t.Title).
		Msg("now playing")

	o.tryAutoFill()
	o.preloadFront()
	return true
}

// halt stops playback and enters a non-playing state. With purge set the
// suggestion and the preload cache are dropped too.
func (o *Orchestrator) halt(state State, purge bool) {
	o.backend.Stop()
	o.setPlaying(nil)
	o.paused = false
	if purge {
		o.preload.Clear()
		o.q.RemoveAllAuto()
	}
	o.state = state
	o.logger.Debug().Str("state", state.String()).Msg("playback halted")
}

func (o *Orchestrator) setPlaying(t *dancetree.TrackRef) {
	o.playing = t
	o.q.SetNowPlaying(t)
}

// dropFinished discards an end-of-track event still buffered for the
// previous track, so it cannot end the one about to start.
func (o *Orchestrator) dropFinished() {
	for {
		select {
		case <-o.backend.Finished():
		default:
			return
		}
	}
}

func (o *Orchestrator) onTrackFinished() {
	if o.state != StatePlaying {
		return
	}
	o.advance()
}

// startCountdown replaces any running countdown with one lasting total.
// Ticks are posted back to the loop; a tick from a superseded countdown
// is ignored.
func (o *Orchestrator) startCountdown(total time.Duration) {
	o.stopCountdown()
	ctx, cancel := context.WithCancel(o.ctx)
	o.cd.gen++
	gen := o.cd.gen
	o.cd = countdown{gen: gen, cancel: cancel, total: total, active: true}

	tick := o.tick
	go func() {
		ticker := time.NewTicker(tick)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				elapsed := time.Since(start)
				o.postCtx(ctx, func() { o.onTick(gen, elapsed) })
				if elapsed >= total {
					return
				}
			}
		}
	}()
}

func (o *Orchestrator) onTick(gen uint64, elapsed time.Duration) {
	if !o.cd.active || o.cd.gen != gen {
		return
	}
	o.cd.elapsed = min(elapsed, o.cd.total)
	if elapsed < o.cd.total {
		return
	}
	o.logger.Debug().Dur("delay", o.cd.total).Msg("countdown complete")
	o.advance()
}

// stopCountdown cancels the running countdown, if any.
func (o *Orchestrator) stopCountdown() {
	if o.cd.cancel != nil {
		o.cd.cancel()
	}
	o.cd = countdown{gen: o.cd.gen}
}

// exclude rejects tracks already queued or playing and, when duplicates
// are disallowed, tracks played this session.
func (o *Orchestrator) exclude(t dancetree.TrackRef) bool {
	return o.q.IsDuplicate(t)
}

// tryAutoFill queues a suggestion when auto-queue is on and nothing else
// is queued.
func (o *Orchestrator) tryAutoFill() {
	if !o.autoQueue || o.q.HasManual() || o.q.Auto() != nil {
		return
	}
	tree := o.tree()
	if tree == nil {
		return
	}
	t, ok := o.sel.SelectFromRoot(tree, o.exclude)
	if !ok {
		return
	}
	if _, ok := o.q.AddAuto(t); ok {
		o.logger.Debug().Str("path", t.Path).Msg("suggestion queued")
	}
}

// onQueueChanged runs inside the queue's change notification, so the
// auto-fill it triggers is deferred to a later loop turn.
func (o *Orchestrator) onQueueChanged() {
	if o.state != StatePlaying || o.fillPending {
		return
	}
	o.fillPending = true
	o.deferred(func() {
		o.fillPending = false
		if o.state == StatePlaying {
			o.tryAutoFill()
		}
	})
}

func (o *Orchestrator) onFrontChanged(it queue.Item) {
	if o.state != StatePlaying || it == nil {
		return
	}
	o.preloadItem(it)
}

func (o *Orchestrator) preloadFront() {
	if it := o.q.Front(); it != nil {
		o.preloadItem(it)
	}
}

// preloadItem verifies the file of a track item in the background.
// Failures are logged only; playback will report them if they persist.
func (o *Orchestrator) preloadItem(it queue.Item) {
	t, ok := queue.TrackOf(it)
	if !ok || o.preload.IsCached(t) {
		return
	}
	ctx := o.ctx
	logger := o.logger
	go func() {
		if ok, err := o.preload.Preload(ctx, t); !ok {
			logger.Warn().Err(err).Str("path", t.Path).Msg(errmsg.Format(errmsg.OpPreload, err))
		}
	}()
}
