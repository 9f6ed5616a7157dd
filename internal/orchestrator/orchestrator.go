// Package orchestrator drives playback from the queue. It owns the state
// machine that dequeues items, runs delay and message countdowns, keeps an
// automatic suggestion queued and skips over tracks that fail to play.
//
// Every mutation of the queue, the dance tree and the state machine happens
// on the goroutine running Run. Other goroutines post commands to it.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/notify"
	"github.com/llehouerou/dancefloor/internal/player"
	"github.com/llehouerou/dancefloor/internal/queue"
	"github.com/llehouerou/dancefloor/internal/selector"
)

// DefaultTick is the countdown resolution.
const DefaultTick = 250 * time.Millisecond

const commandBufferSize = 64

// ErrStopped is returned when the event loop is not running anymore.
var ErrStopped = errors.New("orchestrator stopped")

// Selector picks tracks from the dance tree. *selector.Selector implements it.
type Selector interface {
	SelectFromRoot(tree *dancetree.Tree, exclude selector.Exclude) (dancetree.TrackRef, bool)
	SelectTrack(tree *dancetree.Tree, node dancetree.NodeID, exclude selector.Exclude) (dancetree.TrackRef, bool)
}

// Preloader verifies upcoming files ahead of time. *preload.Cache
// implements it and must be safe for concurrent use.
type Preloader interface {
	IsCached(t dancetree.TrackRef) bool
	Preload(ctx context.Context, t dancetree.TrackRef) (bool, error)
	PromoteNextToCurrent()
	Clear()
}

// History records the tracks played this session. *history.Session
// implements it.
type History interface {
	HasBeenPlayed(t dancetree.TrackRef) bool
	AddPlayed(t dancetree.TrackRef)
}

type countdown struct {
	gen     uint64
	cancel  context.CancelFunc
	total   time.Duration
	elapsed time.Duration
	active  bool
}

// Orchestrator is the playback state machine.
type Orchestrator struct {
	q        *queue.Queue
	backend  player.Backend
	sel      Selector
	tree     func() *dancetree.Tree
	preload  Preloader
	history  History
	notifier notify.Notifier
	logger   zerolog.Logger
	tick     time.Duration

	cmds     chan func()
	done     chan struct{}
	stopOnce sync.Once

	// Loop-owned state
	ctx         context.Context
	state       State
	playing     *dancetree.TrackRef
	paused      bool
	message     string
	cd          countdown
	autoQueue   bool
	fillPending bool

	statusMu sync.RWMutex
	status   Status

	subsMu sync.Mutex
	subs   []*Subscription
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPreloader verifies upcoming files with p.
func WithPreloader(p Preloader) Option {
	return func(o *Orchestrator) { o.preload = p }
}

// WithHistory records played tracks in h and consults it for duplicates.
func WithHistory(h History) Option {
	return func(o *Orchestrator) { o.history = h }
}

// WithNotifier sets where user-facing errors are reported.
func WithNotifier(n notify.Notifier) Option {
	return func(o *Orchestrator) { o.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithTick sets the countdown resolution.
func WithTick(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.tick = d
		}
	}
}

// WithAutoQueue sets whether a suggestion is kept queued while playing.
func WithAutoQueue(enabled bool) Option {
	return func(o *Orchestrator) { o.autoQueue = enabled }
}

// New creates an orchestrator over q. tree returns the current dance tree;
// it is only called from the event loop.
func New(q *queue.Queue, backend player.Backend, sel Selector, tree func() *dancetree.Tree, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		q:        q,
		backend:  backend,
		sel:      sel,
		tree:     tree,
		preload:  nopPreloader{},
		notifier: nopNotifier{},
		logger:   zerolog.Nop(),
		tick:     DefaultTick,
		cmds:     make(chan func(), commandBufferSize),
		done:     make(chan struct{}),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.history != nil {
		q.SetHistory(o.history)
	}
	q.OnChanged(o.onQueueChanged)
	q.OnFrontChanged(o.onFrontChanged)
	o.status = o.snapshot()
	return o
}

// Run drains commands and backend events until ctx is done. It must be
// called exactly once.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.ctx = ctx
	defer o.shutdown()

	finished := o.backend.Finished()
	playingChanged := o.backend.PlayingChanged()
	o.publish()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-o.cmds:
			fn()
		case <-finished:
			o.onTrackFinished()
		case playing := <-playingChanged:
			o.paused = !playing && o.state == StatePlaying && o.backend.State() == player.Paused
		}
		o.publish()
	}
}

func (o *Orchestrator) shutdown() {
	o.stopOnce.Do(func() {
		o.stopCountdown()
		close(o.done)
		o.subsMu.Lock()
		for _, sub := range o.subs {
			sub.close()
		}
		o.subs = nil
		o.subsMu.Unlock()
	})
}

// post queues fn for the event loop without waiting for it to run.
func (o *Orchestrator) post(fn func()) error {
	select {
	case <-o.done:
		return ErrStopped
	default:
	}
	select {
	case o.cmds <- fn:
		return nil
	case <-o.done:
		return ErrStopped
	}
}

// postCtx is post that also gives up when ctx is done.
func (o *Orchestrator) postCtx(ctx context.Context, fn func()) {
	select {
	case o.cmds <- fn:
	case <-ctx.Done():
	case <-o.done:
	}
}

// deferred runs fn on a later loop turn. Safe to call from the loop itself.
func (o *Orchestrator) deferred(fn func()) {
	select {
	case o.cmds <- fn:
	default:
		go func() { _ = o.post(fn) }()
	}
}

// Do runs fn on the event loop and waits for it to return. Use it for
// anything that touches the queue or the dance tree, like reassigning
// tracks after a library scan. If ctx ends first, fn may still run later.
func (o *Orchestrator) Do(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	if err := o.post(func() {
		defer close(ran)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-ran:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-o.done:
		return ErrStopped
	}
}

// call runs fn on the event loop and returns its error.
func (o *Orchestrator) call(fn func() error) error {
	errCh := make(chan error, 1)
	if err := o.Do(context.Background(), func() { errCh <- fn() }); err != nil {
		return err
	}
	return <-errCh
}

// Status returns the latest snapshot.
func (o *Orchestrator) Status() Status {
	o.statusMu.RLock()
	defer o.statusMu.RUnlock()
	return o.status
}

// Subscribe creates a new event subscription.
func (o *Orchestrator) Subscribe() *Subscription {
	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	sub := newSubscription()
	select {
	case <-o.done:
		sub.close()
	default:
		o.subs = append(o.subs, sub)
	}
	return sub
}

func (o *Orchestrator) snapshot() Status {
	st := Status{
		State:     o.state,
		Paused:    o.paused,
		Message:   o.message,
		AutoQueue: o.autoQueue,
		Items:     o.q.Items(),
	}
	if o.playing != nil {
		cp := *o.playing
		st.Track = &cp
	}
	if o.cd.active {
		st.Countdown = Countdown{Active: true, Total: o.cd.total, Elapsed: o.cd.elapsed}
	}
	return st
}

func (o *Orchestrator) publish() {
	st := o.snapshot()
	o.statusMu.Lock()
	o.status = st
	o.statusMu.Unlock()

	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	for _, sub := range o.subs {
		sub.sendStatus(st)
	}
}

func (o *Orchestrator) emitError(msg string, err error) {
	_, _ = o.notifier.Notify(notify.Notification{
		Title:   msg,
		Urgency: notify.UrgencyNormal,
	})
	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	for _, sub := range o.subs {
		sub.sendError(ErrorEvent{Message: msg, Err: err})
	}
}

type nopPreloader struct{}

func (nopPreloader) IsCached(dancetree.TrackRef) bool                          { return false }
func (nopPreloader) Preload(context.Context, dancetree.TrackRef) (bool, error) { return true, nil }
func (nopPreloader) PromoteNextToCurrent()                                     {}
func (nopPreloader) Clear()                                                    {}

type nopNotifier struct{}

func (nopNotifier) Notify(notify.Notification) (uint32, error) { return 0, nil }
func (nopNotifier) Close(uint32) error                         { return nil }
