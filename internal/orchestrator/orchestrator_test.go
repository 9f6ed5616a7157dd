package orchestrator

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/history"
	"github.com/llehouerou/dancefloor/internal/notify"
	"github.com/llehouerou/dancefloor/internal/player"
	"github.com/llehouerou/dancefloor/internal/preload"
	"github.com/llehouerou/dancefloor/internal/queue"
	"github.com/llehouerou/dancefloor/internal/selector"
)

const testTick = 10 * time.Millisecond

var (
	trackA = dancetree.TrackRef{Dance: "Waltz", Title: "A", Path: "/m/a.mp3", Duration: 3 * time.Minute}
	trackB = dancetree.TrackRef{Dance: "Tango", Title: "B", Path: "/m/b.mp3", Duration: 2 * time.Minute}
	trackC = dancetree.TrackRef{Dance: "Waltz", Title: "C", Path: "/m/c.mp3", Duration: time.Minute}
)

type fixture struct {
	o       *Orchestrator
	q       *queue.Queue
	backend *player.Mock
	tree    *dancetree.Tree
	hist    *history.Session
	notes   *notify.Collector

	preloadMu sync.Mutex
	preloaded []string
}

// newFixture starts an orchestrator over a tree holding trackA and trackC
// (Waltz) and trackB (Tango).
func newFixture(t *testing.T, autoQueue bool, opts queue.Options) *fixture {
	t.Helper()
	f := &fixture{
		q:       queue.New(opts),
		backend: player.NewMock(),
		tree:    dancetree.New(),
		hist:    history.New(),
		notes:   notify.NewCollector(),
	}

	cat, err := f.tree.AddCategory(dancetree.RootID, "Ballroom", 1)
	require.NoError(t, err)
	waltz, err := f.tree.AddLeaf(cat, "Waltz", 1)
	require.NoError(t, err)
	tango, err := f.tree.AddLeaf(cat, "Tango", 1)
	require.NoError(t, err)
	require.NoError(t, f.tree.AppendTrack(waltz, trackA))
	require.NoError(t, f.tree.AppendTrack(waltz, trackC))
	require.NoError(t, f.tree.AppendTrack(tango, trackB))

	sel := selector.New(
		selector.WithRand(rand.New(rand.NewPCG(1, 2))),
		selector.WithNotifier(f.notes),
	)
	cache := preload.New(func(_ context.Context, path string) error {
		f.preloadMu.Lock()
		defer f.preloadMu.Unlock()
		f.preloaded = append(f.preloaded, path)
		return nil
	})

	f.o = New(f.q, f.backend, sel, func() *dancetree.Tree { return f.tree },
		WithPreloader(cache),
		WithHistory(f.hist),
		WithNotifier(f.notes),
		WithTick(testTick),
		WithAutoQueue(autoQueue),
	)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = f.o.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-runDone
	})
	return f
}

// settle waits until every previously posted command has run.
func (f *fixture) settle(t *testing.T) {
	t.Helper()
	require.NoError(t, f.o.Do(context.Background(), func() {}))
}

func (f *fixture) enqueue(t *testing.T, items ...queue.Item) {
	t.Helper()
	for _, it := range items {
		require.NoError(t, f.o.Enqueue(it))
	}
}

func (f *fixture) waitState(t *testing.T, want State) Status {
	t.Helper()
	require.Eventually(t, func() bool {
		return f.o.Status().State == want
	}, 2*time.Second, 5*time.Millisecond, "never reached state %v", want)
	return f.o.Status()
}

func (f *fixture) preloadedPaths() []string {
	f.preloadMu.Lock()
	defer f.preloadMu.Unlock()
	return append([]string(nil), f.preloaded...)
}

func track(t dancetree.TrackRef) *queue.Track { return &queue.Track{Ref: t} }

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StatePlaying, "Playing"},
		{StateStoppedAtMarker, "Stopped"},
		{StateInDelay, "Delay"},
		{StateInMessage, "Message"},
		{State(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountdown_Remaining(t *testing.T) {
	assert.Equal(t, time.Duration(0), Countdown{Total: time.Second}.Remaining())
	assert.Equal(t, 750*time.Millisecond, Countdown{Active: true, Total: time.Second, Elapsed: 250 * time.Millisecond}.Remaining())
	assert.Equal(t, time.Duration(0), Countdown{Active: true, Total: time.Second, Elapsed: 2 * time.Second}.Remaining())
}

func TestAdvance_EmptyQueueIsIdle(t *testing.T) {
	f := newFixture(t, false, queue.Options{})

	require.NoError(t, f.o.Advance())
	f.settle(t)

	st := f.o.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Nil(t, st.Track)
	assert.Empty(t, f.backend.PlayCalls())
}

func TestAdvance_PlaysFrontAndRecordsHistory(t *testing.T) {
	f := newFixture(t, false, queue.Options{})
	f.enqueue(t, track(trackA), track(trackB))

	require.NoError(t, f.o.Advance())
	f.settle(t)

	st := f.o.Status()
	assert.Equal(t, StatePlaying, st.State)
	require.NotNil(t, st.Track)
	assert.Equal(t, trackA.Path, st.Track.Path)
	assert.Len(t, st.Items, 1)
	assert.True(t, f.hist.HasBeenPlayed(trackA))
	assert.Equal(t, player.Playing, f.backend.State())

	// The next track is verified ahead of time
	require.Eventually(t, func() bool {
		for _, p := range f.preloadedPaths() {
			if p == trackB.Path {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestAdvance_IgnoresEndOfSkippedTrack(t *testing.T) {
	f := newFixture(t, false, queue.Options{})
	f.enqueue(t, track(trackA), track(trackB), track(trackC))
	require.NoError(t, f.o.Advance())
	f.settle(t)

	// trackA ends while the user skips it in the same loop turn.
	require.NoError(t, f.o.Do(context.Background(), func() {
		f.backend.SimulateFinished()
		f.o.advance()
	}))
	f.settle(t)

	st := f.o.Status()
	require.NotNil(t, st.Track)
	assert.Equal(t, trackB.Path, st.Track.Path)
	assert.Equal(t, []string{trackA.Path, trackB.Path}, f.backend.PlayCalls())
	assert.Len(t, st.Items, 1)
}

func TestScenario_DelayMarkerThenNextTrack(t *testing.T) {
	f := newFixture(t, false, queue.Options{})
	sub := f.o.Subscribe()
	f.enqueue(t, track(trackA), &queue.DelayMarker{Delay: 200 * time.Millisecond}, track(trackB))

	require.NoError(t, f.o.Advance())
	f.waitState(t, StatePlaying)

	f.backend.SimulateFinished()
	st := f.waitState(t, StateInDelay)
	assert.True(t, st.Countdown.Active)
	assert.Nil(t, st.Track)
	assert.Equal(t, player.Stopped, f.backend.State())

	// Ticks are published while counting down, then B plays on its own
	var ticks int
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-sub.StatusChanged:
			if s.State == StateInDelay && s.Countdown.Active && s.Countdown.Elapsed > 0 {
				ticks++
			}
			if s.State == StatePlaying && s.Track != nil && s.Track.Path == trackB.Path {
				assert.Greater(t, ticks, 1)
				assert.Equal(t, []string{trackA.Path, trackB.Path}, f.backend.PlayCalls())
				return
			}
		case <-deadline:
			t.Fatalf("B never played, ticks seen: %d", ticks)
		}
	}
}

func TestStopMarker_WaitsForUser(t *testing.T) {
	f := newFixture(t, true, queue.Options{})
	f.enqueue(t, track(trackA), &queue.StopMarker{}, track(trackB))

	require.NoError(t, f.o.Advance())
	f.waitState(t, StatePlaying)
	f.backend.SimulateFinished()

	st := f.waitState(t, StateStoppedAtMarker)
	assert.Nil(t, st.Track)
	require.Len(t, st.Items, 1)
	assert.Equal(t, queue.KindTrack, st.Items[0].Kind())

	// Nothing happens until the user advances
	time.Sleep(5 * testTick)
	assert.Equal(t, StateStoppedAtMarker, f.o.Status().State)

	require.NoError(t, f.o.Advance())
	st = f.waitState(t, StatePlaying)
	assert.Equal(t, trackB.Path, st.Track.Path)
}

func TestMessageMarker(t *testing.T) {
	t.Run("without delay waits for the user", func(t *testing.T) {
		f := newFixture(t, false, queue.Options{})
		f.enqueue(t, queue.NewMessage("Prize giving", 0), track(trackA))

		require.NoError(t, f.o.Advance())
		f.settle(t)

		st := f.o.Status()
		assert.Equal(t, StateInMessage, st.State)
		assert.Equal(t, "Prize giving", st.Message)
		assert.False(t, st.Countdown.Active)

		time.Sleep(5 * testTick)
		assert.Equal(t, StateInMessage, f.o.Status().State)
	})

	t.Run("with delay resumes on its own", func(t *testing.T) {
		f := newFixture(t, false, queue.Options{})
		f.enqueue(t, queue.NewMessage("Last waltz", 60*time.Millisecond), track(trackA))

		require.NoError(t, f.o.Advance())
		f.settle(t)

		st := f.o.Status()
		assert.Equal(t, StateInMessage, st.State)
		assert.Equal(t, "Last waltz", st.Message)
		assert.True(t, st.Countdown.Active)

		st = f.waitState(t, StatePlaying)
		assert.Equal(t, trackA.Path, st.Track.Path)
		assert.Empty(t, st.Message)
	})
}

func TestPlaybackFailure_SkipsForward(t *testing.T) {
	f := newFixture(t, false, queue.Options{})
	sub := f.o.Subscribe()
	f.backend.SetPlayError(trackA.Path, errors.New("no such file"))
	f.enqueue(t, track(trackA), track(trackB))

	require.NoError(t, f.o.Advance())
	f.settle(t)

	st := f.o.Status()
	assert.Equal(t, StatePlaying, st.State)
	assert.Equal(t, trackB.Path, st.Track.Path)
	assert.False(t, f.hist.HasBeenPlayed(trackA))

	select {
	case e := <-sub.Error:
		assert.Contains(t, e.Message, "Failed to start playback")
		assert.Contains(t, e.Message, "a.mp3")
	case <-time.After(time.Second):
		t.Fatal("no error event")
	}

	var found bool
	for _, n := range f.notes.Drain() {
		if strings.Contains(n.Title, "no such file") {
			found = true
		}
	}
	assert.True(t, found, "failure not notified")
}

func TestPlaybackFailure_AllFailingEndsIdle(t *testing.T) {
	f := newFixture(t, true, queue.Options{})
	for _, tr := range []dancetree.TrackRef{trackA, trackB, trackC} {
		f.backend.SetPlayError(tr.Path, errors.New("broken"))
	}
	f.enqueue(t, track(trackA), track(trackB), track(trackC))

	require.NoError(t, f.o.Advance())
	f.settle(t)

	st := f.o.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Empty(t, st.Items)
	assert.Len(t, f.backend.PlayCalls(), 3)
}

func TestAdvance_InterruptsCountdown(t *testing.T) {
	f := newFixture(t, false, queue.Options{})
	f.enqueue(t, &queue.DelayMarker{Delay: time.Hour}, track(trackB))

	require.NoError(t, f.o.Advance())
	f.settle(t)
	require.Equal(t, StateInDelay, f.o.Status().State)

	require.NoError(t, f.o.Advance())
	f.settle(t)

	st := f.o.Status()
	assert.Equal(t, StatePlaying, st.State)
	assert.False(t, st.Countdown.Active)
	assert.Equal(t, trackB.Path, st.Track.Path)
}

func TestCancelCountdown(t *testing.T) {
	f := newFixture(t, false, queue.Options{})
	f.enqueue(t, &queue.DelayMarker{Delay: 50 * time.Millisecond}, track(trackB))

	require.NoError(t, f.o.Advance())
	require.NoError(t, f.o.CancelCountdown())
	f.settle(t)

	st := f.o.Status()
	assert.Equal(t, StateStoppedAtMarker, st.State)
	assert.False(t, st.Countdown.Active)

	// Stale ticks from the cancelled countdown do not advance
	time.Sleep(100 * time.Millisecond)
	f.settle(t)
	assert.Equal(t, StateStoppedAtMarker, f.o.Status().State)
	assert.Empty(t, f.backend.PlayCalls())
}

func TestAutoFill_AfterStart(t *testing.T) {
	f := newFixture(t, true, queue.Options{})
	f.enqueue(t, track(trackA))

	require.NoError(t, f.o.Advance())
	f.settle(t)

	st := f.o.Status()
	require.Len(t, st.Items, 1)
	auto, ok := st.Items[0].(*queue.AutoTrack)
	require.True(t, ok, "expected an auto track, got %T", st.Items[0])
	assert.NotEqual(t, trackA.Path, auto.Ref.Path)
}

func TestAutoFill_DeferredWhenManualItemsRemoved(t *testing.T) {
	f := newFixture(t, true, queue.Options{})
	f.enqueue(t, track(trackA), track(trackB))

	require.NoError(t, f.o.Advance())
	f.settle(t)
	require.Nil(t, f.q.Auto(), "no suggestion while manual items are queued")

	require.NoError(t, f.o.Clear())
	require.Eventually(t, func() bool {
		items := f.o.Status().Items
		return len(items) == 1 && items[0].Kind() == queue.KindAuto
	}, time.Second, 5*time.Millisecond)
}

func TestAutoFill_SuggestionPlaysNext(t *testing.T) {
	f := newFixture(t, true, queue.Options{})
	f.enqueue(t, track(trackA))

	require.NoError(t, f.o.Advance())
	f.settle(t)
	items := f.o.Status().Items
	require.Len(t, items, 1)
	next, _ := queue.TrackOf(items[0])

	f.backend.SimulateFinished()
	require.Eventually(t, func() bool {
		st := f.o.Status()
		return st.Track != nil && st.Track.Path == next.Path
	}, time.Second, 5*time.Millisecond)
}

func TestAutoFill_NothingEligible(t *testing.T) {
	f := newFixture(t, true, queue.Options{})
	f.enqueue(t, track(trackA), track(trackB), track(trackC))

	// Every track ends up played or playing, so nothing can be suggested
	for range 3 {
		require.NoError(t, f.o.Advance())
		f.settle(t)
	}

	st := f.o.Status()
	assert.Equal(t, StatePlaying, st.State)
	require.NotNil(t, st.Track)
	assert.Equal(t, trackC.Path, st.Track.Path)
	assert.Empty(t, st.Items)

	var noTracks bool
	for _, n := range f.notes.Drain() {
		if n.Title == selector.NoTracksMessage {
			noTracks = true
		}
	}
	assert.True(t, noTracks)
}

func TestEnqueue_PurgesSuggestion(t *testing.T) {
	f := newFixture(t, true, queue.Options{})
	f.enqueue(t, track(trackA))
	require.NoError(t, f.o.Advance())
	f.settle(t)
	items := f.o.Status().Items
	require.Len(t, items, 1)
	require.Equal(t, queue.KindAuto, items[0].Kind())

	f.enqueue(t, track(trackB))
	f.settle(t)

	items = f.o.Status().Items
	require.Len(t, items, 1)
	assert.Equal(t, queue.KindTrack, items[0].Kind())
}

func TestEnqueue_Rejections(t *testing.T) {
	f := newFixture(t, false, queue.Options{MaxItems: 2})
	sub := f.o.Subscribe()
	f.enqueue(t, track(trackA), track(trackB))

	err := f.o.Enqueue(track(trackC))
	assert.ErrorIs(t, err, queue.ErrQueueFull)
	assert.Len(t, f.o.Status().Items, 2)

	select {
	case e := <-sub.Error:
		assert.ErrorIs(t, e.Err, queue.ErrQueueFull)
	case <-time.After(time.Second):
		t.Fatal("no error event")
	}

	// Playing A leaves room, but A itself is now a duplicate
	require.NoError(t, f.o.Advance())
	f.settle(t)
	assert.ErrorIs(t, f.o.Enqueue(track(trackA)), queue.ErrDuplicate)

	require.NoError(t, f.o.SetAllowDuplicates(true))
	assert.NoError(t, f.o.Enqueue(track(trackA)))
}

func TestEnqueueRandom(t *testing.T) {
	f := newFixture(t, false, queue.Options{})
	tango, ok := f.tree.FindLeaf("Tango")
	require.True(t, ok)

	added, err := f.o.EnqueueRandom(tango)
	require.NoError(t, err)
	assert.True(t, added)

	// The only tango is queued now
	added, err = f.o.EnqueueRandom(tango)
	require.NoError(t, err)
	assert.False(t, added)
	f.settle(t)

	items := f.o.Status().Items
	require.Len(t, items, 1)
	got, _ := queue.TrackOf(items[0])
	assert.Equal(t, trackB.Path, got.Path)
}

func TestRefreshAndPinSuggestion(t *testing.T) {
	f := newFixture(t, true, queue.Options{AllowDuplicates: true})

	// Refresh adds a suggestion even while idle
	require.NoError(t, f.o.RefreshSuggestion())
	f.settle(t)
	first := f.q.Auto()
	require.NotNil(t, first)

	require.NoError(t, f.o.RefreshSuggestion())
	f.settle(t)
	second := f.q.Auto()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.Ref.Path, second.Ref.Path)

	require.NoError(t, f.o.PinSuggestion())
	f.settle(t)
	assert.Nil(t, f.q.Auto())
	items := f.o.Status().Items
	require.Len(t, items, 1)
	assert.Equal(t, queue.KindTrack, items[0].Kind())
}

func TestSetAutoQueue(t *testing.T) {
	f := newFixture(t, false, queue.Options{})
	f.enqueue(t, track(trackA))
	require.NoError(t, f.o.Advance())
	f.settle(t)
	require.Empty(t, f.o.Status().Items)

	require.NoError(t, f.o.SetAutoQueue(true))
	f.settle(t)
	st := f.o.Status()
	assert.True(t, st.AutoQueue)
	require.Len(t, st.Items, 1)

	require.NoError(t, f.o.SetAutoQueue(false))
	f.settle(t)
	assert.Empty(t, f.o.Status().Items)
}

func TestStop_DropsSuggestion(t *testing.T) {
	f := newFixture(t, true, queue.Options{})
	f.enqueue(t, track(trackA))
	require.NoError(t, f.o.Advance())
	f.settle(t)
	require.Len(t, f.o.Status().Items, 1)

	require.NoError(t, f.o.Stop())
	f.settle(t)

	st := f.o.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Nil(t, st.Track)
	assert.Empty(t, st.Items)
	assert.Equal(t, player.Stopped, f.backend.State())
}

func TestTogglePause(t *testing.T) {
	f := newFixture(t, false, queue.Options{})
	f.enqueue(t, track(trackA))
	require.NoError(t, f.o.Advance())
	f.settle(t)

	require.NoError(t, f.o.TogglePause())
	require.Eventually(t, func() bool { return f.o.Status().Paused }, time.Second, 5*time.Millisecond)
	assert.Equal(t, player.Paused, f.backend.State())

	require.NoError(t, f.o.TogglePause())
	require.Eventually(t, func() bool { return !f.o.Status().Paused }, time.Second, 5*time.Millisecond)
}

func TestEditTree(t *testing.T) {
	f := newFixture(t, false, queue.Options{})

	err := f.o.EditTree(context.Background(), func(tree *dancetree.Tree) error {
		swing, err := tree.AddCategory(dancetree.RootID, "Swing", 1)
		if err != nil {
			return err
		}
		_, err = tree.AddLeaf(swing, "Jive", 2)
		return err
	})
	require.NoError(t, err)
	_, ok := f.tree.FindLeaf("Jive")
	assert.True(t, ok)

	err = f.o.EditTree(context.Background(), func(tree *dancetree.Tree) error {
		_, err := tree.AddLeaf(dancetree.RootID, "Mambo", 1)
		return err
	})
	assert.ErrorIs(t, err, dancetree.ErrLeafAtRoot)

	err = f.o.EditTree(context.Background(), func(tree *dancetree.Tree) error {
		return tree.Rename(dancetree.RootID, "nope")
	})
	assert.ErrorIs(t, err, dancetree.ErrRootReadOnly)
}

func TestStoppedLoop(t *testing.T) {
	o := New(queue.New(queue.Options{}), player.NewMock(), selector.New(), func() *dancetree.Tree { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, o.Run(ctx), context.Canceled)

	assert.ErrorIs(t, o.Advance(), ErrStopped)
	assert.ErrorIs(t, o.Do(context.Background(), func() {}), ErrStopped)

	sub := o.Subscribe()
	select {
	case <-sub.Done:
	default:
		t.Error("subscription after shutdown should be done")
	}
}
