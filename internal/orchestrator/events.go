package orchestrator

import (
	"time"

	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/queue"
)

const eventBufferSize = 16

// Countdown describes the running delay or message countdown.
type Countdown struct {
	Active  bool
	Total   time.Duration
	Elapsed time.Duration
}

// Remaining returns the time left, or zero when inactive.
func (c Countdown) Remaining() time.Duration {
	if !c.Active {
		return 0
	}
	return max(c.Total-c.Elapsed, 0)
}

// Status is a snapshot of the orchestrator, safe to read from any goroutine.
type Status struct {
	State     State
	Track     *dancetree.TrackRef // nil unless a track is loaded
	Paused    bool
	Message   string // text of the current message marker
	Countdown Countdown
	AutoQueue bool
	Items     []queue.Item
}

// ErrorEvent is emitted when an operation fails in a way the user should see.
type ErrorEvent struct {
	Message string
	Err     error
}

// Subscription provides event channels for a subscriber.
// Events are dropped when a subscriber falls behind.
type Subscription struct {
	StatusChanged <-chan Status
	Error         <-chan ErrorEvent
	Done          <-chan struct{}

	// Internal write channels
	statusCh chan Status
	errorCh  chan ErrorEvent
	doneCh   chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		statusCh: make(chan Status, eventBufferSize),
		errorCh:  make(chan ErrorEvent, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.StatusChanged = s.statusCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendStatus sends a status snapshot (non-blocking).
func (s *Subscription) sendStatus(st Status) {
	select {
	case s.statusCh <- st:
	default:
		// Drop if buffer full
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}
