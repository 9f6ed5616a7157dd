package player

import (
	"sync"
	"time"
)

// Mock is a test double for Backend.
type Mock struct {
	mu         sync.Mutex
	state      State
	position   time.Duration
	duration   time.Duration
	playErrs   map[string]error
	playCalls  []string
	stopCalls  int
	clearCalls int
	finishedCh chan struct{}
	playingCh  chan bool
}

// NewMock creates a new mock backend for testing.
func NewMock() *Mock {
	return &Mock{
		state:      Stopped,
		playErrs:   make(map[string]error),
		finishedCh: make(chan struct{}, 1),
		playingCh:  make(chan bool, 64),
	}
}

func (m *Mock) Play(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls = append(m.playCalls, path)
	if err := m.playErrs[path]; err != nil {
		m.state = Stopped
		return err
	}
	m.state = Playing
	m.send(true)
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	m.state = Stopped
}

func (m *Mock) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearCalls++
	m.state = Stopped
}

func (m *Mock) Pause()  { m.setPaused(true) }
func (m *Mock) Resume() { m.setPaused(false) }

func (m *Mock) Toggle() {
	m.setPaused(m.State() == Playing)
}

func (m *Mock) setPaused(pause bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if next, ok := m.state.withPause(pause); ok {
		m.state = next
		m.send(!pause)
	}
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Finished() <-chan struct{} { return m.finishedCh }

func (m *Mock) PlayingChanged() <-chan bool { return m.playingCh }

func (m *Mock) send(v bool) {
	select {
	case m.playingCh <- v:
	default:
	}
}

// Test helpers

// SetPlayError makes Play(path) fail with err.
func (m *Mock) SetPlayError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErrs[path] = err
}

// PlayCalls returns every path passed to Play.
func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.playCalls))
	copy(out, m.playCalls)
	return out
}

// StopCalls returns how many times Stop was called.
func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// SimulateFinished simulates the current track reaching its end.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	m.state = Stopped
	m.mu.Unlock()
	select {
	case m.finishedCh <- struct{}{}:
	default:
	}
}

// Verify Mock implements Backend at compile time.
var _ Backend = (*Mock)(nil)
