// Package history records which tracks were played during a session.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/llehouerou/dancefloor/internal/dancetree"
)

// Recorder persists played tracks. state.Manager implements it.
type Recorder interface {
	StartSession(id string, at time.Time) error
	AddPlayed(sessionID string, t dancetree.TrackRef, at time.Time) error
}

// Session is the set of tracks played since the application started.
// It is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	id       string
	started  time.Time
	played   map[string]struct{}
	order    []dancetree.TrackRef
	recorder Recorder
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder persists every played track through r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New starts a session with a fresh id.
func New(opts ...Option) *Session {
	s := &Session{
		id:     uuid.NewString(),
		played: make(map[string]struct{}),
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.started = s.now()
	if s.recorder != nil {
		if err := s.recorder.StartSession(s.id, s.started); err != nil {
			s.logger.Warn().Err(err).Str("session", s.id).Msg("failed to record session start")
			s.recorder = nil
		}
	}
	return s
}

// Started returns when the session began.
func (s *Session) Started() time.Time { return s.started }

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// HasBeenPlayed reports whether a track with the same path was played.
func (s *Session) HasBeenPlayed(t dancetree.TrackRef) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.played[t.Path]
	return ok
}

// AddPlayed marks t as played. Persistence errors are logged, never returned:
// a DJ must not lose the dance floor because the disk is full.
func (s *Session) AddPlayed(t dancetree.TrackRef) {
	s.mu.Lock()
	s.played[t.Path] = struct{}{}
	s.order = append(s.order, t)
	rec := s.recorder
	s.mu.Unlock()

	if rec == nil {
		return
	}
	if err := rec.AddPlayed(s.id, t, s.now()); err != nil {
		s.logger.Warn().Err(err).Str("path", t.Path).Msg("failed to record played track")
	}
}

// Played returns the played tracks in order.
func (s *Session) Played() []dancetree.TrackRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dancetree.TrackRef, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns how many tracks were played.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
