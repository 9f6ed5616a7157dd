package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/dancefloor/internal/dancetree"
)

// Session describes a recorded DJ session.
type Session struct {
	ID        string
	StartedAt time.Time
	Played    int
}

// StartSession records the start of a session.
func (m *Manager) StartSession(id string, at time.Time) error {
	_, err := m.db.Exec(`INSERT OR IGNORE INTO sessions (id, started_at) VALUES (?, ?)`, id, at.Unix())
	return err
}

// AddPlayed appends a played track to a session.
func (m *Manager) AddPlayed(sessionID string, t dancetree.TrackRef, at time.Time) error {
	_, err := m.db.Exec(`
		INSERT INTO played_tracks (session_id, path, dance, artist, title, duration_ms, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sessionID, t.Path, t.Dance, t.Artist, t.Title, t.Duration.Milliseconds(), at.Unix())
	return err
}

// PlayedTracks returns a session's tracks in play order.
func (m *Manager) PlayedTracks(sessionID string) ([]dancetree.TrackRef, error) {
	rows, err := m.db.Query(`
		SELECT path, dance, artist, title, duration_ms
		FROM played_tracks
		WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []dancetree.TrackRef
	for rows.Next() {
		var t dancetree.TrackRef
		var dance sql.NullString
		var cols trackColumns
		if err := rows.Scan(&t.Path, &dance, &cols.artist, &cols.title, &cols.durationMS); err != nil {
			return nil, err
		}
		t.Dance = dance.String
		t.Artist = cols.artistValue()
		t.Title = cols.titleValue()
		t.Duration = cols.duration()
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// Sessions lists recorded sessions, most recent first.
func (m *Manager) Sessions() ([]Session, error) {
	rows, err := m.db.Query(`
		SELECT s.id, s.started_at, COUNT(p.id)
		FROM sessions s
		LEFT JOIN played_tracks p ON p.session_id = s.id
		GROUP BY s.id
		ORDER BY s.started_at DESC, s.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var started int64
		if err := rows.Scan(&s.ID, &started, &s.Played); err != nil {
			return nil, err
		}
		s.StartedAt = time.Unix(started, 0)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
