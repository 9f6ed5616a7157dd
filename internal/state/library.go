package state

import (
	"context"
	"database/sql"

	"github.com/llehouerou/dancefloor/internal/dancetree"
)

// CachedTrack is a scanned file with the modification time it was read at.
type CachedTrack struct {
	Track dancetree.TrackRef
	MTime int64
}

// LibraryCache returns every cached scan result keyed by path.
func (m *Manager) LibraryCache() (map[string]CachedTrack, error) {
	rows, err := m.db.Query(`SELECT path, mtime, dance, artist, title, duration_ms FROM library_tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cache := make(map[string]CachedTrack)
	for rows.Next() {
		var c CachedTrack
		var cols trackColumns
		if err := rows.Scan(&c.Track.Path, &c.MTime, &c.Track.Dance, &cols.artist, &cols.title, &cols.durationMS); err != nil {
			return nil, err
		}
		c.Track.Artist = cols.artistValue()
		c.Track.Title = cols.titleValue()
		c.Track.Duration = cols.duration()
		cache[c.Track.Path] = c
	}
	return cache, rows.Err()
}

// ReplaceLibraryCache stores tracks as the complete scan result.
func (m *Manager) ReplaceLibraryCache(ctx context.Context, tracks []CachedTrack) error {
	return withTx(ctx, m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM library_tracks`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO library_tracks (path, mtime, dance, artist, title, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, c := range tracks {
			t := c.Track
			if _, err := stmt.ExecContext(ctx, t.Path, c.MTime, t.Dance, t.Artist, t.Title, t.Duration.Milliseconds()); err != nil {
				return err
			}
		}
		return nil
	})
}
