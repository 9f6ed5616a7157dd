package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS played_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			path TEXT NOT NULL,
			dance TEXT,
			artist TEXT,
			title TEXT,
			duration_ms INTEGER,
			played_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_played_tracks_session ON played_tracks(session_id, id);

		CREATE TABLE IF NOT EXISTS library_tracks (
			path TEXT PRIMARY KEY,
			mtime INTEGER NOT NULL,
			dance TEXT NOT NULL,
			artist TEXT,
			title TEXT,
			duration_ms INTEGER
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
