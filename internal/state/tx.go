package state

import (
	"context"
	"database/sql"
	"time"
)

// withTx runs fn in a transaction, committing only when fn succeeds.
// A cancelled context rolls back.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// trackColumns holds the nullable track metadata columns of a row.
type trackColumns struct {
	artist, title sql.NullString
	durationMS    sql.NullInt64
}

func (c trackColumns) artistValue() string { return c.artist.String }
func (c trackColumns) titleValue() string  { return c.title.String }

func (c trackColumns) duration() time.Duration {
	if !c.durationMS.Valid {
		return 0
	}
	return time.Duration(c.durationMS.Int64) * time.Millisecond
}
