// SPDX-License-Identifier: MIT

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/reelgate/reelgate/internal/history"
)

// HistoryStore implements history.Store over SQLite with one row per
// (profile, title, day).
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore creates a HistoryStore.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

const historyColumns = "id, profile_id, title_id, watched_at, progress_seconds, finished"

// Touch returns today's watch row for (profileID, titleID), creating it on
// the first playback of the day. Re-playing the same title on the same day
// reuses the existing row.
func (s *HistoryStore) Touch(ctx context.Context, profileID, titleID int64) (history.Entry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return history.Entry{}, fmt.Errorf("sqlite: history touch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var e history.Entry
	err = tx.QueryRowContext(ctx,
		"SELECT "+historyColumns+` FROM watch_history
		 WHERE profile_id = ? AND title_id = ? AND date(watched_at) = date('now')`,
		profileID, titleID,
	).Scan(&e.ID, &e.ProfileID, &e.TitleID, &e.WatchedAt, &e.ProgressSeconds, &e.Finished)

	switch {
	case err == nil:
		return e, tx.Commit()

	case errors.Is(err, sql.ErrNoRows):
		err = tx.QueryRowContext(ctx,
			`INSERT INTO watch_history (profile_id, title_id) VALUES (?, ?)
			 RETURNING `+historyColumns,
			profileID, titleID,
		).Scan(&e.ID, &e.ProfileID, &e.TitleID, &e.WatchedAt, &e.ProgressSeconds, &e.Finished)
		if err != nil {
			return history.Entry{}, fmt.Errorf("sqlite: history insert: %w", err)
		}
		return e, tx.Commit()

	default:
		return history.Entry{}, fmt.Errorf("sqlite: history lookup: %w", err)
	}
}

// ByProfile lists a profile's most recent watch rows.
func (s *HistoryStore) ByProfile(ctx context.Context, profileID int64, limit int) ([]history.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+historyColumns+" FROM watch_history WHERE profile_id = ? ORDER BY watched_at DESC LIMIT ?",
		profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history by profile: %w", err)
	}
	defer rows.Close()

	var out []history.Entry
	for rows.Next() {
		var e history.Entry
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.TitleID, &e.WatchedAt, &e.ProgressSeconds, &e.Finished); err != nil {
			return nil, fmt.Errorf("sqlite: scan history: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: history by profile: %w", err)
	}
	return out, nil
}
