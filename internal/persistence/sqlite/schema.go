// SPDX-License-Identifier: MIT

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema holds the table definitions this service reads and writes. The
// rows themselves are owned by the wider application; upload management
// creates media assets, billing maintains subscriptions. A fresh database
// still gets a usable layout so the daemon can run standalone.
const schema = `
CREATE TABLE IF NOT EXISTS titles (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS media_assets (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	title_id   INTEGER NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
	file_path  TEXT NOT NULL DEFAULT '',
	remote_url TEXT NOT NULL DEFAULT '',
	mime_type  TEXT NOT NULL DEFAULT 'video/mp4',
	quality    TEXT NOT NULL DEFAULT '1080p',
	trailer    INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CHECK (file_path <> '' OR remote_url <> '')
);
CREATE INDEX IF NOT EXISTS idx_media_assets_title ON media_assets(title_id);

CREATE TABLE IF NOT EXISTS profiles (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id INTEGER NOT NULL,
	name       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profiles_account ON profiles(account_id);

CREATE TABLE IF NOT EXISTS subscriptions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id INTEGER NOT NULL,
	active     INTEGER NOT NULL DEFAULT 0,
	expires_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_subscriptions_account ON subscriptions(account_id);

CREATE TABLE IF NOT EXISTS watch_history (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	profile_id       INTEGER NOT NULL,
	title_id         INTEGER NOT NULL,
	watched_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	progress_seconds INTEGER NOT NULL DEFAULT 0,
	finished         INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_watch_history_profile ON watch_history(profile_id, watched_at);
CREATE UNIQUE INDEX IF NOT EXISTS idx_watch_history_day
	ON watch_history(profile_id, title_id, date(watched_at));
`

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: ensure schema: %w", err)
	}
	return nil
}
