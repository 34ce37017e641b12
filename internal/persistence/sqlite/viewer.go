// SPDX-License-Identifier: MIT

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ViewerGate implements viewer.Gate over the profiles and subscriptions
// tables.
type ViewerGate struct {
	db *sql.DB
}

// NewViewerGate creates a ViewerGate.
func NewViewerGate(db *sql.DB) *ViewerGate {
	return &ViewerGate{db: db}
}

// ProfileBelongsTo reports whether the profile row exists and is owned by
// the account.
func (g *ViewerGate) ProfileBelongsTo(ctx context.Context, profileID, accountID int64) (bool, error) {
	var one int
	err := g.db.QueryRowContext(ctx,
		"SELECT 1 FROM profiles WHERE id = ? AND account_id = ?",
		profileID, accountID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: profile lookup: %w", err)
	}
	return true, nil
}

// SubscriptionActive reports whether the account holds an active,
// unexpired subscription.
func (g *ViewerGate) SubscriptionActive(ctx context.Context, accountID int64) (bool, error) {
	var one int
	err := g.db.QueryRowContext(ctx,
		`SELECT 1 FROM subscriptions
		 WHERE account_id = ? AND active = 1
		 AND (expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP)
		 LIMIT 1`,
		accountID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: subscription lookup: %w", err)
	}
	return true, nil
}
