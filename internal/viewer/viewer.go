// SPDX-License-Identifier: MIT

// Package viewer defines the narrow seams to the account collaborators:
// profile ownership and subscription state. Both are opaque boolean
// questions; authentication itself lives outside this service.
package viewer

import "context"

// Gate answers the two authorization questions the playback resolver
// needs. Implementations must fail closed: any error is treated as "no".
type Gate interface {
	// ProfileBelongsTo reports whether profileID is owned by accountID.
	ProfileBelongsTo(ctx context.Context, profileID, accountID int64) (bool, error)

	// SubscriptionActive reports whether accountID has a currently
	// active subscription.
	SubscriptionActive(ctx context.Context, accountID int64) (bool, error)
}

// AllowAll is a Gate that grants everything. Useful for tests and for
// deployments where gating happens upstream.
type AllowAll struct{}

func (AllowAll) ProfileBelongsTo(context.Context, int64, int64) (bool, error) {
	return true, nil
}

func (AllowAll) SubscriptionActive(context.Context, int64) (bool, error) {
	return true, nil
}
