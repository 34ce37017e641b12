// SPDX-License-Identifier: MIT

// Package history records watch events with an external collaborator.
// Recording is fire-and-forget: a failed write must never block or fail a
// playback response.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/reelgate/reelgate/internal/log"
)

// Entry is one day's watch record for a profile and title.
type Entry struct {
	ID              int64
	ProfileID       int64
	TitleID         int64
	WatchedAt       time.Time
	ProgressSeconds int
	Finished        bool
}

// Store persists watch history. Touch upserts the (profile, title, day)
// row, creating it on first playback of the day.
type Store interface {
	Touch(ctx context.Context, profileID, titleID int64) (Entry, error)
	ByProfile(ctx context.Context, profileID int64, limit int) ([]Entry, error)
}

// Recorder wraps a Store with asynchronous, non-blocking recording.
type Recorder struct {
	store   Store
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewRecorder creates a Recorder. timeout bounds each background write.
func NewRecorder(store Store, timeout time.Duration) *Recorder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Recorder{store: store, timeout: timeout}
}

// Record schedules a watch-history touch and returns immediately. The
// write happens on its own context so a finished HTTP request does not
// cancel it.
func (r *Recorder) Record(profileID, titleID int64) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if _, err := r.store.Touch(ctx, profileID, titleID); err != nil {
			logger := log.WithComponent("history")
			logger.Warn().
				Err(err).
				Str("event", "history.touch_failed").
				Int64("profile_id", profileID).
				Int64("title_id", titleID).
				Msg("watch history write failed, playback unaffected")
		}
	}()
}

// Close waits for in-flight writes to finish. Used during shutdown and in
// tests.
func (r *Recorder) Close() {
	r.wg.Wait()
}
