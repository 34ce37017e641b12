// SPDX-License-Identifier: MIT
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reelgate/reelgate/internal/log"
)

const historyDefaultLimit = 50

type historyEntry struct {
	TitleID   int64     `json:"title_id"`
	WatchedAt time.Time `json:"watched_at"`
	Progress  int       `json:"progress_seconds"`
	Finished  bool      `json:"finished"`
}

// handleHistory lists a profile's recent watch history, newest first.
// Only the owning account may read it.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	profileID, err := strconv.ParseInt(chi.URLParam(r, "profileID"), 10, 64)
	if err != nil || profileID <= 0 {
		writeNotFound(w, r)
		return
	}

	accountID, ok := s.identity(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx := r.Context()
	owns, err := s.gate.ProfileBelongsTo(ctx, profileID, accountID)
	if err != nil || !owns {
		if err != nil {
			logger.Error().Err(err).Int64("profile_id", profileID).Msg("profile check failed")
		}
		writeNotFound(w, r)
		return
	}

	limit := historyDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	entries, err := s.history.ByProfile(ctx, profileID, limit)
	if err != nil {
		logger.Error().Err(err).Int64("profile_id", profileID).Msg("history lookup failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]historyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyEntry{
			TitleID:   e.TitleID,
			WatchedAt: e.WatchedAt,
			Progress:  e.ProgressSeconds,
			Finished:  e.Finished,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile_id": profileID,
		"entries":    out,
	})
}
