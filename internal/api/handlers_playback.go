// SPDX-License-Identifier: MIT
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/reelgate/reelgate/internal/catalog"
	"github.com/reelgate/reelgate/internal/log"
	"github.com/reelgate/reelgate/internal/telemetry"
)

// playResponse is the body of a successful play request. URL is relative to
// this server and already carries the expiry and signature query parameters.
type playResponse struct {
	TitleID   int64  `json:"title_id"`
	AssetID   int64  `json:"asset_id"`
	URL       string `json:"url"`
	Quality   string `json:"quality"`
	MimeType  string `json:"mime_type"`
	Trailer   bool   `json:"trailer"`
	ExpiresAt int64  `json:"expires_at"`
}

type variantInfo struct {
	AssetID  int64  `json:"asset_id"`
	Quality  string `json:"quality"`
	MimeType string `json:"mime_type"`
	Trailer  bool   `json:"trailer"`
	Remote   bool   `json:"remote"`
}

func parseTrailerParam(raw string) *bool {
	if raw == "" {
		return nil
	}
	var v bool
	switch strings.ToLower(raw) {
	case "1", "t", "true", "yes", "y", "on":
		v = true
	default:
		v = false
	}
	return &v
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	titleID, err := strconv.ParseInt(chi.URLParam(r, "titleID"), 10, 64)
	if err != nil || titleID <= 0 {
		writeNotFound(w, r)
		return
	}

	accountID, ok := s.identity(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	profileID, err := strconv.ParseInt(r.URL.Query().Get("profile"), 10, 64)
	if err != nil || profileID <= 0 {
		writeError(w, r, http.StatusBadRequest, "profile parameter required")
		return
	}

	ctx := r.Context()

	exists, err := s.catalog.TitleExists(ctx, titleID)
	if err != nil {
		logger.Error().Err(err).Int64("title_id", titleID).Msg("title lookup failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if !exists {
		writeNotFound(w, r)
		return
	}

	// Ownership failures look identical to a missing profile.
	owns, err := s.gate.ProfileBelongsTo(ctx, profileID, accountID)
	if err != nil || !owns {
		if err != nil {
			logger.Error().Err(err).Int64("profile_id", profileID).Msg("profile check failed")
		}
		writeNotFound(w, r)
		return
	}

	active, err := s.gate.SubscriptionActive(ctx, accountID)
	if err != nil {
		logger.Error().Err(err).Int64("account_id", accountID).Msg("subscription check failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if !active {
		writeError(w, r, http.StatusForbidden, "subscription inactive")
		return
	}

	variants, err := s.catalog.VariantsByTitle(ctx, titleID)
	if err != nil {
		logger.Error().Err(err).Int64("title_id", titleID).Msg("variant lookup failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	q := r.URL.Query()
	asset, err := catalog.Select(variants, catalog.Filter{
		Quality: q.Get("quality"),
		Trailer: parseTrailerParam(q.Get("trailer")),
	})
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			logger.Error().Err(err).Int64("title_id", titleID).Msg("variant selection failed")
		}
		writeNotFound(w, r)
		return
	}

	s.recorder.Record(profileID, titleID)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(telemetry.PlaybackAttributes(asset.ID, titleID, asset.Quality, "")...)
	}

	exp, sig := s.signer.Issue(asset.ID, s.cfg.TokenTTL)
	playbackURLsIssued.Inc()

	logger.Info().
		Int64("title_id", titleID).
		Int64("asset_id", asset.ID).
		Str("quality", asset.Quality).
		Msg("playback url issued")

	writeJSON(w, http.StatusOK, playResponse{
		TitleID:   titleID,
		AssetID:   asset.ID,
		URL:       fmt.Sprintf("/stream/%d?exp=%d&sig=%s", asset.ID, exp, sig),
		Quality:   asset.Quality,
		MimeType:  asset.MimeType,
		Trailer:   asset.Trailer,
		ExpiresAt: exp,
	})
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	titleID, err := strconv.ParseInt(chi.URLParam(r, "titleID"), 10, 64)
	if err != nil || titleID <= 0 {
		writeNotFound(w, r)
		return
	}

	ctx := r.Context()
	exists, err := s.catalog.TitleExists(ctx, titleID)
	if err != nil {
		logger.Error().Err(err).Int64("title_id", titleID).Msg("title lookup failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if !exists {
		writeNotFound(w, r)
		return
	}

	variants, err := s.catalog.VariantsByTitle(ctx, titleID)
	if err != nil {
		logger.Error().Err(err).Int64("title_id", titleID).Msg("variant lookup failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]variantInfo, 0, len(variants))
	for _, v := range variants {
		out = append(out, variantInfo{
			AssetID:  v.ID,
			Quality:  v.Quality,
			MimeType: v.MimeType,
			Trailer:  v.Trailer,
			Remote:   v.Source() == catalog.SourceRemote,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"title_id": titleID,
		"variants": out,
	})
}
