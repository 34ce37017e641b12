// SPDX-License-Identifier: MIT
package api

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/reelgate/reelgate/internal/catalog"
	"github.com/reelgate/reelgate/internal/delivery"
	"github.com/reelgate/reelgate/internal/log"
	"github.com/reelgate/reelgate/internal/telemetry"
)

// handleStream serves the bytes behind a signed playback URL. Every failure
// mode answers 404 so probing the endpoint leaks nothing about why a
// request was refused.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	assetID, err := strconv.ParseInt(chi.URLParam(r, "assetID"), 10, 64)
	if err != nil || assetID <= 0 {
		recordStream(outcomeRejected)
		writeNotFound(w, r)
		return
	}

	q := r.URL.Query()
	expRaw, sig := q.Get("exp"), q.Get("sig")
	if expRaw == "" || sig == "" {
		recordTokenRejection(reasonMissing)
		writeNotFound(w, r)
		return
	}
	exp, err := strconv.ParseInt(expRaw, 10, 64)
	if err != nil {
		recordTokenRejection(reasonMalformed)
		writeNotFound(w, r)
		return
	}
	if !s.signer.Verify(assetID, exp, sig) {
		if exp < time.Now().Unix() {
			recordTokenRejection(reasonExpired)
		} else {
			recordTokenRejection(reasonSignature)
		}
		writeNotFound(w, r)
		return
	}

	variant, err := s.catalog.VariantByID(r.Context(), assetID)
	if err != nil {
		recordStream(outcomeRejected)
		writeNotFound(w, r)
		return
	}

	if span := trace.SpanFromContext(r.Context()); span.IsRecording() {
		source := "local"
		if variant.Source() == catalog.SourceRemote {
			source = "remote"
		}
		span.SetAttributes(telemetry.PlaybackAttributes(assetID, variant.TitleID, variant.Quality, source)...)
	}

	switch variant.Source() {
	case catalog.SourceRemote:
		// Remote assets are never proxied; hand the client the upstream URL.
		recordStream(outcomeRedirected)
		http.Redirect(w, r, variant.RemoteURL, http.StatusFound)
		return
	case catalog.SourceLocal:
	default:
		recordStream(outcomeUnavailable)
		writeNotFound(w, r)
		return
	}

	path, info, err := delivery.SafeResolve(s.cfg.MediaRoot, variant.FilePath)
	if err != nil {
		logger.Warn().Err(err).Int64("asset_id", assetID).Msg("asset resolve failed")
		recordStream(outcomeUnavailable)
		writeNotFound(w, r)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Warn().Err(err).Int64("asset_id", assetID).Msg("asset open failed")
		recordStream(outcomeUnavailable)
		writeNotFound(w, r)
		return
	}
	defer f.Close()

	recordStream(outcomeServed)
	logger.Debug().
		Int64("asset_id", assetID).
		Int64("size", info.Size()).
		Str("range", r.Header.Get("Range")).
		Msg("streaming asset")

	delivery.ServeFile(w, r, f, info.Size(), variant.MimeType, s.cfg.ChunkSize)
}
