// SPDX-License-Identifier: MIT

// Package api provides the HTTP server for the reelgate playback service.
package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelgate/reelgate/internal/catalog"
	"github.com/reelgate/reelgate/internal/config"
	"github.com/reelgate/reelgate/internal/history"
	"github.com/reelgate/reelgate/internal/middleware"
	"github.com/reelgate/reelgate/internal/token"
	"github.com/reelgate/reelgate/internal/viewer"
)

// IdentityFn extracts the authenticated account ID from a request. Session
// handling is owned by the surrounding application; the default reads the
// X-Account-ID header a fronting auth proxy sets.
type IdentityFn func(r *http.Request) (int64, bool)

// HeaderAccountID is the identity header the default IdentityFn reads.
const HeaderAccountID = "X-Account-ID"

func headerIdentity(r *http.Request) (int64, bool) {
	raw := r.Header.Get(HeaderAccountID)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Server wires the playback resolver and the range file server into HTTP
// routes. All fields are read-only after construction.
type Server struct {
	cfg      config.AppConfig
	signer   *token.Signer
	catalog  catalog.Store
	gate     viewer.Gate
	history  history.Store
	recorder *history.Recorder
	identity IdentityFn
}

// Option allows functional configuration of the Server.
type Option func(*Server)

// WithIdentity overrides account identity extraction (for tests or a
// different fronting proxy contract).
func WithIdentity(fn IdentityFn) Option {
	return func(s *Server) { s.identity = fn }
}

// New creates a Server.
func New(cfg config.AppConfig, signer *token.Signer, store catalog.Store, gate viewer.Gate, histStore history.Store, recorder *history.Recorder, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		signer:   signer,
		catalog:  store,
		gate:     gate,
		history:  histStore,
		recorder: recorder,
		identity: headerIdentity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with the canonical middleware stack.
func (s *Server) Router() chi.Router {
	tracing := ""
	if s.cfg.TraceEnabled {
		tracing = "reelgate-api"
	}
	r := middleware.NewRouter(middleware.StackConfig{
		EnableMetrics:  true,
		TracingService: tracing,
		EnableLogging:  true,
	})

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.cfg.RateLimitEnabled {
			r.Use(middleware.RateLimit(s.cfg.RateLimitRPM))
		}
		r.Get("/titles/{titleID}/play", s.handlePlay)
		r.Get("/titles/{titleID}/variants", s.handleVariants)
		r.Get("/profiles/{profileID}/history", s.handleHistory)
	})

	r.Get("/stream/{assetID}", s.handleStream)
	r.Head("/stream/{assetID}", s.handleStream)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
