// SPDX-License-Identifier: MIT

// Package middleware provides the canonical HTTP ingress stack for the
// reelgate API server.
package middleware

import (
	"github.com/go-chi/chi/v5"

	xlog "github.com/reelgate/reelgate/internal/log"
)

// StackConfig configures the canonical middleware stack.
type StackConfig struct {
	EnableMetrics  bool
	TracingService string // empty disables tracing
	EnableLogging  bool
}

// NewRouter constructs a chi router with the canonical stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the canonical middleware stack to r. Order matters:
// the recoverer is the outermost safety net, the request ID must exist
// before anything logs.
func ApplyStack(r chi.Router, cfg StackConfig) {
	r.Use(Recoverer)
	r.Use(RequestID)
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	if cfg.TracingService != "" {
		r.Use(Tracing(cfg.TracingService))
	}
	if cfg.EnableLogging {
		r.Use(xlog.Middleware())
	}
}
