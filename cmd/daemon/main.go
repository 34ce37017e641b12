// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reelgate/reelgate/internal/api"
	"github.com/reelgate/reelgate/internal/config"
	"github.com/reelgate/reelgate/internal/history"
	rglog "github.com/reelgate/reelgate/internal/log"
	"github.com/reelgate/reelgate/internal/persistence/sqlite"
	"github.com/reelgate/reelgate/internal/telemetry"
	"github.com/reelgate/reelgate/internal/token"
	"github.com/reelgate/reelgate/internal/viewer"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Safe defaults until the real config is loaded.
	rglog.Configure(rglog.Config{
		Level:   "info",
		Service: "reelgate",
		Version: version,
	})
	logger := rglog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", *configPath).
			Msg("failed to load configuration")
	}

	rglog.Configure(rglog.Config{
		Level:   cfg.LogLevel,
		Service: "reelgate",
		Version: version,
	})

	logger.Info().
		Str("event", "startup").
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Str("addr", cfg.ListenAddr).
		Str("media_root", cfg.MediaRoot).
		Dur("token_ttl", cfg.TokenTTL).
		Msg("starting reelgate")

	tracing, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.TraceEnabled,
		ServiceName:    "reelgate",
		ServiceVersion: version,
		ExporterType:   cfg.TraceExporter,
		Endpoint:       cfg.TraceEndpoint,
		SamplingRate:   cfg.TraceSampling,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "telemetry.init_failed").
			Msg("failed to initialize tracing")
	}

	db, err := sqlite.Open(cfg.DBPath, sqlite.DefaultConfig())
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "db.open_failed").
			Str("db_path", cfg.DBPath).
			Msg("failed to open database")
	}
	if err := sqlite.EnsureSchema(ctx, db); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "db.schema_failed").
			Msg("failed to apply schema")
	}

	var gate viewer.Gate = sqlite.NewViewerGate(db)
	histStore := sqlite.NewHistoryStore(db)
	recorder := history.NewRecorder(histStore, 5*time.Second)

	server := api.New(
		cfg,
		token.New([]byte(cfg.Secret)),
		sqlite.NewCatalogStore(db),
		gate,
		histStore,
		recorder,
	)

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Str("event", "shutdown").Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		recorder.Close()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown failed")
		}
		if err := db.Close(); err != nil {
			logger.Warn().Err(err).Msg("database close failed")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "daemon.failed").
			Msg("daemon exited with error")
	}
	logger.Info().Msg("shutdown complete")
}
