// Copyright (c) 2026 Dugout. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dugoutlab/dugout/internal/api"
	"github.com/dugoutlab/dugout/internal/core/assignment"
	"github.com/dugoutlab/dugout/internal/core/concept"
	"github.com/dugoutlab/dugout/internal/core/drill"
	"github.com/dugoutlab/dugout/internal/core/encyclopedia"
	"github.com/dugoutlab/dugout/internal/core/player"
	"github.com/dugoutlab/dugout/internal/core/session"
	"github.com/dugoutlab/dugout/internal/core/tag"
	"github.com/dugoutlab/dugout/internal/platform/cache"
	"github.com/dugoutlab/dugout/internal/platform/constants"
	"github.com/dugoutlab/dugout/internal/platform/migration"
	pgstore "github.com/dugoutlab/dugout/internal/platform/postgres"
	redisstore "github.com/dugoutlab/dugout/internal/platform/redis"
	"github.com/dugoutlab/dugout/internal/platform/sec"
	"github.com/dugoutlab/dugout/internal/platform/storage"
	"github.com/dugoutlab/dugout/internal/platform/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Start the Dugout HTTP API.

Startup sequence:

  1. Install tracing (no-op unless OTEL_ENABLED).
  2. Connect to PostgreSQL, and to Redis when REDIS_URL is set.
  3. Apply pending migrations when AUTO_MIGRATE is set.
  4. Wire handlers and serve until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := context.WithCancel(parent)
	defer stop()

	log.Info("service_initializing",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// ── 1. Tracing ────────────────────────────────────────────────────────
	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.OtelServiceName,
		Version:     constants.AppVersion,
		Environment: cfg.Environment,
		Endpoint:    cfg.OtelEndpoint,
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSampleRatio,
	}, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error("tracing_shutdown_failed", slog.Any("error", err))
		}
	}()

	// Bound startup so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	// ── 2. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 3. Redis (optional read cache) ────────────────────────────────────
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}
	var readCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		readCache = cache.NewRedis(rdb)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	} else {
		log.Warn("read_cache_disabled", slog.String("reason", "REDIS_URL is empty"))
	}

	// ── 4. Migrations ─────────────────────────────────────────────────────
	if cfg.AutoMigrate {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// ── 5. Uploads ────────────────────────────────────────────────────────
	media, err := storage.NewLocal(cfg.UploadDir, cfg.UploadURLPrefix, cfg.PublicBaseURL, cfg.MaxUploadBytes())
	if err != nil {
		return fmt.Errorf("prepare upload directory: %w", err)
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	tx := pgstore.NewTransactor(pool)

	tagService := tag.NewService(tag.NewPostgresRepository(), tx, readCache, cfg.CacheTTL, log)
	drillService := drill.NewService(drill.NewPostgresRepository(), tagService, media, tx, log)
	conceptService := concept.NewService(concept.NewPostgresRepository(), tagService, media, tx, readCache, cfg.CacheTTL, log)
	assignmentService := assignment.NewService(assignment.NewPostgresRepository(), tx, log)
	playerService := player.NewService(player.NewPostgresRepository(), assignmentService, tx, log)
	sessionService := session.NewService(session.NewPostgresRepository(), media, tx, log)
	encyclopediaService := encyclopedia.NewService(conceptService, drillService)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Players:      player.NewHandler(playerService),
		Tags:         tag.NewHandler(tagService),
		Drills:       drill.NewHandler(drillService, cfg.MaxUploadBytes()),
		Concepts:     concept.NewHandler(conceptService, cfg.MaxUploadBytes()),
		Encyclopedia: encyclopedia.NewHandler(encyclopediaService),
		Assignments:  assignment.NewHandler(assignmentService),
		Sessions:     session.NewHandler(sessionService, cfg.MaxUploadBytes()),
		UploadPrefix: media.Prefix(),
		Uploads:      media.Handler(),
	}

	verifier := sec.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer)
	if !verifier.Enabled() {
		log.Warn("authentication_disabled", slog.String("reason", "JWT_SECRET is empty"))
	}

	server := api.NewServer(ctx, cfg, log, verifier, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server startup: %w", err)
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped cleanly")
	return nil
}
