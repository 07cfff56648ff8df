// Copyright (c) 2026 Dugout. All rights reserved.

package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dugoutlab/dugout/internal/platform/constants"
	"github.com/dugoutlab/dugout/internal/platform/respond"
)

// HealthCheck checks one dependency.
type HealthCheck func(ctx context.Context) error

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase HealthCheck

	// CheckCache pings the Redis client. Nil when caching is disabled.
	CheckCache HealthCheck
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{constants.FieldStatus: "ok"})
}

// readiness handles GET /ready (Readiness probe). Checks run concurrently.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	checks := []struct {
		name  string
		check HealthCheck
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
	}

	var (
		mu      sync.Mutex
		results = make([]checkResult, 0, len(checks))
		ready   = true
	)

	group, ctx := errgroup.WithContext(request.Context())
	for _, c := range checks {
		if c.check == nil {
			continue
		}
		group.Go(func() error {
			result := checkResult{Name: c.name, IsOK: true}
			if err := c.check(ctx); err != nil {
				result.IsOK = false
				result.Error = err.Error()
				handler.logger.Error("readiness_check_failed", slog.String("dependency", c.name), slog.Any("error", err))
			}

			mu.Lock()
			defer mu.Unlock()
			results = append(results, result)
			ready = ready && result.IsOK
			return nil
		})
	}
	_ = group.Wait()

	sortResults(results)

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
		constants.FieldStatus: status,
		constants.FieldChecks: results,
	}})
}

// sortResults keeps postgres before redis regardless of completion order.
func sortResults(results []checkResult) {
	if len(results) == 2 && results[0].Name != "postgres" {
		results[0], results[1] = results[1], results[0]
	}
}
