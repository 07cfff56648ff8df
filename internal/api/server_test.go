// Copyright (c) 2026 Dugout. All rights reserved.

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/api"
	"github.com/dugoutlab/dugout/internal/platform/config"
	"github.com/dugoutlab/dugout/internal/platform/respond"
	"github.com/dugoutlab/dugout/internal/platform/sec"
)

type echoRoutes struct{ name string }

func (e echoRoutes) RegisterRoutes(router chi.Router) {
	router.Get("/", func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, e.name)
	})
	router.Post("/", func(writer http.ResponseWriter, _ *http.Request) {
		respond.Created(writer, e.name)
	})
}

func newRouter(t *testing.T, cfg *config.Config, h api.Handlers) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return api.NewRouter(ctx, cfg, logger, sec.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer), h)
}

func TestRouter_MountsResources(t *testing.T) {
	uploads := http.StripPrefix("/uploads", http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = io.WriteString(writer, "file:"+request.URL.Path)
	}))
	router := newRouter(t, &config.Config{Environment: "development"}, api.Handlers{
		Players:      echoRoutes{"players"},
		Tags:         echoRoutes{"tags"},
		Drills:       echoRoutes{"drills"},
		Concepts:     echoRoutes{"concepts"},
		Encyclopedia: echoRoutes{"encyclopedia"},
		Assignments:  echoRoutes{"player-drills"},
		Sessions:     echoRoutes{"sessions"},
		UploadPrefix: "/uploads",
		Uploads:      uploads,
	})

	for _, name := range []string{"players", "tags", "drills", "concepts", "encyclopedia", "player-drills", "sessions"} {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/"+name, nil))
		assert.Equal(t, http.StatusOK, recorder.Code, name)
		assert.JSONEq(t, `{"data":"`+name+`"}`, recorder.Body.String())
		assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))
	assert.Equal(t, "file:/a.png", recorder.Body.String())
}

func TestRouter_AuthRequiredGuardsWrites(t *testing.T) {
	cfg := &config.Config{Environment: "production", JWTSecret: "s3cret", AuthRequired: true}
	router := newRouter(t, cfg, api.Handlers{Players: echoRoutes{"players"}})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/players", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/players", strings.NewReader("{}")))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	token, err := sec.NewTokenService("s3cret", "").SignToken("user-1", "coach@example.com", time.Hour)
	require.NoError(t, err)
	request := httptest.NewRequest(http.MethodPost, "/players", strings.NewReader("{}"))
	request.Header.Set("Authorization", "Bearer "+token)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
}

func TestHealthHandlers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{CheckDatabase: ok, CheckCache: ok}, logger)

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, recorder.Body.String())

	recorder = httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"ready","checks":[{"name":"postgres","ok":true},{"name":"redis","ok":true}]}}`, recorder.Body.String())

	_, readiness = api.NewHealthHandlers(api.HealthDependencies{CheckDatabase: down}, logger)
	recorder = httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"degraded","checks":[{"name":"postgres","ok":false,"error":"connection refused"}]}}`, recorder.Body.String())
}
