// Copyright (c) 2026 Dugout. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/dugoutlab/dugout/internal/platform/ctxkey"
	"github.com/dugoutlab/dugout/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity

// WithAuthUser returns a new context with the provided claims attached.
func WithAuthUser(ctx context.Context, user *sec.Claims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser retrieves the [*sec.Claims] from the [context.Context].
func GetAuthUser(ctx context.Context) *sec.Claims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.Claims)
	if !ok {
		return nil
	}
	return claims
}

// Actor returns the subject of the authenticated caller, or "" for anonymous requests.
func Actor(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.Actor()
	}
	return ""
}
