// Copyright (c) 2026 Dugout. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/constants"
	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
	"github.com/dugoutlab/dugout/internal/platform/respond"
	"github.com/dugoutlab/dugout/internal/platform/sec"
)

// TokenVerifier defines what the middleware needs from the token service.
type TokenVerifier interface {
	Enabled() bool
	VerifyToken(tokenStr string) (*sec.Claims, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. No header, or verification disabled: the request proceeds as anonymous.
//  2. Malformed header or invalid token: 401.
//  3. Valid token: [*sec.Claims] is injected into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			if authHeader == "" || !verifier.Enabled() {
				next.ServeHTTP(writer, request)
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token").WithCause(err))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated (401) and those
// carrying only the public project key (403).
// Must be registered AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		if claims.Anonymous() {
			respond.Error(writer, request, apperr.Forbidden("A signed-in account is required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAuthForWrites applies [RequireAuth] to every method except
// GET, HEAD and OPTIONS. With required=false it is a pass-through.
func RequireAuthForWrites(required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !required {
			return next
		}
		guarded := RequireAuth(next)
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			switch request.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(writer, request)
			default:
				guarded.ServeHTTP(writer, request)
			}
		})
	}
}
