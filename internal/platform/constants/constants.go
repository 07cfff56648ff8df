// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, cache keys and the shared field
names used in JSON payloads and validation errors.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Uploads: Size limits and form field names.
  - Cache: Key taxonomy for the Redis read cache.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "dugout-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads of drill videos need more headroom than plain JSON bodies.
	DefaultReadTimeout = 60 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds connecting to Postgres and Redis at boot.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Uploads

const (
	// MaxMultipartMemory is the in-memory part of a multipart form; the rest spills to disk.
	MaxMultipartMemory = 32 << 20

	// FormFieldFile is the multipart field used by the generic upload endpoints.
	FormFieldFile = "file"
)

// # Dates

const (
	// DateLayout is the only accepted wire format for calendar dates.
	DateLayout = "2006-01-02"
)

// # Health Payload Fields

// Envelope keys (data, meta, error, code, details) live on the respond types.
const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Cache Keys

const (
	CacheKeyTags              = "dugout:tags:all"
	CacheKeyConceptCategories = "dugout:concepts:categories"
)
