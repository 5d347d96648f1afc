// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared by the HTTP server,
// middleware and caches. Anything an operator may tune lives in config.
package constants

import "time"

// AppVersion is reported at startup.
const AppVersion = "0.1.0-dev"

// AuthIssuer is the "iss" claim on every access token.
const AuthIssuer = "nyan.app"

// HTTP server limits.
const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout bounds a handler and every SQL statement. It must
	// stay under DefaultWriteTimeout so the 503 can still be written.
	GlobalRequestTimeout = 10 * time.Second
	ShutdownTimeout      = 30 * time.Second
)

// Per-IP token bucket.
const (
	DefaultRateLimitRPS      = 100.0
	DefaultRateLimitBurst    = 150
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// Header names read or written by middleware.
const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXRequestID    = "X-Request-ID"
)

// Keys of the readiness body.
const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// RedisPrefixProfile namespaces cached public profiles by user id.
const RedisPrefixProfile = "identity:profile:"
