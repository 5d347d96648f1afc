// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/nyan/internal/platform/apperr"
	"github.com/taibuivan/nyan/internal/platform/constants"
	"github.com/taibuivan/nyan/internal/platform/respond"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client address in memory. Each
// replica limits independently.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
}

// NewRateLimiter allows rps sustained requests per address with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(rps),
		burst:   burst,
	}
}

// Allow takes one token from ip's bucket.
func (limiter *RateLimiter) Allow(ip string) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	b, ok := limiter.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

// Janitor drops buckets idle for longer than the client TTL, until ctx ends.
func (limiter *RateLimiter) Janitor(ctx context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			limiter.sweep(now.Add(-constants.RateLimitClientTTL))
		}
	}
}

func (limiter *RateLimiter) sweep(idleBefore time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	for ip, b := range limiter.buckets {
		if b.lastSeen.Before(idleBefore) {
			delete(limiter.buckets, ip)
		}
	}
}

// Middleware answers 429 once the caller's bucket is empty.
func (limiter *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if limiter.Allow(RealIP(request)) {
			next.ServeHTTP(writer, request)
			return
		}
		writer.Header().Set("Retry-After", "1")
		respond.Error(writer, request, apperr.RateLimited(1))
	})
}
