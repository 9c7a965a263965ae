/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

const rateLimiterSweepInterval = 5 * time.Minute

// RateLimiter decides whether a keyed client may make another request
// inside the current window.
type RateLimiter interface {
	Allow(key string, limit int, window time.Duration) rateDecision
	Close()
}

type rateDecision struct {
	allowed   bool
	count     int
	windowEnd time.Time
}

// NewRateLimiter builds the limiter the config asks for: Redis-backed when
// a Redis address is configured, in-memory otherwise. Returns nil when
// limiting is disabled.
func NewRateLimiter(cfg models.RateLimitConfig, log logger.Logger) (RateLimiter, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	if cfg.Redis != nil && cfg.Redis.Addr != "" {
		return NewRedisRateLimiter(cfg.Redis, log)
	}

	return NewMemoryRateLimiter(), nil
}

type rateState struct {
	count     int
	windowEnd time.Time
}

type memoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]rateState
	now     func() time.Time
	stopCh  chan struct{}
	once    sync.Once
}

// NewMemoryRateLimiter creates a process-local fixed-window limiter.
func NewMemoryRateLimiter() RateLimiter {
	rl := &memoryRateLimiter{
		entries: make(map[string]rateState),
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}

	go rl.sweepLoop()

	return rl
}

func (rl *memoryRateLimiter) Allow(key string, limit int, window time.Duration) rateDecision {
	if limit <= 0 {
		return rateDecision{allowed: true}
	}

	if window <= 0 {
		window = time.Minute
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	state, ok := rl.entries[key]
	if !ok || now.After(state.windowEnd) {
		state = rateState{count: 1, windowEnd: now.Add(window)}
		rl.entries[key] = state

		return rateDecision{allowed: true, count: state.count, windowEnd: state.windowEnd}
	}

	if state.count >= limit {
		return rateDecision{allowed: false, count: state.count, windowEnd: state.windowEnd}
	}

	state.count++
	rl.entries[key] = state

	return rateDecision{allowed: true, count: state.count, windowEnd: state.windowEnd}
}

func (rl *memoryRateLimiter) sweepLoop() {
	ticker := time.NewTicker(rateLimiterSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(rl.now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *memoryRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, state := range rl.entries {
		if now.After(state.windowEnd) {
			delete(rl.entries, key)
		}
	}
}

func (rl *memoryRateLimiter) Close() {
	rl.once.Do(func() {
		close(rl.stopCh)
	})
}

// RateLimitMiddleware enforces a per-client request limit. Clients over the
// limit get 429 with the standard error body. A nil limiter disables the
// middleware.
func RateLimitMiddleware(limiter RateLimiter, cfg models.RateLimitConfig, log logger.Logger) func(http.Handler) http.Handler {
	limit := cfg.Limit
	window := time.Duration(cfg.Window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := rateLimitKeyIP(r)
			decision := limiter.Allow(key, limit, window)
			applyRateHeaders(w, limit, decision)

			if !decision.allowed {
				log.Warn().
					Str("key", key).
					Str("path", r.URL.Path).
					Int("count", decision.count).
					Msg("Rate limit exceeded")
				writeRateLimitError(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func applyRateHeaders(w http.ResponseWriter, limit int, decision rateDecision) {
	if limit <= 0 {
		return
	}

	remaining := limit - decision.count
	if remaining < 0 {
		remaining = 0
	}

	headers := w.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

	if !decision.windowEnd.IsZero() {
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(decision.windowEnd.Unix(), 10))
	}
}

func writeRateLimitError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	_ = json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:      models.ErrCodeRateLimitExceeded,
			Message:   "rate limit exceeded",
			Timestamp: time.Now().UTC(),
		},
	})
}

func rateLimitKeyIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if host == "" {
		host = "unknown"
	}

	return "ip:" + host
}
