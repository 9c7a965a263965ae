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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

func newFrozenMemoryLimiter(now time.Time) (*memoryRateLimiter, *time.Time) {
	current := now
	rl := &memoryRateLimiter{
		entries: make(map[string]rateState),
		now:     func() time.Time { return current },
		stopCh:  make(chan struct{}),
	}

	return rl, &current
}

func TestMemoryRateLimiterWindow(t *testing.T) {
	rl, now := newFrozenMemoryLimiter(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		decision := rl.Allow("ip:10.0.0.1", 3, time.Minute)
		assert.True(t, decision.allowed, "request %d should be allowed", i+1)
		assert.Equal(t, i+1, decision.count)
	}

	decision := rl.Allow("ip:10.0.0.1", 3, time.Minute)
	assert.False(t, decision.allowed)
	assert.Equal(t, 3, decision.count)

	// Other clients keep their own windows.
	other := rl.Allow("ip:10.0.0.2", 3, time.Minute)
	assert.True(t, other.allowed)
	assert.Equal(t, 1, other.count)

	// The window expiring resets the counter.
	*now = now.Add(61 * time.Second)

	decision = rl.Allow("ip:10.0.0.1", 3, time.Minute)
	assert.True(t, decision.allowed)
	assert.Equal(t, 1, decision.count)
}

func TestMemoryRateLimiterZeroLimitAllowsAll(t *testing.T) {
	rl, _ := newFrozenMemoryLimiter(time.Now())

	for i := 0; i < 100; i++ {
		assert.True(t, rl.Allow("ip:10.0.0.1", 0, time.Minute).allowed)
	}
}

func TestMemoryRateLimiterCleanup(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl, _ := newFrozenMemoryLimiter(base)

	rl.Allow("ip:10.0.0.1", 5, time.Minute)
	rl.Allow("ip:10.0.0.2", 5, time.Hour)

	rl.cleanup(base.Add(2 * time.Minute))

	rl.mu.Lock()
	defer rl.mu.Unlock()

	assert.NotContains(t, rl.entries, "ip:10.0.0.1")
	assert.Contains(t, rl.entries, "ip:10.0.0.2")
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newFrozenMemoryLimiter(time.Now())

	cfg := models.RateLimitConfig{
		Enabled: true,
		Limit:   2,
		Window:  models.Duration(time.Minute),
	}

	handler := RateLimitMiddleware(rl, cfg, logger.NewTestLogger())(okHandler(t))

	makeRequest := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/metrics", http.NoBody)
		req.RemoteAddr = "10.1.2.3:50000"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		return rr
	}

	first := makeRequest()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := makeRequest()
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := makeRequest()
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("X-RateLimit-Reset"))

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(third.Body.Bytes(), &body))
	assert.Equal(t, models.ErrCodeRateLimitExceeded, body.Error.Code)
	assert.Equal(t, "rate limit exceeded", body.Error.Message)
	assert.False(t, body.Error.Timestamp.IsZero())
}

func TestRateLimitMiddlewareNilLimiterPassesThrough(t *testing.T) {
	cfg := models.RateLimitConfig{Enabled: true, Limit: 1, Window: models.Duration(time.Minute)}
	handler := RateLimitMiddleware(nil, cfg, logger.NewTestLogger())(okHandler(t))

	for i := 0; i < 5; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestNewRateLimiterDisabled(t *testing.T) {
	limiter, err := NewRateLimiter(models.RateLimitConfig{}, logger.NewTestLogger())

	require.NoError(t, err)
	assert.Nil(t, limiter)
}

func TestNewRateLimiterMemoryDefault(t *testing.T) {
	cfg := models.RateLimitConfig{Enabled: true, Limit: 10, Window: models.Duration(time.Minute)}

	limiter, err := NewRateLimiter(cfg, logger.NewTestLogger())
	require.NoError(t, err)
	require.NotNil(t, limiter)

	defer limiter.Close()

	assert.True(t, limiter.Allow("ip:10.0.0.1", 10, time.Minute).allowed)
}

func TestRateLimitConfigDefaults(t *testing.T) {
	cfg := models.RateLimitConfig{Enabled: true}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 120, cfg.Limit)
	assert.Equal(t, time.Minute, time.Duration(cfg.Window))
}
