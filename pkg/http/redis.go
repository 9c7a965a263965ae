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
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

const (
	redisKeyPrefix   = "cloudpulse:ratelimit:"
	redisDialTimeout = 2 * time.Second
	redisOpTimeout   = 250 * time.Millisecond
)

type redisRateLimiter struct {
	client  *redis.Client
	logger  logger.Logger
	prefix  string
	timeout time.Duration
}

// NewRedisRateLimiter constructs a Redis-backed fixed-window limiter so
// limits hold across API replicas. Redis failures fail open: requests are
// allowed and the error is logged.
func NewRedisRateLimiter(cfg *models.RedisConfig, log logger.Logger) (RateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &redisRateLimiter{
		client:  client,
		logger:  log,
		prefix:  redisKeyPrefix,
		timeout: redisOpTimeout,
	}, nil
}

func (rl *redisRateLimiter) Allow(key string, limit int, window time.Duration) rateDecision {
	if limit <= 0 {
		return rateDecision{allowed: true}
	}

	if window <= 0 {
		window = time.Minute
	}

	ctx, cancel := context.WithTimeout(context.Background(), rl.timeout)
	defer cancel()

	redisKey := rl.prefix + key

	counter, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		rl.logger.Error().Err(err).Str("op", "incr").Msg("Redis rate limiter error")
		return rateDecision{allowed: true}
	}

	if counter == 1 {
		if err := rl.client.Expire(ctx, redisKey, window).Err(); err != nil {
			rl.logger.Error().Err(err).Str("op", "expire").Msg("Redis rate limiter error")
		}
	}

	ttl, err := rl.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl <= 0 {
		ttl = window
	}

	return rateDecision{
		allowed:   int(counter) <= limit,
		count:     int(counter),
		windowEnd: time.Now().Add(ttl),
	}
}

func (rl *redisRateLimiter) Close() {
	if rl.client != nil {
		_ = rl.client.Close()
	}
}
