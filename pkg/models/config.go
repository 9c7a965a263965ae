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

package models

import "time"

const (
	defaultRateLimit       = 120
	defaultRateLimitWindow = time.Minute
)

// CORSConfig controls cross-origin access to the HTTP API.
type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	AllowCredentials bool     `json:"allow_credentials,omitempty" yaml:"allow_credentials,omitempty"`
}

// RedisConfig points the rate limiter at a shared Redis instance so limits
// hold across replicas.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
}

// RateLimitConfig controls per-client request limiting on the API.
// When Redis is nil the limiter keeps windows in process memory.
type RateLimitConfig struct {
	Enabled bool         `json:"enabled" yaml:"enabled"`
	Limit   int          `json:"limit,omitempty" yaml:"limit,omitempty"`
	Window  Duration     `json:"window,omitempty" yaml:"window,omitempty"`
	Redis   *RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
}

// Validate applies defaults for missing rate limit settings.
func (c *RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Limit <= 0 {
		c.Limit = defaultRateLimit
	}

	if c.Window <= 0 {
		c.Window = Duration(defaultRateLimitWindow)
	}

	return nil
}
