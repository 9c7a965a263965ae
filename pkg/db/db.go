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

// Package db persists metric history and answers summary queries over
// it. The default backend keeps a bounded in-memory window; the
// Postgres backend persists samples through a pgx pool. Callers tell
// connection failures apart from query failures so the API can serve a
// degraded fallback instead of a hard error when the database is down.
package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carverauto/cloudpulse/pkg/models"
)

var (
	// ErrDatabaseUnavailable marks failures to reach the history
	// backend at all. The API maps it to a degraded 503 with fallback
	// data rather than a hard failure.
	ErrDatabaseUnavailable = errors.New("history database unavailable")

	// ErrDatabaseOperation marks failures of a statement the backend
	// did receive and reject.
	ErrDatabaseOperation = errors.New("history database operation failed")

	errDSNRequired = errors.New("history dsn is required when history is enabled")
)

const (
	defaultSummaryWindow = time.Hour
	defaultRetention     = 24 * time.Hour
)

// Config controls the metric history backend.
type Config struct {
	Enabled       bool            `json:"enabled" yaml:"enabled"`
	DSN           string          `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	MaxConns      int32           `json:"max_conns,omitempty" yaml:"max_conns,omitempty"`
	SummaryWindow models.Duration `json:"summary_window,omitempty" yaml:"summary_window,omitempty"`
	Retention     models.Duration `json:"retention,omitempty" yaml:"retention,omitempty"`
}

// Validate implements config.Validator interface.
func (c *Config) Validate() error {
	if c.Enabled && c.DSN == "" {
		return errDSNRequired
	}

	if time.Duration(c.SummaryWindow) == 0 {
		c.SummaryWindow = models.Duration(defaultSummaryWindow)
	}

	if time.Duration(c.Retention) == 0 {
		c.Retention = models.Duration(defaultRetention)
	}

	return nil
}

// classifyError separates statement rejections from connectivity
// failures. A *pgconn.PgError means the server processed and refused
// the statement; anything else means we never got an answer.
func classifyError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s: %s", ErrDatabaseOperation, op, pgErr.Message)
	}

	return fmt.Errorf("%w: %s: %w", ErrDatabaseUnavailable, op, err)
}
