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

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

const (
	createSamplesTableSQL = `
CREATE TABLE IF NOT EXISTS metric_samples (
	name TEXT NOT NULL,
	value DOUBLE PRECISION NOT NULL,
	unit TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMPTZ NOT NULL
)`

	createSamplesIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_metric_samples_name_time
ON metric_samples (name, recorded_at DESC)`

	insertSampleSQL = `
INSERT INTO metric_samples (name, value, unit, recorded_at)
VALUES ($1, $2, $3, $4)`

	selectSummariesSQL = `
SELECT
	name,
	max(unit) AS unit,
	min(value) AS min,
	max(value) AS max,
	avg(value) AS avg,
	count(*) AS samples
FROM metric_samples
WHERE recorded_at > $1
GROUP BY name
ORDER BY name`

	pruneSamplesSQL = `DELETE FROM metric_samples WHERE recorded_at < $1`
)

// PostgresHistory implements HistoryStore on a pgx pool.
type PostgresHistory struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

var _ HistoryStore = (*PostgresHistory)(nil)

// NewPostgresHistory connects to the configured database and ensures
// the samples table exists.
func NewPostgresHistory(ctx context.Context, cfg *Config, log logger.Logger) (*PostgresHistory, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("history: failed to parse dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("history: failed to create pool: %w", err)
	}

	h := &PostgresHistory{pool: pool, logger: log}

	if err := h.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info().Str("database", poolConfig.ConnConfig.Database).Msg("Metric history connected to Postgres")

	return h, nil
}

func (h *PostgresHistory) ensureSchema(ctx context.Context) error {
	for _, stmt := range []string{createSamplesTableSQL, createSamplesIndexSQL} {
		if _, err := h.pool.Exec(ctx, stmt); err != nil {
			return classifyError("ensure schema", err)
		}
	}

	return nil
}

// RecordSamples inserts one tick's samples in a single batch round trip.
func (h *PostgresHistory) RecordSamples(ctx context.Context, samples []models.MetricSample) error {
	if len(samples) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range samples {
		batch.Queue(insertSampleSQL, samples[i].Name, samples[i].Value, samples[i].Unit, samples[i].Timestamp.UTC())
	}

	br := h.pool.SendBatch(ctx, batch)
	defer func() {
		if err := br.Close(); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to close sample batch")
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return classifyError("record samples", err)
		}
	}

	return nil
}

// Summaries aggregates min/max/avg per metric over the trailing window.
func (h *PostgresHistory) Summaries(ctx context.Context, window time.Duration) ([]models.MetricSummary, error) {
	rows, err := h.pool.Query(ctx, selectSummariesSQL, time.Now().UTC().Add(-window))
	if err != nil {
		return nil, classifyError("query summaries", err)
	}
	defer rows.Close()

	out := make([]models.MetricSummary, 0)

	for rows.Next() {
		var s models.MetricSummary

		if err := rows.Scan(&s.Name, &s.Unit, &s.Min, &s.Max, &s.Avg, &s.Samples); err != nil {
			return nil, classifyError("scan summary", err)
		}

		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, classifyError("read summaries", err)
	}

	return out, nil
}

// Prune drops samples older than the retention horizon.
func (h *PostgresHistory) Prune(ctx context.Context, olderThan time.Duration) error {
	tag, err := h.pool.Exec(ctx, pruneSamplesSQL, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return classifyError("prune samples", err)
	}

	if tag.RowsAffected() > 0 {
		h.logger.Debug().Int64("rows", tag.RowsAffected()).Msg("Pruned metric history")
	}

	return nil
}

// Ping verifies database connectivity.
func (h *PostgresHistory) Ping(ctx context.Context) error {
	if err := h.pool.Ping(ctx); err != nil {
		return classifyError("ping", err)
	}

	return nil
}

// Close releases the pool.
func (h *PostgresHistory) Close() {
	h.pool.Close()
}
