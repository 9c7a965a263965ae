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

// Package core composes the CloudPulse service: the generation pipeline,
// the live store, metric history, and the event publisher. The API layer
// talks to the Server; the Server owns everything behind it.
package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/carverauto/cloudpulse/pkg/db"
	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
	"github.com/carverauto/cloudpulse/pkg/natsutil"
	"github.com/carverauto/cloudpulse/pkg/simulator"
	"github.com/carverauto/cloudpulse/pkg/store"
)

const (
	historyPruneInterval = 1 * time.Hour
	healthPingTimeout    = 2 * time.Second
)

// Server wires the simulator into the store and history and answers the
// API layer's queries.
type Server struct {
	config    *Config
	store     *store.Store
	sink      *historySink
	history   db.HistoryStore
	sim       *simulator.Simulator
	natsConn  *nats.Conn
	logger    logger.Logger
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewServer builds the service from its configuration. The history store
// is Postgres when a database is configured and an in-process store
// otherwise, so metric summaries work in both shapes.
func NewServer(ctx context.Context, cfg *Config, log logger.Logger) (*Server, error) {
	st := store.New(cfg.Simulator.LogRetention)

	var history db.HistoryStore

	if cfg.Database.Enabled {
		pg, err := db.NewPostgresHistory(ctx, &cfg.Database, log)
		if err != nil {
			return nil, err
		}

		history = pg
	} else {
		history = db.NewMemoryHistory(time.Duration(cfg.Database.Retention))
	}

	var (
		publisher simulator.TransitionPublisher
		natsConn  *nats.Conn
	)

	if cfg.Events.Enabled {
		pub, nc, err := natsutil.ConnectWithEventPublisher(ctx, cfg.NATS, &cfg.Events, log)
		if err != nil {
			history.Close()
			return nil, err
		}

		publisher = pub
		natsConn = nc
	}

	sink := newHistorySink(st, history, log)
	sim := simulator.New(&cfg.Simulator, sink, st, nil, publisher, log)

	return &Server{
		config:   cfg,
		store:    st,
		sink:     sink,
		history:  history,
		sim:      sim,
		natsConn: natsConn,
		logger:   log,
		done:     make(chan struct{}),
	}, nil
}

// Start launches the generation pipeline and the history prune loop.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Str("listen_addr", s.config.ListenAddr).Msg("Starting core service")

	if err := s.sim.Start(ctx); err != nil {
		return err
	}

	s.wg.Add(1)

	go s.runHistoryPrune(ctx)

	return nil
}

// Stop shuts the pipeline down, drains pending history writes, and closes
// external connections.
func (s *Server) Stop(ctx context.Context) error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	if err := s.sim.Stop(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Simulator stop reported an error")
	}

	s.wg.Wait()
	s.sink.wait()

	if s.natsConn != nil {
		s.natsConn.Close()
	}

	s.history.Close()

	s.logger.Info().Msg("Core service stopped")

	return nil
}

func (s *Server) runHistoryPrune(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(historyPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.history.Prune(ctx, time.Duration(s.config.Database.Retention)); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to prune metric history")
			}
		}
	}
}

// Metrics returns the latest metric snapshot.
func (s *Server) Metrics() []models.MetricSeries {
	return s.store.Metrics()
}

// MetricsSummary returns windowed aggregates from the history store. When
// the store is unreachable it degrades to the live snapshot wrapped in a
// DegradedDataError so the API can serve 503 with fallback data.
func (s *Server) MetricsSummary(ctx context.Context) ([]models.MetricSummary, error) {
	window := time.Duration(s.config.Database.SummaryWindow)

	summaries, err := s.history.Summaries(ctx, window)
	if err != nil {
		if errors.Is(err, db.ErrDatabaseUnavailable) {
			return nil, &models.DegradedDataError{
				Cause:    err,
				Fallback: s.store.Metrics(),
			}
		}

		return nil, err
	}

	return summaries, nil
}

// Services returns the current service registry.
func (s *Server) Services() []models.ServiceRecord {
	return s.store.Services()
}

// Service returns a single service by ID.
func (s *Server) Service(id string) (models.ServiceRecord, error) {
	return s.store.Service(id)
}

// ServiceHealth returns the health projection for a single service.
func (s *Server) ServiceHealth(id string) (models.ServiceHealth, error) {
	return s.store.ServiceHealth(id)
}

// Logs returns a filtered page of recent log records.
func (s *Server) Logs(q models.LogQuery) models.LogsPage {
	return s.store.Logs(q)
}

// LogStats returns per-level counts over the retained log window.
func (s *Server) LogStats() models.LogStats {
	return s.store.LogStats()
}

// LogServices returns the distinct service names in the retained window.
func (s *Server) LogServices() []string {
	return s.store.LogServices()
}

// SubscribeLogs registers a log stream subscriber.
func (s *Server) SubscribeLogs(buffer int) (<-chan models.LogRecord, func()) {
	return s.store.SubscribeLogs(buffer)
}

// Status derives the system status aggregate.
func (s *Server) Status() models.SystemStatus {
	return s.store.Status()
}

// Ready reports whether the pipeline has produced its first tick.
func (s *Server) Ready() bool {
	return s.sim.Ready()
}

// Health reports process health. The pipeline check reflects generator
// readiness; the history check pings the store and degrades overall
// status when the database is configured but unreachable.
func (s *Server) Health(ctx context.Context) models.HealthResponse {
	checks := map[string]string{
		"pipeline": "ok",
		"history":  "ok",
	}
	status := models.HealthStateHealthy

	if !s.sim.Ready() {
		checks["pipeline"] = "starting"
		status = models.HealthStateDegraded
	}

	pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	if err := s.history.Ping(pingCtx); err != nil {
		checks["history"] = "unreachable"
		status = models.HealthStateDegraded
	}

	return models.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}
}
