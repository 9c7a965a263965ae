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

// Package poller is the dashboard-side consumer of the CloudPulse API. It
// keeps one polling cache per resource warm through the resilient client
// and periodically logs a consolidated snapshot of what a dashboard would
// render, stale values included.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/carverauto/cloudpulse/pkg/client"
	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

// Poller owns the per-resource caches and the snapshot loop.
type Poller struct {
	config   *Config
	client   *client.Client
	clock    client.Clock
	metrics  *client.PollingCache[[]models.MetricSeries]
	services *client.PollingCache[[]models.ServiceRecord]
	logs     *client.PollingCache[models.LogsPage]
	status   *client.PollingCache[models.SystemStatus]
	logger   logger.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a poller against the configured core address. A nil clock
// uses real time.
func New(_ context.Context, cfg *Config, clock client.Clock, log logger.Logger, options ...func(*client.Client)) (*Poller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if clock == nil {
		clock = client.RealClock()
	}

	c := client.New(&cfg.Client, log, options...)

	p := &Poller{
		config: cfg,
		client: c,
		clock:  clock,
		logger: log,
		done:   make(chan struct{}),
	}

	p.metrics = client.NewPollingCache("metrics", c.Metrics,
		client.ResourceConfig{Interval: time.Duration(cfg.Intervals.Metrics)}, clock)

	p.services = client.NewPollingCache("services", c.Services,
		client.ResourceConfig{Interval: time.Duration(cfg.Intervals.Services)}, clock)

	logQuery := models.LogQuery{Limit: cfg.LogPageSize}
	p.logs = client.NewPollingCache("logs",
		func(ctx context.Context) (models.LogsPage, error) {
			return c.Logs(ctx, logQuery)
		},
		client.ResourceConfig{Interval: time.Duration(cfg.Intervals.Logs)}, clock)

	p.status = client.NewPollingCache("status", c.Status,
		client.ResourceConfig{Interval: time.Duration(cfg.Intervals.Status)}, clock)

	return p, nil
}

// Start launches the cache refresh loops and the snapshot loop.
func (p *Poller) Start(ctx context.Context) error {
	p.logger.Info().
		Str("core_address", p.config.CoreAddress).
		Msg("Starting dashboard poller")

	p.metrics.Start(ctx)
	p.services.Start(ctx)
	p.logs.Start(ctx)
	p.status.Start(ctx)

	p.wg.Add(1)

	go p.runSnapshotLoop(ctx)

	return nil
}

// Stop halts the snapshot loop and every cache.
func (p *Poller) Stop(_ context.Context) error {
	p.closeOnce.Do(func() {
		close(p.done)
	})

	p.wg.Wait()

	p.metrics.Stop()
	p.services.Stop()
	p.logs.Stop()
	p.status.Stop()

	p.logger.Info().Msg("Dashboard poller stopped")

	return nil
}

// Metrics returns the cached metric snapshot.
func (p *Poller) Metrics(ctx context.Context) ([]models.MetricSeries, error) {
	return p.metrics.Read(ctx)
}

// Services returns the cached service registry.
func (p *Poller) Services(ctx context.Context) ([]models.ServiceRecord, error) {
	return p.services.Read(ctx)
}

// Logs returns the cached log page.
func (p *Poller) Logs(ctx context.Context) (models.LogsPage, error) {
	return p.logs.Read(ctx)
}

// Status returns the cached system status.
func (p *Poller) Status(ctx context.Context) (models.SystemStatus, error) {
	return p.status.Read(ctx)
}

// Stale reports which resources are currently serving stale data.
func (p *Poller) Stale() map[string]bool {
	return map[string]bool{
		p.metrics.Name():  p.metrics.IsStale(),
		p.services.Name(): p.services.IsStale(),
		p.logs.Name():     p.logs.IsStale(),
		p.status.Name():   p.status.IsStale(),
	}
}

func (p *Poller) runSnapshotLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := p.clock.Ticker(time.Duration(p.config.SnapshotInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case <-ticker.Chan():
			p.logSnapshot(ctx)
		}
	}
}

// logSnapshot reads every cache and logs the consolidated view. Reads
// never block on an in-flight refresh, so a degraded core only shows up
// as staleness here, not as a stalled loop.
func (p *Poller) logSnapshot(ctx context.Context) {
	status, err := p.status.Read(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("No system status available yet")
		return
	}

	event := p.logger.Info().
		Str("overall_status", string(status.OverallStatus)).
		Int("services_online", status.ServicesOnline).
		Int("services_total", status.ServicesTotal).
		Int("critical_alerts", status.CriticalAlerts)

	if metrics, mErr := p.metrics.Read(ctx); mErr == nil {
		values := make(map[string]float64, len(metrics))
		for _, m := range metrics {
			values[m.Name] = m.Value
		}

		event = event.Interface("metrics", values)
	}

	if page, lErr := p.logs.Read(ctx); lErr == nil {
		event = event.Int("recent_logs", len(page.Logs))
	}

	stale := make([]string, 0, 4)

	for name, isStale := range p.Stale() {
		if isStale {
			stale = append(stale, name)
		}
	}

	event.Strs("stale_resources", stale).Msg("Dashboard snapshot")
}
