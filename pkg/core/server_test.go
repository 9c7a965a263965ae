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

package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/cloudpulse/pkg/db"
	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
	"github.com/carverauto/cloudpulse/pkg/simulator"
	"github.com/carverauto/cloudpulse/pkg/store"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()

	cfg := &Config{
		Simulator: simulator.Config{Seed: 7},
	}
	require.NoError(t, cfg.Validate())

	return cfg
}

// newMockedServer builds a Server around a mock history store without
// starting the pipeline.
func newMockedServer(t *testing.T, history db.HistoryStore) *Server {
	t.Helper()

	cfg := newTestConfig(t)
	st := store.New(cfg.Simulator.LogRetention)
	log := logger.NewTestLogger()
	sink := newHistorySink(st, history, log)

	return &Server{
		config:  cfg,
		store:   st,
		sink:    sink,
		history: history,
		sim:     simulator.New(&cfg.Simulator, sink, st, nil, nil, log),
		logger:  log,
		done:    make(chan struct{}),
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := newTestConfig(t)

	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.NotEmpty(t, cfg.Simulator.Metrics)
	assert.Equal(t, time.Hour, time.Duration(cfg.Database.SummaryWindow))
	assert.Equal(t, 24*time.Hour, time.Duration(cfg.Database.Retention))
}

func TestConfigValidateEventsRequireNATS(t *testing.T) {
	cfg := &Config{
		Simulator: simulator.Config{Seed: 7},
		Events:    models.EventsConfig{Enabled: true},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, errNATSConfigRequired)

	cfg.NATS = &models.NATSConfig{URL: "nats://localhost:4222"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "events", cfg.Events.StreamName)
	assert.Equal(t, "events.service.health", cfg.Events.Subject)
}

func TestHistorySinkMirrorsSamples(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := db.NewMockHistoryStore(ctrl)
	st := store.New(10)
	sink := newHistorySink(st, history, logger.NewTestLogger())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	series := []models.MetricSeries{
		{Name: "cpu", Value: 51.5, Unit: "%", Status: models.MetricStatusHealthy, Timestamp: now},
		{Name: "memory", Value: 62.0, Unit: "%", Status: models.MetricStatusWarning, Timestamp: now},
	}

	history.EXPECT().
		RecordSamples(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, samples []models.MetricSample) error {
			require.Len(t, samples, 2)
			assert.Equal(t, "cpu", samples[0].Name)
			assert.InDelta(t, 51.5, samples[0].Value, 0.0001)
			assert.True(t, now.Equal(samples[0].Timestamp))

			return nil
		})

	sink.UpdateMetrics(now, series)
	sink.wait()

	assert.Len(t, st.Metrics(), 2)
}

func TestHistorySinkAbsorbsWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := db.NewMockHistoryStore(ctrl)
	history.EXPECT().
		RecordSamples(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: insert: dial refused", db.ErrDatabaseUnavailable))

	st := store.New(10)
	sink := newHistorySink(st, history, logger.NewTestLogger())

	now := time.Now()
	sink.UpdateMetrics(now, []models.MetricSeries{{Name: "cpu", Value: 40}})
	sink.wait()

	// The live store is updated even when history is down.
	assert.Len(t, st.Metrics(), 1)
}

func TestHistorySinkNilHistoryPassesThrough(t *testing.T) {
	st := store.New(10)
	sink := newHistorySink(st, nil, logger.NewTestLogger())

	require.NotPanics(t, func() {
		sink.UpdateMetrics(time.Now(), []models.MetricSeries{{Name: "cpu", Value: 40}})
		sink.wait()
	})

	assert.Len(t, st.Metrics(), 1)
}

func TestMetricsSummarySuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := db.NewMockHistoryStore(ctrl)
	want := []models.MetricSummary{
		{Name: "cpu", Unit: "%", Min: 40, Max: 60, Avg: 50, Samples: 3},
	}

	history.EXPECT().Summaries(gomock.Any(), time.Hour).Return(want, nil)

	s := newMockedServer(t, history)

	got, err := s.MetricsSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMetricsSummaryDegradedFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := db.NewMockHistoryStore(ctrl)
	history.EXPECT().
		Summaries(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: summaries: connection refused", db.ErrDatabaseUnavailable))

	s := newMockedServer(t, history)

	now := time.Now()
	s.store.UpdateMetrics(now, []models.MetricSeries{
		{Name: "cpu", Value: 45.5, Unit: "%", Status: models.MetricStatusHealthy, Timestamp: now},
	})

	_, err := s.MetricsSummary(context.Background())
	require.Error(t, err)

	var degraded *models.DegradedDataError
	require.ErrorAs(t, err, &degraded)

	fallback, ok := degraded.Fallback.([]models.MetricSeries)
	require.True(t, ok, "fallback should be the live metric snapshot")
	require.Len(t, fallback, 1)
	assert.Equal(t, "cpu", fallback[0].Name)
}

func TestMetricsSummaryOperationErrorNotDegraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	opErr := fmt.Errorf("%w: summaries: syntax error", db.ErrDatabaseOperation)

	history := db.NewMockHistoryStore(ctrl)
	history.EXPECT().Summaries(gomock.Any(), gomock.Any()).Return(nil, opErr)

	s := newMockedServer(t, history)

	_, err := s.MetricsSummary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, db.ErrDatabaseOperation)

	var degraded *models.DegradedDataError
	assert.False(t, errors.As(err, &degraded), "operation failures surface as hard errors")
}

func TestServerHealthDegradedBeforeStartAndWithoutHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	history := db.NewMockHistoryStore(ctrl)
	history.EXPECT().Ping(gomock.Any()).Return(fmt.Errorf("%w: ping: dial refused", db.ErrDatabaseUnavailable))

	s := newMockedServer(t, history)

	health := s.Health(context.Background())
	assert.Equal(t, models.HealthStateDegraded, health.Status)
	assert.Equal(t, "starting", health.Checks["pipeline"])
	assert.Equal(t, "unreachable", health.Checks["history"])
}

func TestServerEndToEnd(t *testing.T) {
	cfg := newTestConfig(t)
	log := logger.NewTestLogger()

	s, err := NewServer(context.Background(), cfg, log)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))

	// The pipeline ticks once synchronously on Start.
	assert.True(t, s.Ready())
	assert.NotEmpty(t, s.Metrics())
	assert.Len(t, s.Services(), 6)

	status := s.Status()
	assert.Equal(t, 6, status.ServicesTotal)
	assert.False(t, status.LastUpdated.IsZero())

	// History writes are asynchronous; summaries appear shortly after.
	require.Eventually(t, func() bool {
		summaries, sumErr := s.MetricsSummary(ctx)
		return sumErr == nil && len(summaries) == len(cfg.Simulator.Metrics)
	}, 2*time.Second, 20*time.Millisecond)

	health := s.Health(ctx)
	assert.Equal(t, models.HealthStateHealthy, health.Status)

	require.NoError(t, s.Stop(ctx))
}

func TestServerServiceLookup(t *testing.T) {
	s := newMockedServer(t, db.NewMemoryHistory(0))

	now := time.Now()
	s.store.UpdateServices(now, []models.ServiceRecord{
		{ID: "api-gateway", Name: "API Gateway", Status: models.ServiceOnline, Uptime: 99.8, LastChecked: now},
	})

	rec, err := s.Service("api-gateway")
	require.NoError(t, err)
	assert.Equal(t, "API Gateway", rec.Name)

	_, err = s.Service("ghost")
	require.Error(t, err)

	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
