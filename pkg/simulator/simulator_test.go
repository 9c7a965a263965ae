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

package simulator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
	"github.com/carverauto/cloudpulse/pkg/store"
)

func testConfig(t *testing.T) *Config {
	t.Helper()

	cfg := &Config{Seed: 42}
	require.NoError(t, cfg.Validate())

	return cfg
}

func TestSimulatorStartPopulatesStoreImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig(t)
	st := store.New(cfg.LogRetention)
	base := time.Now()

	clock := NewMockClock(ctrl)
	clock.EXPECT().Now().Return(base).AnyTimes()

	metricsCh := make(chan time.Time, 1)
	servicesCh := make(chan time.Time, 1)
	logsCh := make(chan time.Time, 1)

	for interval, ch := range map[time.Duration]chan time.Time{
		time.Duration(cfg.MetricsInterval):  metricsCh,
		time.Duration(cfg.ServicesInterval): servicesCh,
		time.Duration(cfg.LogsInterval):     logsCh,
	} {
		ticker := NewMockTicker(ctrl)

		var readOnly <-chan time.Time = ch

		ticker.EXPECT().Chan().Return(readOnly).AnyTimes()
		ticker.EXPECT().Stop()
		clock.EXPECT().Ticker(interval).Return(ticker)
	}

	sim := New(cfg, st, st, clock, nil, logger.NewTestLogger())

	ctx := context.Background()
	require.NoError(t, sim.Start(ctx))

	// The initial synchronous tick fills both partitions before any
	// ticker fires.
	assert.True(t, sim.Ready())
	assert.Len(t, st.Metrics(), len(cfg.Metrics))
	assert.Len(t, st.Services(), len(cfg.Services))

	for _, m := range st.Metrics() {
		assert.Equal(t, base, m.Timestamp)
	}

	// Driving the telemetry ticker advances the snapshot.
	tickTime := base.Add(time.Duration(cfg.MetricsInterval))
	metricsCh <- tickTime

	require.Eventually(t, func() bool {
		metrics := st.Metrics()
		return len(metrics) > 0 && metrics[0].Timestamp.Equal(tickTime)
	}, time.Second, 5*time.Millisecond)

	// Driving the logs ticker produces a heartbeat record.
	logsCh <- base.Add(time.Duration(cfg.LogsInterval))

	require.Eventually(t, func() bool {
		return st.LogStats().Total > 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, sim.Stop(ctx))
}

func TestSimulatorStopIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	st := store.New(cfg.LogRetention)

	sim := New(cfg, st, st, nil, nil, logger.NewTestLogger())

	ctx := context.Background()
	require.NoError(t, sim.Start(ctx))
	require.NoError(t, sim.Stop(ctx))
	require.NoError(t, sim.Stop(ctx))
}

func TestSafeTickAbsorbsPanic(t *testing.T) {
	cfg := testConfig(t)
	st := store.New(cfg.LogRetention)

	sim := New(cfg, st, st, nil, nil, logger.NewTestLogger())

	require.NotPanics(t, func() {
		sim.safeTick(context.Background(), "telemetry", time.Now(), func(context.Context, time.Time) {
			panic("tick blew up")
		})
	})
}

func TestSimulatorSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	cfg := &Config{Seed: 7, PersistState: true, DataDir: dir}
	require.NoError(t, cfg.Validate())

	first := store.New(cfg.LogRetention)
	sim := New(cfg, first, first, nil, nil, logger.NewTestLogger())

	require.NoError(t, sim.Start(ctx))
	require.NoError(t, sim.Stop(ctx))

	savedMetrics := sim.telemetry.Metrics()
	savedServices := sim.health.Services()

	_, err := os.Stat(filepath.Join(dir, "cloudpulse-state.json"))
	require.NoError(t, err)

	restoredCfg := &Config{Seed: 7, PersistState: true, DataDir: dir}
	require.NoError(t, restoredCfg.Validate())

	second := store.New(restoredCfg.LogRetention)
	restored := New(restoredCfg, second, second, nil, nil, logger.NewTestLogger())

	metrics := restored.telemetry.Metrics()
	require.Len(t, metrics, len(savedMetrics))

	for i := range metrics {
		assert.Equal(t, savedMetrics[i].Name, metrics[i].Name)
		assert.InDelta(t, savedMetrics[i].Value, metrics[i].Value, 0.0001)
		assert.Equal(t, savedMetrics[i].Status, metrics[i].Status)
	}

	services := restored.health.Services()
	require.Len(t, services, len(savedServices))

	for i := range services {
		assert.Equal(t, savedServices[i].ID, services[i].ID)
		assert.Equal(t, savedServices[i].Status, services[i].Status)
		assert.InDelta(t, savedServices[i].Uptime, services[i].Uptime, 0.0001)
	}
}

func TestSimulatorIgnoresStaleSnapshot(t *testing.T) {
	dir := t.TempDir()

	stale := snapshotState{
		SavedAt: time.Now().Add(-2 * time.Hour),
		Metrics: []models.MetricSeries{
			{Name: "cpu", Value: 85},
		},
	}

	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cloudpulse-state.json"), data, 0o600))

	cfg := &Config{Seed: 7, PersistState: true, DataDir: dir}
	require.NoError(t, cfg.Validate())

	st := store.New(cfg.LogRetention)
	sim := New(cfg, st, st, nil, nil, logger.NewTestLogger())

	for _, m := range sim.telemetry.Metrics() {
		if m.Name == "cpu" {
			assert.InDelta(t, midpoint(20, 90), m.Value, 0.0001)
		}
	}
}
