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
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/cloudpulse/pkg/models"
	"github.com/carverauto/cloudpulse/pkg/store"
)

func TestStatusForAboveDirection(t *testing.T) {
	def := &MetricDefinition{Name: "cpu", Min: 0, Max: 100, Step: 5, Warning: 60, Critical: 80, Direction: models.ThresholdAbove}

	tests := []struct {
		value    float64
		expected models.MetricStatus
	}{
		{value: 59, expected: models.MetricStatusHealthy},
		// Sitting exactly on a threshold has not crossed it.
		{value: 60, expected: models.MetricStatusHealthy},
		{value: 61, expected: models.MetricStatusWarning},
		{value: 79, expected: models.MetricStatusWarning},
		{value: 80, expected: models.MetricStatusWarning},
		{value: 81, expected: models.MetricStatusCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, statusFor(def, tt.value), "value %.0f", tt.value)
	}
}

func TestStatusForBelowDirection(t *testing.T) {
	def := &MetricDefinition{Name: "overall_health", Min: 0, Max: 100, Step: 2.5, Warning: 90, Critical: 75, Direction: models.ThresholdBelow}

	tests := []struct {
		value    float64
		expected models.MetricStatus
	}{
		{value: 95, expected: models.MetricStatusHealthy},
		{value: 90, expected: models.MetricStatusHealthy},
		{value: 85, expected: models.MetricStatusWarning},
		{value: 75, expected: models.MetricStatusWarning},
		{value: 70, expected: models.MetricStatusCritical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, statusFor(def, tt.value), "value %.0f", tt.value)
	}
}

func TestTrendFor(t *testing.T) {
	tests := []struct {
		name     string
		prev     float64
		next     float64
		expected models.Trend
	}{
		{name: "clear rise", prev: 50, next: 51, expected: models.TrendUp},
		{name: "clear fall", prev: 51, next: 50, expected: models.TrendDown},
		{name: "within epsilon up", prev: 50, next: 50.04, expected: models.TrendStable},
		{name: "within epsilon down", prev: 50.04, next: 50, expected: models.TrendStable},
		{name: "no change", prev: 50, next: 50, expected: models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, trendFor(tt.prev, tt.next, 0.05))
		})
	}
}

func TestTelemetryGeneratorTick(t *testing.T) {
	st := store.New(100)
	emitter := NewLogEmitter(rand.New(rand.NewSource(2)), st, st)

	defs := []MetricDefinition{
		{Name: "cpu", Unit: "%", Min: 20, Max: 90, Step: 5, Warning: 60, Critical: 80, Direction: models.ThresholdAbove},
		{Name: "memory", Unit: "%", Min: 30, Max: 85, Step: 4, Warning: 60, Critical: 80, Direction: models.ThresholdAbove},
	}

	gen := NewTelemetryGenerator(defs, 0.05, rand.New(rand.NewSource(1)), st, emitter)

	now := time.Now()

	for i := 0; i < 200; i++ {
		gen.Tick(context.Background(), now.Add(time.Duration(i)*time.Second))
	}

	series := st.Metrics()
	require.Len(t, series, 2)

	for _, m := range series {
		var def MetricDefinition

		for i := range defs {
			if defs[i].Name == m.Name {
				def = defs[i]
			}
		}

		assert.GreaterOrEqual(t, m.Value, def.Min)
		assert.LessOrEqual(t, m.Value, def.Max)
		assert.Equal(t, statusFor(&def, m.Value), m.Status)
		assert.Equal(t, now.Add(199*time.Second), m.Timestamp)
	}
}

func TestTelemetryGeneratorDeterministicForSeed(t *testing.T) {
	build := func() *TelemetryGenerator {
		st := store.New(10)
		emitter := NewLogEmitter(rand.New(rand.NewSource(9)), st, st)

		return NewTelemetryGenerator(DefaultMetrics(), 0.05, rand.New(rand.NewSource(77)), st, emitter)
	}

	a := build()
	b := build()
	now := time.Now()

	for i := 0; i < 50; i++ {
		ts := now.Add(time.Duration(i) * time.Second)
		a.Tick(context.Background(), ts)
		b.Tick(context.Background(), ts)
	}

	assert.Equal(t, a.Metrics(), b.Metrics())
}

func TestTelemetryGeneratorEmitsThresholdCrossings(t *testing.T) {
	st := store.New(1000)
	emitter := NewLogEmitter(rand.New(rand.NewSource(3)), st, st)

	// A step the size of the whole domain forces frequent crossings.
	defs := []MetricDefinition{
		{Name: "cpu", Unit: "%", Min: 0, Max: 100, Step: 100, Warning: 60, Critical: 80, Direction: models.ThresholdAbove},
	}

	gen := NewTelemetryGenerator(defs, 0.05, rand.New(rand.NewSource(4)), st, emitter)

	now := time.Now()
	for i := 0; i < 100; i++ {
		gen.Tick(context.Background(), now.Add(time.Duration(i)*time.Second))
	}

	page := st.Logs(models.LogQuery{Limit: 1000})
	require.NotEmpty(t, page.Logs)

	crossings := 0

	for _, rec := range page.Logs {
		if rec.Level == models.LogLevelError || rec.Level == models.LogLevelWarning {
			crossings++
		}
	}

	assert.Positive(t, crossings)
}

func TestTelemetryGeneratorRestore(t *testing.T) {
	st := store.New(10)
	emitter := NewLogEmitter(rand.New(rand.NewSource(5)), st, st)
	defs := DefaultMetrics()
	gen := NewTelemetryGenerator(defs, 0.05, rand.New(rand.NewSource(6)), st, emitter)

	saved := []models.MetricSeries{
		{Name: "cpu", Value: 85, Timestamp: time.Now()},
		{Name: "unknown_metric", Value: 12},
		{Name: "memory", Value: 500},
	}

	gen.restore(saved)

	series := gen.Metrics()
	byName := make(map[string]models.MetricSeries)

	for _, m := range series {
		byName[m.Name] = m
	}

	// cpu restored with its status rederived against current thresholds.
	assert.InDelta(t, 85, byName["cpu"].Value, 0.001)
	assert.Equal(t, models.MetricStatusCritical, byName["cpu"].Status)

	// memory clamped back into its domain.
	assert.InDelta(t, 85, byName["memory"].Value, 0.001)

	// metrics absent from the snapshot keep their seeded midpoint.
	assert.InDelta(t, midpoint(0.5, 50), byName["network"].Value, 0.001)
}
