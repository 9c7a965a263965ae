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
	"sync"
	"time"

	"github.com/carverauto/cloudpulse/pkg/models"
)

// TelemetryGenerator advances every configured metric by one random-walk
// step per tick, rederives status and trend, and pushes the snapshot to
// the sink. It owns its metric state; readers get copies.
type TelemetryGenerator struct {
	defs    []MetricDefinition
	epsilon float64
	rng     *rand.Rand
	sink    Sink
	events  *LogEmitter

	mu     sync.RWMutex
	series []models.MetricSeries
}

// NewTelemetryGenerator seeds each metric at the midpoint of its domain.
func NewTelemetryGenerator(defs []MetricDefinition, epsilon float64, rng *rand.Rand, sink Sink, events *LogEmitter) *TelemetryGenerator {
	series := make([]models.MetricSeries, len(defs))

	for i := range defs {
		value := midpoint(defs[i].Min, defs[i].Max)

		series[i] = models.MetricSeries{
			Name:   defs[i].Name,
			Value:  value,
			Unit:   defs[i].Unit,
			Status: statusFor(&defs[i], value),
			Trend:  models.TrendStable,
		}
	}

	return &TelemetryGenerator{
		defs:    defs,
		epsilon: epsilon,
		rng:     rng,
		sink:    sink,
		events:  events,
		series:  series,
	}
}

// Tick advances all metrics one step and publishes the new snapshot.
func (g *TelemetryGenerator) Tick(_ context.Context, now time.Time) {
	g.mu.Lock()

	next := make([]models.MetricSeries, len(g.series))

	for i := range g.series {
		def := &g.defs[i]
		prev := g.series[i]

		value := walk(g.rng, prev.Value, def.Step, def.Min, def.Max)
		status := statusFor(def, value)

		next[i] = models.MetricSeries{
			Name:      def.Name,
			Value:     value,
			Unit:      def.Unit,
			Status:    status,
			Trend:     trendFor(prev.Value, value, g.epsilon),
			Timestamp: now,
		}

		if status != prev.Status {
			g.events.RecordMetricStatusChange(now, &next[i], prev.Status)
		}
	}

	g.series = next
	g.mu.Unlock()

	g.sink.UpdateMetrics(now, next)
}

// Metrics returns a copy of the current metric snapshot.
func (g *TelemetryGenerator) Metrics() []models.MetricSeries {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]models.MetricSeries, len(g.series))
	copy(out, g.series)

	return out
}

// restore overwrites metric values from a saved snapshot, matching by
// name. Values are clamped back into the configured domain and status is
// rederived, so a snapshot taken under old thresholds stays consistent.
func (g *TelemetryGenerator) restore(saved []models.MetricSeries) {
	byName := make(map[string]models.MetricSeries, len(saved))
	for i := range saved {
		byName[saved[i].Name] = saved[i]
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.series {
		def := &g.defs[i]

		prev, ok := byName[def.Name]
		if !ok {
			continue
		}

		value := clamp(prev.Value, def.Min, def.Max)

		g.series[i].Value = value
		g.series[i].Status = statusFor(def, value)
		g.series[i].Trend = models.TrendStable
		g.series[i].Timestamp = prev.Timestamp
	}
}

// statusFor derives a metric status from its thresholds. Load metrics
// degrade as the value climbs; inverted metrics such as overall_health
// degrade as it falls. A value sitting exactly on a threshold has not
// crossed it.
func statusFor(def *MetricDefinition, value float64) models.MetricStatus {
	switch def.Direction {
	case models.ThresholdBelow:
		if value < def.Critical {
			return models.MetricStatusCritical
		}

		if value < def.Warning {
			return models.MetricStatusWarning
		}
	default:
		if value > def.Critical {
			return models.MetricStatusCritical
		}

		if value > def.Warning {
			return models.MetricStatusWarning
		}
	}

	return models.MetricStatusHealthy
}

// trendFor compares consecutive values, ignoring movement within epsilon.
func trendFor(prev, next, epsilon float64) models.Trend {
	switch {
	case next-prev > epsilon:
		return models.TrendUp
	case prev-next > epsilon:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}
