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
	"sort"
	"sync"
	"time"

	"github.com/carverauto/cloudpulse/pkg/models"
)

// MemoryHistory is the default HistoryStore: a per-metric sample window
// held in memory. It prunes on write, so the window never outgrows the
// retention horizon between ticks.
type MemoryHistory struct {
	retention time.Duration

	mu      sync.RWMutex
	samples map[string][]models.MetricSample
}

// NewMemoryHistory creates an in-memory history retaining samples for
// the given horizon.
func NewMemoryHistory(retention time.Duration) *MemoryHistory {
	if retention <= 0 {
		retention = defaultRetention
	}

	return &MemoryHistory{
		retention: retention,
		samples:   make(map[string][]models.MetricSample),
	}
}

// RecordSamples appends samples and drops any that fell out of the
// retention window.
func (m *MemoryHistory) RecordSamples(_ context.Context, samples []models.MetricSample) error {
	if len(samples) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var newest time.Time

	for i := range samples {
		m.samples[samples[i].Name] = append(m.samples[samples[i].Name], samples[i])

		if samples[i].Timestamp.After(newest) {
			newest = samples[i].Timestamp
		}
	}

	m.pruneLocked(newest.Add(-m.retention))

	return nil
}

// Summaries aggregates the trailing window per metric, sorted by name.
// The window is anchored at the newest retained sample so summaries stay
// meaningful when generation is driven by a test clock.
func (m *MemoryHistory) Summaries(_ context.Context, window time.Duration) ([]models.MetricSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var newest time.Time

	for _, recs := range m.samples {
		if n := len(recs); n > 0 && recs[n-1].Timestamp.After(newest) {
			newest = recs[n-1].Timestamp
		}
	}

	cutoff := newest.Add(-window)
	out := make([]models.MetricSummary, 0, len(m.samples))

	for name, recs := range m.samples {
		summary := models.MetricSummary{Name: name}
		sum := 0.0

		for i := range recs {
			if recs[i].Timestamp.Before(cutoff) {
				continue
			}

			if summary.Samples == 0 || recs[i].Value < summary.Min {
				summary.Min = recs[i].Value
			}

			if summary.Samples == 0 || recs[i].Value > summary.Max {
				summary.Max = recs[i].Value
			}

			sum += recs[i].Value
			summary.Samples++
			summary.Unit = recs[i].Unit
		}

		if summary.Samples == 0 {
			continue
		}

		summary.Avg = sum / float64(summary.Samples)
		out = append(out, summary)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// Prune drops samples older than the horizon, anchored at the newest
// retained sample.
func (m *MemoryHistory) Prune(_ context.Context, olderThan time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var newest time.Time

	for _, recs := range m.samples {
		if n := len(recs); n > 0 && recs[n-1].Timestamp.After(newest) {
			newest = recs[n-1].Timestamp
		}
	}

	m.pruneLocked(newest.Add(-olderThan))

	return nil
}

// pruneLocked assumes samples arrive in timestamp order per metric, as
// the generator tick produces them.
func (m *MemoryHistory) pruneLocked(cutoff time.Time) {
	for name, recs := range m.samples {
		keep := 0
		for keep < len(recs) && recs[keep].Timestamp.Before(cutoff) {
			keep++
		}

		if keep == 0 {
			continue
		}

		if keep == len(recs) {
			delete(m.samples, name)
			continue
		}

		m.samples[name] = append(recs[:0:0], recs[keep:]...)
	}
}

// Ping always succeeds for the in-memory backend.
func (*MemoryHistory) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op for the in-memory backend.
func (*MemoryHistory) Close() {}
