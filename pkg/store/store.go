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

// Package store holds the current simulated state: the latest metric
// snapshot, the service registry, and a bounded window of log records.
// Writers are the generator loops; readers are the API handlers. Each
// partition carries its own lock so a burst of log appends never blocks
// a metrics read.
package store

import (
	"sync"
	"time"

	"github.com/carverauto/cloudpulse/pkg/models"
)

// Store is the in-memory state shared between the generators and the API.
type Store struct {
	metricsMu      sync.RWMutex
	metrics        []models.MetricSeries
	metricsUpdated time.Time

	servicesMu      sync.RWMutex
	services        []models.ServiceRecord
	serviceIdx      map[string]int
	servicesUpdated time.Time

	logsMu      sync.RWMutex
	logs        *logRing
	nextSeq     uint64
	logsUpdated time.Time
	subscribers map[*logSubscriber]struct{}
}

type logSubscriber struct {
	ch chan models.LogRecord
}

// New creates a Store retaining at most logRetention log records.
func New(logRetention int) *Store {
	return &Store{
		serviceIdx:  make(map[string]int),
		logs:        newLogRing(logRetention),
		subscribers: make(map[*logSubscriber]struct{}),
	}
}

// UpdateMetrics replaces the metric partition with the given snapshot.
func (s *Store) UpdateMetrics(ts time.Time, series []models.MetricSeries) {
	snapshot := make([]models.MetricSeries, len(series))
	copy(snapshot, series)

	s.metricsMu.Lock()
	defer s.metricsMu.Unlock()

	s.metrics = snapshot
	s.metricsUpdated = ts
}

// Metrics returns the latest metric snapshot in catalog order.
func (s *Store) Metrics() []models.MetricSeries {
	s.metricsMu.RLock()
	defer s.metricsMu.RUnlock()

	out := make([]models.MetricSeries, len(s.metrics))
	copy(out, s.metrics)

	return out
}

// UpdateServices replaces the service partition with the given snapshot.
func (s *Store) UpdateServices(ts time.Time, records []models.ServiceRecord) {
	snapshot := make([]models.ServiceRecord, len(records))
	copy(snapshot, records)

	idx := make(map[string]int, len(snapshot))
	for i := range snapshot {
		idx[snapshot[i].ID] = i
	}

	s.servicesMu.Lock()
	defer s.servicesMu.Unlock()

	s.services = snapshot
	s.serviceIdx = idx
	s.servicesUpdated = ts
}

// Services returns the current service registry in registry order.
func (s *Store) Services() []models.ServiceRecord {
	s.servicesMu.RLock()
	defer s.servicesMu.RUnlock()

	out := make([]models.ServiceRecord, len(s.services))
	copy(out, s.services)

	return out
}

// Service returns a single service by ID.
func (s *Store) Service(id string) (models.ServiceRecord, error) {
	s.servicesMu.RLock()
	defer s.servicesMu.RUnlock()

	i, ok := s.serviceIdx[id]
	if !ok {
		return models.ServiceRecord{}, &models.NotFoundError{Resource: "service", ID: id}
	}

	return s.services[i], nil
}

// ServiceHealth returns the health projection for a single service.
func (s *Store) ServiceHealth(id string) (models.ServiceHealth, error) {
	rec, err := s.Service(id)
	if err != nil {
		return models.ServiceHealth{}, err
	}

	return models.ServiceHealth{
		ID:      rec.ID,
		Status:  rec.Status,
		Uptime:  rec.Uptime,
		Healthy: rec.Status == models.ServiceOnline,
	}, nil
}

// AppendLog assigns the record a sequence number, adds it to the bounded
// log window (evicting the oldest record once full), and fans it out to
// stream subscribers. A subscriber that cannot keep up loses records
// rather than blocking the generators.
func (s *Store) AppendLog(rec models.LogRecord) {
	s.logsMu.Lock()
	defer s.logsMu.Unlock()

	s.nextSeq++
	rec.Seq = s.nextSeq

	s.logs.push(rec)

	if rec.Timestamp.After(s.logsUpdated) {
		s.logsUpdated = rec.Timestamp
	}

	for sub := range s.subscribers {
		select {
		case sub.ch <- rec:
		default:
		}
	}
}

// SubscribeLogs registers a stream subscriber that receives every record
// appended after the call. The returned cancel func releases the
// subscription and closes the channel.
func (s *Store) SubscribeLogs(buffer int) (<-chan models.LogRecord, func()) {
	if buffer < 1 {
		buffer = 1
	}

	sub := &logSubscriber{ch: make(chan models.LogRecord, buffer)}

	s.logsMu.Lock()
	s.subscribers[sub] = struct{}{}
	s.logsMu.Unlock()

	cancel := func() {
		s.logsMu.Lock()
		defer s.logsMu.Unlock()

		if _, ok := s.subscribers[sub]; ok {
			delete(s.subscribers, sub)
			close(sub.ch)
		}
	}

	return sub.ch, cancel
}

// Status derives the system status from the current partitions. It is
// computed on every call so it can never drift from its constituents.
func (s *Store) Status() models.SystemStatus {
	metrics := s.Metrics()
	services := s.Services()

	overall := models.MetricStatusHealthy
	criticalAlerts := 0
	online := 0

	for i := range metrics {
		overall = models.WorseOf(overall, metrics[i].Status)

		if metrics[i].Status == models.MetricStatusCritical {
			criticalAlerts++
		}
	}

	for i := range services {
		overall = models.WorseOf(overall, services[i].Status.ImpliedSeverity())

		switch services[i].Status {
		case models.ServiceOnline:
			online++
		case models.ServiceOffline:
			criticalAlerts++
		case models.ServiceDegraded:
		}
	}

	return models.SystemStatus{
		OverallStatus:  overall,
		ServicesOnline: online,
		ServicesTotal:  len(services),
		CriticalAlerts: criticalAlerts,
		LastUpdated:    s.lastUpdated(),
	}
}

func (s *Store) lastUpdated() time.Time {
	s.metricsMu.RLock()
	latest := s.metricsUpdated
	s.metricsMu.RUnlock()

	s.servicesMu.RLock()
	if s.servicesUpdated.After(latest) {
		latest = s.servicesUpdated
	}
	s.servicesMu.RUnlock()

	s.logsMu.RLock()
	if s.logsUpdated.After(latest) {
		latest = s.logsUpdated
	}
	s.logsMu.RUnlock()

	return latest
}
