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

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

// HealthSimulator walks every service through the online/degraded/offline
// transition graph, adjusts uptime, and publishes the registry snapshot
// to the sink. Transitions also produce a correlated log record in the
// same tick and, when a publisher is wired, an event on the bus.
type HealthSimulator struct {
	transitions *TransitionConfig
	uptime      *UptimeConfig
	rng         *rand.Rand
	sink        Sink
	events      *LogEmitter
	publisher   TransitionPublisher
	logger      logger.Logger

	mu       sync.RWMutex
	services []models.ServiceRecord
}

// NewHealthSimulator seeds the registry with every service online at its
// configured baseline uptime.
func NewHealthSimulator(
	seeds []models.ServiceSeed,
	transitions *TransitionConfig,
	uptime *UptimeConfig,
	rng *rand.Rand,
	sink Sink,
	events *LogEmitter,
	publisher TransitionPublisher,
	log logger.Logger,
) *HealthSimulator {
	services := make([]models.ServiceRecord, len(seeds))

	for i := range seeds {
		services[i] = models.ServiceRecord{
			ID:     seeds[i].ID,
			Name:   seeds[i].Name,
			Status: models.ServiceOnline,
			Uptime: seeds[i].Uptime,
		}
	}

	return &HealthSimulator{
		transitions: transitions,
		uptime:      uptime,
		rng:         rng,
		sink:        sink,
		events:      events,
		publisher:   publisher,
		logger:      log,
		services:    services,
	}
}

// Tick rolls one transition per service and publishes the new registry.
func (h *HealthSimulator) Tick(ctx context.Context, now time.Time) {
	h.mu.Lock()

	next := make([]models.ServiceRecord, len(h.services))
	copy(next, h.services)

	var transitions []transition

	for i := range next {
		prev := next[i].Status
		next[i].Status = h.nextStatus(prev)
		next[i].Uptime = h.adjustUptime(next[i].Uptime, prev, next[i].Status)
		next[i].LastChecked = now

		if next[i].Status != prev {
			transitions = append(transitions, transition{record: next[i], previous: prev})
		}
	}

	h.services = next
	h.mu.Unlock()

	// Correlated records land before the registry snapshot so a reader
	// never sees a transition without its log line.
	for i := range transitions {
		h.events.RecordServiceTransition(now, &transitions[i].record, transitions[i].previous)
		h.publishTransition(ctx, now, &transitions[i])
	}

	h.sink.UpdateServices(now, next)
}

type transition struct {
	record   models.ServiceRecord
	previous models.ServiceStatus
}

func (h *HealthSimulator) publishTransition(ctx context.Context, now time.Time, tr *transition) {
	if h.publisher == nil {
		return
	}

	data := &models.ServiceHealthEventData{
		ServiceID:     tr.record.ID,
		ServiceName:   tr.record.Name,
		PreviousState: tr.previous,
		CurrentState:  tr.record.Status,
		Uptime:        tr.record.Uptime,
		Timestamp:     now,
	}

	if err := h.publisher.PublishTransition(ctx, data); err != nil {
		h.logger.Error().
			Err(err).
			Str("service_id", tr.record.ID).
			Str("current_state", string(tr.record.Status)).
			Msg("Failed to publish service transition event")
	}
}

// nextStatus rolls the transition graph once. The rarer outcome owns the
// low end of the roll so the cumulative windows never overlap.
func (h *HealthSimulator) nextStatus(current models.ServiceStatus) models.ServiceStatus {
	roll := h.rng.Float64()

	switch current {
	case models.ServiceOnline:
		if roll < h.transitions.OnlineToOffline {
			return models.ServiceOffline
		}

		if roll < h.transitions.OnlineToOffline+h.transitions.OnlineToDegraded {
			return models.ServiceDegraded
		}
	case models.ServiceDegraded:
		if roll < h.transitions.DegradedToOffline {
			return models.ServiceOffline
		}

		if roll < h.transitions.DegradedToOffline+h.transitions.DegradedToOnline {
			return models.ServiceOnline
		}
	case models.ServiceOffline:
		if roll < h.transitions.OfflineToOnline {
			return models.ServiceOnline
		}

		if roll < h.transitions.OfflineToOnline+h.transitions.OfflineToDegraded {
			return models.ServiceDegraded
		}
	}

	return current
}

// adjustUptime applies the uptime dynamics for one tick: entering a bad
// state costs a one-time penalty, remaining in one bleeds slowly, and an
// online tick recovers a fraction of the distance back to 100.
func (h *HealthSimulator) adjustUptime(value float64, prev, next models.ServiceStatus) float64 {
	switch {
	case next == models.ServiceOnline:
		value += h.uptime.RecoveryRate * (100 - value)
	case next == prev && next == models.ServiceDegraded:
		value *= h.uptime.DegradedDecay
	case next == prev && next == models.ServiceOffline:
		value *= h.uptime.OfflineDecay
	case next == models.ServiceDegraded:
		value *= h.uptime.DegradedPenalty
	case next == models.ServiceOffline:
		value *= h.uptime.OfflinePenalty
	}

	return clamp(value, 0, 100)
}

// Services returns a copy of the current registry.
func (h *HealthSimulator) Services() []models.ServiceRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]models.ServiceRecord, len(h.services))
	copy(out, h.services)

	return out
}

// restore overwrites service state from a saved snapshot, matching by ID.
// Services added to the config since the snapshot keep their seeded state.
func (h *HealthSimulator) restore(saved []models.ServiceRecord) {
	byID := make(map[string]models.ServiceRecord, len(saved))
	for i := range saved {
		byID[saved[i].ID] = saved[i]
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.services {
		prev, ok := byID[h.services[i].ID]
		if !ok {
			continue
		}

		switch prev.Status {
		case models.ServiceOnline, models.ServiceDegraded, models.ServiceOffline:
			h.services[i].Status = prev.Status
		}

		h.services[i].Uptime = clamp(prev.Uptime, 0, 100)
		h.services[i].LastChecked = prev.LastChecked
	}
}
