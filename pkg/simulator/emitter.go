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
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/cloudpulse/pkg/models"
)

// Weighted level split for heartbeat records: mostly info, some
// warnings, the occasional error.
const (
	heartbeatInfoWeight    = 0.7
	heartbeatWarningWeight = 0.2
)

var heartbeatMessages = map[models.LogLevel][]string{
	models.LogLevelInfo: {
		"Request processed successfully",
		"User authentication completed",
		"Database connection established",
		"Cache hit for user data",
		"Background task completed",
		"Health check passed",
		"Configuration loaded",
		"Service started successfully",
	},
	models.LogLevelWarning: {
		"High memory usage detected",
		"Slow database query detected",
		"Rate limit approaching for user",
		"Cache miss rate increasing",
		"Connection pool nearly full",
		"Disk space running low",
		"Deprecated API endpoint used",
	},
	models.LogLevelError: {
		"Database connection failed",
		"Authentication token expired",
		"Service unavailable",
		"Internal server error",
		"Failed to process request",
		"Connection timeout",
		"Invalid request format",
		"Permission denied",
	},
}

// LogEmitter produces the simulated log stream: periodic heartbeat
// records plus records correlated with generator events. Correlated
// records are appended synchronously from the generator's own tick, so
// a transition and its log line are never observable apart.
type LogEmitter struct {
	sink  Sink
	state StateReader

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLogEmitter wires the emitter to its sink and to the live state it
// samples for heartbeat context.
func NewLogEmitter(rng *rand.Rand, sink Sink, state StateReader) *LogEmitter {
	return &LogEmitter{
		sink:  sink,
		state: state,
		rng:   rng,
	}
}

// Tick emits one heartbeat record attributed to a random service.
func (e *LogEmitter) Tick(_ context.Context, now time.Time) {
	e.mu.Lock()

	level := heartbeatLevel(e.rng.Float64())
	messages := heartbeatMessages[level]
	message := messages[e.rng.Intn(len(messages))]
	message = e.decorate(message)

	service := ""
	if services := e.state.Services(); len(services) > 0 {
		service = services[e.rng.Intn(len(services))].ID
	}

	e.mu.Unlock()

	e.append(now, level, message, service)
}

// decorate appends fake correlation context the way real services leak
// identifiers into their log lines. Caller holds the rng lock.
func (e *LogEmitter) decorate(message string) string {
	switch {
	case containsFold(message, "user"):
		return fmt.Sprintf("%s (user_id: %d)", message, 1000+e.rng.Intn(9000))
	case containsFold(message, "request"):
		return fmt.Sprintf("%s (request_id: %d)", message, 100000+e.rng.Intn(900000))
	default:
		return message
	}
}

// RecordServiceTransition appends the log record correlated with a
// service state change, in the same tick as the change itself.
func (e *LogEmitter) RecordServiceTransition(now time.Time, rec *models.ServiceRecord, prev models.ServiceStatus) {
	var (
		level   models.LogLevel
		message string
	)

	switch rec.Status {
	case models.ServiceOffline:
		level = models.LogLevelError
		message = "Service offline: health checks failing"
	case models.ServiceOnline:
		level = models.LogLevelInfo
		message = "Service recovered: health checks passing"
	case models.ServiceDegraded:
		level = models.LogLevelWarning

		if prev == models.ServiceOffline {
			message = "Service back from outage: running degraded"
		} else {
			message = "Service degraded: response times elevated"
		}
	default:
		return
	}

	e.append(now, level, message, rec.ID)
}

// RecordMetricStatusChange appends the log record correlated with a
// metric threshold crossing.
func (e *LogEmitter) RecordMetricStatusChange(now time.Time, series *models.MetricSeries, prev models.MetricStatus) {
	var (
		level   models.LogLevel
		message string
	)

	switch series.Status {
	case models.MetricStatusCritical:
		level = models.LogLevelError
		message = fmt.Sprintf("Metric %s crossed critical threshold (%.1f %s)", series.Name, series.Value, series.Unit)
	case models.MetricStatusWarning:
		level = models.LogLevelWarning

		if prev == models.MetricStatusCritical {
			message = fmt.Sprintf("Metric %s recovered to warning range (%.1f %s)", series.Name, series.Value, series.Unit)
		} else {
			message = fmt.Sprintf("Metric %s crossed warning threshold (%.1f %s)", series.Name, series.Value, series.Unit)
		}
	case models.MetricStatusHealthy:
		level = models.LogLevelInfo
		message = fmt.Sprintf("Metric %s back in normal range (%.1f %s)", series.Name, series.Value, series.Unit)
	default:
		return
	}

	e.append(now, level, message, "")
}

func (e *LogEmitter) append(now time.Time, level models.LogLevel, message, service string) {
	e.sink.AppendLog(models.LogRecord{
		ID:        uuid.NewString(),
		Timestamp: now,
		Level:     level,
		Message:   message,
		Service:   service,
	})
}

func heartbeatLevel(roll float64) models.LogLevel {
	switch {
	case roll < heartbeatInfoWeight:
		return models.LogLevelInfo
	case roll < heartbeatInfoWeight+heartbeatWarningWeight:
		return models.LogLevelWarning
	default:
		return models.LogLevelError
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
