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
	"fmt"
	"time"

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

var (
	errMetricNameRequired   = fmt.Errorf("metric name is required")
	errMetricBoundsInverted = fmt.Errorf("metric min must be below max")
	errMetricStepInvalid    = fmt.Errorf("metric step must be positive")
	errThresholdsInverted   = fmt.Errorf("metric thresholds must be ordered for their direction")
	errServiceIDRequired    = fmt.Errorf("service id is required")
	errUptimeOutOfRange     = fmt.Errorf("service uptime must be between 0 and 100")
	errProbabilityInvalid   = fmt.Errorf("transition probabilities must be between 0 and 1")
)

const (
	defaultMetricsInterval  = 5 * time.Second
	defaultServicesInterval = 8 * time.Second
	defaultLogsInterval     = 12 * time.Second
	defaultLogRetention     = 1000
	defaultTrendEpsilon     = 0.05
	defaultSnapshotMaxAge   = time.Hour
)

// MetricDefinition describes one simulated telemetry series: its domain,
// per-tick step size, and the thresholds that derive its status.
type MetricDefinition struct {
	Name      string                    `json:"name" yaml:"name"`
	Unit      string                    `json:"unit" yaml:"unit"`
	Min       float64                   `json:"min" yaml:"min"`
	Max       float64                   `json:"max" yaml:"max"`
	Step      float64                   `json:"step" yaml:"step"`
	Warning   float64                   `json:"warning" yaml:"warning"`
	Critical  float64                   `json:"critical" yaml:"critical"`
	Direction models.ThresholdDirection `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Validate implements config.Validator interface.
func (m *MetricDefinition) Validate() error {
	if m.Name == "" {
		return errMetricNameRequired
	}

	if m.Min >= m.Max {
		return fmt.Errorf("%w: %s has min %.2f, max %.2f", errMetricBoundsInverted, m.Name, m.Min, m.Max)
	}

	if m.Step <= 0 {
		return fmt.Errorf("%w: %s has step %.2f", errMetricStepInvalid, m.Name, m.Step)
	}

	if m.Direction == "" {
		m.Direction = models.ThresholdAbove
	}

	switch m.Direction {
	case models.ThresholdAbove:
		if m.Warning >= m.Critical {
			return fmt.Errorf("%w: %s warning %.2f, critical %.2f", errThresholdsInverted, m.Name, m.Warning, m.Critical)
		}
	case models.ThresholdBelow:
		if m.Warning <= m.Critical {
			return fmt.Errorf("%w: %s warning %.2f, critical %.2f", errThresholdsInverted, m.Name, m.Warning, m.Critical)
		}
	}

	return nil
}

// TransitionConfig holds the per-tick probability of each service state
// transition. Recovery paths are deliberately less likely than failure
// paths so outages linger the way real ones do.
type TransitionConfig struct {
	OnlineToDegraded  float64 `json:"online_to_degraded" yaml:"online_to_degraded"`
	OnlineToOffline   float64 `json:"online_to_offline" yaml:"online_to_offline"`
	DegradedToOnline  float64 `json:"degraded_to_online" yaml:"degraded_to_online"`
	DegradedToOffline float64 `json:"degraded_to_offline" yaml:"degraded_to_offline"`
	OfflineToDegraded float64 `json:"offline_to_degraded" yaml:"offline_to_degraded"`
	OfflineToOnline   float64 `json:"offline_to_online" yaml:"offline_to_online"`
}

// Validate implements config.Validator interface.
func (t *TransitionConfig) Validate() error {
	for _, p := range []float64{
		t.OnlineToDegraded, t.OnlineToOffline,
		t.DegradedToOnline, t.DegradedToOffline,
		t.OfflineToDegraded, t.OfflineToOnline,
	} {
		if p < 0 || p > 1 {
			return errProbabilityInvalid
		}
	}

	return nil
}

// UptimeConfig controls how uptime percentages react to state changes.
// Decay factors multiply the current value; RecoveryRate is the fraction
// of the remaining distance to 100 recovered per online tick.
type UptimeConfig struct {
	DegradedPenalty float64 `json:"degraded_penalty" yaml:"degraded_penalty"`
	OfflinePenalty  float64 `json:"offline_penalty" yaml:"offline_penalty"`
	DegradedDecay   float64 `json:"degraded_decay" yaml:"degraded_decay"`
	OfflineDecay    float64 `json:"offline_decay" yaml:"offline_decay"`
	RecoveryRate    float64 `json:"recovery_rate" yaml:"recovery_rate"`
}

// Config represents simulator configuration.
type Config struct {
	Metrics          []MetricDefinition   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Services         []models.ServiceSeed `json:"services,omitempty" yaml:"services,omitempty"`
	Transitions      *TransitionConfig    `json:"transitions,omitempty" yaml:"transitions,omitempty"`
	Uptime           *UptimeConfig        `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	MetricsInterval  models.Duration      `json:"metrics_interval,omitempty" yaml:"metrics_interval,omitempty"`
	ServicesInterval models.Duration      `json:"services_interval,omitempty" yaml:"services_interval,omitempty"`
	LogsInterval     models.Duration      `json:"logs_interval,omitempty" yaml:"logs_interval,omitempty"`
	TrendEpsilon     float64              `json:"trend_epsilon,omitempty" yaml:"trend_epsilon,omitempty"`
	LogRetention     int                  `json:"log_retention,omitempty" yaml:"log_retention,omitempty"`
	Seed             int64                `json:"seed,omitempty" yaml:"seed,omitempty"`
	DataDir          string               `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
	SnapshotFile     string               `json:"snapshot_file,omitempty" yaml:"snapshot_file,omitempty"`
	PersistState     bool                 `json:"persist_state,omitempty" yaml:"persist_state,omitempty"`
	Logging          *logger.Config       `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// Validate implements config.Validator interface.
func (c *Config) Validate() error {
	c.applyDefaults()

	for i := range c.Metrics {
		if err := c.Metrics[i].Validate(); err != nil {
			return err
		}
	}

	for i := range c.Services {
		if c.Services[i].ID == "" {
			return errServiceIDRequired
		}

		if c.Services[i].Uptime < 0 || c.Services[i].Uptime > 100 {
			return fmt.Errorf("%w: %s has %.2f", errUptimeOutOfRange, c.Services[i].ID, c.Services[i].Uptime)
		}
	}

	return c.Transitions.Validate()
}

func (c *Config) applyDefaults() {
	if len(c.Metrics) == 0 {
		c.Metrics = DefaultMetrics()
	}

	if len(c.Services) == 0 {
		c.Services = DefaultServices()
	}

	if c.Transitions == nil {
		c.Transitions = DefaultTransitions()
	}

	if c.Uptime == nil {
		c.Uptime = DefaultUptime()
	}

	if time.Duration(c.MetricsInterval) == 0 {
		c.MetricsInterval = models.Duration(defaultMetricsInterval)
	}

	if time.Duration(c.ServicesInterval) == 0 {
		c.ServicesInterval = models.Duration(defaultServicesInterval)
	}

	if time.Duration(c.LogsInterval) == 0 {
		c.LogsInterval = models.Duration(defaultLogsInterval)
	}

	if c.TrendEpsilon == 0 {
		c.TrendEpsilon = defaultTrendEpsilon
	}

	if c.LogRetention == 0 {
		c.LogRetention = defaultLogRetention
	}

	if c.SnapshotFile == "" {
		c.SnapshotFile = "cloudpulse-state.json"
	}
}

// DefaultMetrics returns the built-in telemetry catalog. Load-style
// metrics worsen as they climb; overall_health worsens as it falls, so
// its critical threshold sits below its warning threshold.
func DefaultMetrics() []MetricDefinition {
	return []MetricDefinition{
		{Name: "cpu", Unit: "%", Min: 20, Max: 90, Step: 5, Warning: 60, Critical: 80, Direction: models.ThresholdAbove},
		{Name: "memory", Unit: "%", Min: 30, Max: 85, Step: 4, Warning: 60, Critical: 80, Direction: models.ThresholdAbove},
		{Name: "network", Unit: "MB/s", Min: 0.5, Max: 50, Step: 3, Warning: 35, Critical: 45, Direction: models.ThresholdAbove},
		{Name: "container_count", Unit: "containers", Min: 15, Max: 35, Step: 2, Warning: 30, Critical: 34, Direction: models.ThresholdAbove},
		{Name: "overall_health", Unit: "%", Min: 70, Max: 100, Step: 2.5, Warning: 90, Critical: 75, Direction: models.ThresholdBelow},
	}
}

// DefaultServices returns the built-in service registry.
func DefaultServices() []models.ServiceSeed {
	return []models.ServiceSeed{
		{ID: "api-gateway", Name: "API Gateway", Uptime: 99.8},
		{ID: "user-service", Name: "User Service", Uptime: 99.5},
		{ID: "auth-service", Name: "Authentication Service", Uptime: 99.9},
		{ID: "notification-service", Name: "Notification Service", Uptime: 98.7},
		{ID: "database", Name: "PostgreSQL Database", Uptime: 99.95},
		{ID: "redis-cache", Name: "Redis Cache", Uptime: 99.2},
	}
}

// DefaultTransitions returns the built-in transition probabilities.
func DefaultTransitions() *TransitionConfig {
	return &TransitionConfig{
		OnlineToDegraded:  0.04,
		OnlineToOffline:   0.01,
		DegradedToOnline:  0.03,
		DegradedToOffline: 0.02,
		OfflineToDegraded: 0.04,
		OfflineToOnline:   0.01,
	}
}

// DefaultUptime returns the built-in uptime dynamics.
func DefaultUptime() *UptimeConfig {
	return &UptimeConfig{
		DegradedPenalty: 0.995,
		OfflinePenalty:  0.98,
		DegradedDecay:   0.999,
		OfflineDecay:    0.997,
		RecoveryRate:    0.05,
	}
}
