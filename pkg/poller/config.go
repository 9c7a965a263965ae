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

package poller

import (
	"errors"
	"time"

	"github.com/carverauto/cloudpulse/pkg/client"
	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

const (
	// Refresh intervals track each resource's volatility: metrics move
	// every generator tick, derived status the slowest.
	defaultMetricsInterval  = 5 * time.Second
	defaultServicesInterval = 10 * time.Second
	defaultLogsInterval     = 10 * time.Second
	defaultStatusInterval   = 15 * time.Second

	defaultSnapshotInterval = 30 * time.Second
	defaultLogPageSize      = 20
)

var errCoreAddressRequired = errors.New("core_address is required")

// Intervals sets the per-resource cache refresh periods.
type Intervals struct {
	Metrics  models.Duration `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Services models.Duration `json:"services,omitempty" yaml:"services,omitempty"`
	Logs     models.Duration `json:"logs,omitempty" yaml:"logs,omitempty"`
	Status   models.Duration `json:"status,omitempty" yaml:"status,omitempty"`
}

// Config configures the dashboard poller.
type Config struct {
	// CoreAddress is the base URL of the core API, e.g. http://localhost:8000.
	CoreAddress string `json:"core_address" yaml:"core_address"`
	// Client tunes the underlying data access client. BaseURL is filled
	// from CoreAddress when empty.
	Client client.Config `json:"client,omitempty" yaml:"client,omitempty"`
	// Intervals overrides the per-resource refresh periods.
	Intervals Intervals `json:"intervals,omitempty" yaml:"intervals,omitempty"`
	// SnapshotInterval is how often the consolidated snapshot is logged.
	SnapshotInterval models.Duration `json:"snapshot_interval,omitempty" yaml:"snapshot_interval,omitempty"`
	// LogPageSize bounds the log page fetched per refresh.
	LogPageSize int            `json:"log_page_size,omitempty" yaml:"log_page_size,omitempty"`
	Logging     *logger.Config `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// Validate applies defaults and checks required fields.
func (c *Config) Validate() error {
	if c.CoreAddress == "" {
		return errCoreAddressRequired
	}

	if c.Client.BaseURL == "" {
		c.Client.BaseURL = c.CoreAddress
	}

	if err := c.Client.Validate(); err != nil {
		return err
	}

	if c.Intervals.Metrics == 0 {
		c.Intervals.Metrics = models.Duration(defaultMetricsInterval)
	}

	if c.Intervals.Services == 0 {
		c.Intervals.Services = models.Duration(defaultServicesInterval)
	}

	if c.Intervals.Logs == 0 {
		c.Intervals.Logs = models.Duration(defaultLogsInterval)
	}

	if c.Intervals.Status == 0 {
		c.Intervals.Status = models.Duration(defaultStatusInterval)
	}

	if c.SnapshotInterval == 0 {
		c.SnapshotInterval = models.Duration(defaultSnapshotInterval)
	}

	if c.LogPageSize == 0 {
		c.LogPageSize = defaultLogPageSize
	}

	return nil
}
