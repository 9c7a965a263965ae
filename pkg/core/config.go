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
	"errors"

	"github.com/carverauto/cloudpulse/pkg/db"
	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
	"github.com/carverauto/cloudpulse/pkg/simulator"
)

const defaultListenAddr = ":8000"

var errNATSConfigRequired = errors.New("nats configuration is required when events are enabled")

// Config is the top-level configuration for the CloudPulse core service.
type Config struct {
	ListenAddr string                 `json:"listen_addr" yaml:"listen_addr"`
	Simulator  simulator.Config       `json:"simulator" yaml:"simulator"`
	Database   db.Config              `json:"database" yaml:"database"`
	NATS       *models.NATSConfig     `json:"nats,omitempty" yaml:"nats,omitempty"`
	Events     models.EventsConfig    `json:"events" yaml:"events"`
	CORS       models.CORSConfig      `json:"cors,omitempty" yaml:"cors,omitempty"`
	RateLimit  models.RateLimitConfig `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
	Logging    *logger.Config         `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// Validate applies defaults and checks every section.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if err := c.Simulator.Validate(); err != nil {
		return err
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}

	if err := c.Events.Validate(); err != nil {
		return err
	}

	if c.Events.Enabled {
		if c.NATS == nil {
			return errNATSConfigRequired
		}

		if err := c.NATS.Validate(); err != nil {
			return err
		}
	}

	return c.RateLimit.Validate()
}
