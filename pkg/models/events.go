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

package models

import (
	"fmt"
	"time"
)

// NATSConfig configures NATS connectivity for the event stream.
type NATSConfig struct {
	URL    string `json:"url" yaml:"url"`
	Domain string `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// Validate ensures the NATS configuration is valid.
func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("nats url is required")
	}

	return nil
}

// EventsConfig configures publication of service health transition events.
type EventsConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	StreamName string `json:"stream_name" yaml:"stream_name"`
	Subject    string `json:"subject" yaml:"subject"`
}

// Validate ensures the events configuration is valid.
func (c *EventsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.StreamName == "" {
		c.StreamName = "events"
	}

	if c.Subject == "" {
		c.Subject = "events.service.health"
	}

	return nil
}

// CloudEvent represents a CloudEvents v1.0 compliant event.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject,omitempty"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// ServiceHealthEventData is the payload of a service transition event.
type ServiceHealthEventData struct {
	ServiceID     string        `json:"service_id"`
	ServiceName   string        `json:"service_name"`
	PreviousState ServiceStatus `json:"previous_state"`
	CurrentState  ServiceStatus `json:"current_state"`
	Uptime        float64       `json:"uptime"`
	Timestamp     time.Time     `json:"timestamp"`
}
