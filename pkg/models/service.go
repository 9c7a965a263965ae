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

import "time"

// ServiceStatus is the health state of a simulated service.
type ServiceStatus string

const (
	ServiceOnline   ServiceStatus = "online"
	ServiceDegraded ServiceStatus = "degraded"
	ServiceOffline  ServiceStatus = "offline"
)

// ImpliedSeverity maps a service state onto the metric status scale so the
// status aggregator can take a worst-of across metrics and services.
func (s ServiceStatus) ImpliedSeverity() MetricStatus {
	switch s {
	case ServiceOffline:
		return MetricStatusCritical
	case ServiceDegraded:
		return MetricStatusWarning
	default:
		return MetricStatusHealthy
	}
}

// ServiceRecord is the current state of one simulated service.
type ServiceRecord struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Status      ServiceStatus `json:"status"`
	Uptime      float64       `json:"uptime"`
	LastChecked time.Time     `json:"last_checked"`
}

// ServiceHealth is the per-service health projection served by the API.
type ServiceHealth struct {
	ID      string        `json:"id"`
	Status  ServiceStatus `json:"status"`
	Uptime  float64       `json:"uptime"`
	Healthy bool          `json:"healthy"`
}

// ServiceSeed declares one service in the simulated registry along with its
// starting uptime percentage.
type ServiceSeed struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Uptime float64 `json:"uptime" yaml:"uptime"`
}
