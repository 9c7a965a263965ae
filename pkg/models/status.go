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

// SystemStatus is the derived status aggregate. It is computed from the
// metric and service partitions on every read and never stored, so repeated
// reads between generator ticks return identical values.
type SystemStatus struct {
	OverallStatus  MetricStatus `json:"overall_status"`
	ServicesOnline int          `json:"services_online"`
	ServicesTotal  int          `json:"services_total"`
	CriticalAlerts int          `json:"critical_alerts"`
	LastUpdated    time.Time    `json:"last_updated"`
}

// HealthState is the process-level health reported on /health.
type HealthState string

const (
	HealthStateHealthy  HealthState = "healthy"
	HealthStateDegraded HealthState = "degraded"
)

// HealthResponse is the /health endpoint body. Checks holds a per-dependency
// status string keyed by dependency name.
type HealthResponse struct {
	Status    HealthState       `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// BannerResponse is the service banner served at the API root.
type BannerResponse struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Status  string `json:"status"`
}
