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

// MetricStatus classifies a metric sample against its thresholds.
type MetricStatus string

const (
	MetricStatusHealthy  MetricStatus = "healthy"
	MetricStatusWarning  MetricStatus = "warning"
	MetricStatusCritical MetricStatus = "critical"
)

// Severity ranks a status for worst-of aggregation: healthy < warning < critical.
func (s MetricStatus) Severity() int {
	switch s {
	case MetricStatusCritical:
		return 2
	case MetricStatusWarning:
		return 1
	default:
		return 0
	}
}

// WorseOf returns the more severe of two statuses.
func WorseOf(a, b MetricStatus) MetricStatus {
	if b.Severity() > a.Severity() {
		return b
	}

	return a
}

// Trend describes the direction of the most recent value change.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ThresholdDirection states which side of the thresholds is unhealthy.
type ThresholdDirection string

const (
	// ThresholdAbove degrades a metric whose value rises past a threshold
	// (load metrics such as cpu or memory usage).
	ThresholdAbove ThresholdDirection = "above"
	// ThresholdBelow degrades a metric whose value falls past a threshold
	// (gauges where high is good, such as overall health).
	ThresholdBelow ThresholdDirection = "below"
)

// MetricSeries is the current sample of one tracked metric.
type MetricSeries struct {
	Name      string       `json:"name"`
	Value     float64      `json:"value"`
	Unit      string       `json:"unit"`
	Status    MetricStatus `json:"status"`
	Trend     Trend        `json:"trend"`
	Timestamp time.Time    `json:"timestamp"`
}

// MetricSummary aggregates history samples for one metric over a window.
type MetricSummary struct {
	Name    string  `json:"name"`
	Unit    string  `json:"unit"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Avg     float64 `json:"avg"`
	Samples int     `json:"samples"`
}

// MetricSample is a single historical observation of a metric.
type MetricSample struct {
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
