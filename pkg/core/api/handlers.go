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

package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/carverauto/cloudpulse/pkg/models"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 1000
)

// encodeJSONResponse encodes a response as JSON
func (*APIServer) encodeJSONResponse(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")

	return json.NewEncoder(w).Encode(data)
}

func (s *APIServer) respond(w http.ResponseWriter, data interface{}) {
	if err := s.encodeJSONResponse(w, data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *APIServer) getMetrics(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, s.core.Metrics())
}

func (s *APIServer) getMetricsSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.core.MetricsSummary(r.Context())
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	s.respond(w, summaries)
}

func (s *APIServer) getServices(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, s.core.Services())
}

func (s *APIServer) getService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := s.core.Service(id)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	s.respond(w, rec)
}

func (s *APIServer) getServiceHealth(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	health, err := s.core.ServiceHealth(id)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	s.respond(w, health)
}

func (s *APIServer) getLogs(w http.ResponseWriter, r *http.Request) {
	q, err := parseLogQuery(r.URL.Query())
	if err != nil {
		s.writeAPIError(w, err)
		return
	}

	s.respond(w, s.core.Logs(q))
}

func (s *APIServer) getLogLevels(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, struct {
		Levels []models.LogLevel `json:"levels"`
	}{Levels: models.KnownLogLevels()})
}

func (s *APIServer) getLogServices(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, struct {
		Services []string `json:"services"`
	}{Services: s.core.LogServices()})
}

func (s *APIServer) getLogStats(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, s.core.LogStats())
}

func (s *APIServer) getStatus(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, s.core.Status())
}

func (s *APIServer) getHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.core.Health(r.Context()))
}

func (s *APIServer) getReadiness(w http.ResponseWriter, _ *http.Request) {
	if !s.core.Ready() {
		writeErrorBody(w, http.StatusServiceUnavailable, models.ErrCodeServiceUnavailable,
			"pipeline has not produced its first tick", nil)

		return
	}

	s.respond(w, struct {
		Status string `json:"status"`
	}{Status: "ready"})
}

func (s *APIServer) getBanner(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, models.BannerResponse{
		Service: serviceName,
		Version: Version,
		Status:  "running",
	})
}

// parseLogQuery validates the log listing parameters. Out-of-range or
// malformed values are rejected rather than clamped.
func parseLogQuery(values url.Values) (models.LogQuery, error) {
	q := models.LogQuery{Limit: defaultLogLimit}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return q, &models.ValidationError{Field: "limit", Reason: "must be an integer"}
		}

		if limit < 1 || limit > maxLogLimit {
			return q, &models.ValidationError{Field: "limit", Reason: "must be between 1 and 1000"}
		}

		q.Limit = limit
	}

	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return q, &models.ValidationError{Field: "offset", Reason: "must be an integer"}
		}

		if offset < 0 {
			return q, &models.ValidationError{Field: "offset", Reason: "must not be negative"}
		}

		q.Offset = offset
	}

	if raw := values.Get("level"); raw != "" {
		if !models.ValidLogLevel(models.LogLevel(raw)) {
			return q, &models.ValidationError{Field: "level", Reason: "must be one of info, warning, error"}
		}

		q.Level = models.LogLevel(raw)
	}

	q.Service = values.Get("service")

	return q, nil
}
