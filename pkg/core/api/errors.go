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
	"errors"
	"net/http"
	"time"

	"github.com/carverauto/cloudpulse/pkg/db"
	"github.com/carverauto/cloudpulse/pkg/models"
)

// writeAPIError maps a service error onto the HTTP taxonomy and writes the
// standard error body. Degraded history answers carry the fallback snapshot
// in details so clients can keep rendering.
func (s *APIServer) writeAPIError(w http.ResponseWriter, err error) {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.NotFoundError
		degradedErr   *models.DegradedDataError
	)

	switch {
	case errors.As(err, &validationErr):
		writeErrorBody(w, http.StatusBadRequest, models.ErrCodeValidation, validationErr.Error(), nil)
	case errors.As(err, &notFoundErr):
		writeErrorBody(w, http.StatusNotFound, models.ErrCodeResourceNotFound, notFoundErr.Error(), nil)
	case errors.As(err, &degradedErr):
		details := map[string]any{"fallback_data": degradedErr.Fallback}
		writeErrorBody(w, http.StatusServiceUnavailable, models.ErrCodeDatabaseConnection,
			"history database unavailable, serving current snapshot", details)
	case errors.Is(err, db.ErrDatabaseUnavailable):
		writeErrorBody(w, http.StatusServiceUnavailable, models.ErrCodeDatabaseConnection,
			"history database unavailable", nil)
	case errors.Is(err, db.ErrDatabaseOperation):
		s.logger.Error().Err(err).Msg("History operation failed")
		writeErrorBody(w, http.StatusInternalServerError, models.ErrCodeDatabaseOperation,
			"history operation failed", nil)
	default:
		s.logger.Error().Err(err).Msg("Unhandled API error")
		writeErrorBody(w, http.StatusInternalServerError, models.ErrCodeInternal,
			"internal server error", nil)
	}
}

func writeErrorBody(w http.ResponseWriter, status int, code models.ErrorCode, message string, details map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC(),
		},
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
