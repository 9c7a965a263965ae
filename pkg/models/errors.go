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

// ErrorCode identifies the failure category in API error bodies.
type ErrorCode string

const (
	ErrCodeValidation         ErrorCode = "VALIDATION_ERROR"
	ErrCodeResourceNotFound   ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeRateLimitExceeded  ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION_ERROR"
	ErrCodeDatabaseOperation  ErrorCode = "DATABASE_OPERATION_ERROR"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// ErrorDetail is the payload inside every API error body.
type ErrorDetail struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// ErrorResponse is the wire shape of a failed request:
// {"error": {"code", "message", "details"?, "timestamp"}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ValidationError rejects a client-supplied parameter. Served as 400 and
// never retried by well-behaved clients.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing resource. Served as 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// DegradedDataError signals that a dependency outage forced a fallback
// answer. Served as 503 with the fallback attached so clients can render
// degraded data without treating the response as a hard failure.
type DegradedDataError struct {
	Cause    error
	Fallback any
}

func (e *DegradedDataError) Error() string {
	return fmt.Sprintf("serving degraded data: %v", e.Cause)
}

func (e *DegradedDataError) Unwrap() error {
	return e.Cause
}
