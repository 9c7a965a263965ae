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

package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrNoCachedValue is returned by a polling cache read when no refresh has
// ever succeeded and no classified failure is pending either.
var ErrNoCachedValue = errors.New("no cached value available")

// NetworkError is a transport-level failure: connection refused, DNS,
// timeout. No HTTP status was observed, so it is always worth retrying.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error requesting %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx HTTP response, carrying the structured error body
// fields when the server sent one. Only status >= 500 is retryable; 4xx is
// a definitive answer about this request.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}

	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Retryable reports whether the failure is transient from the client's
// point of view.
func (e *APIError) Retryable() bool {
	return e.Status >= http.StatusInternalServerError
}

// Definitive reports whether the server gave a final answer for this
// request shape. The polling cache stops auto-refreshing on definitive
// failures until invalidated.
func (e *APIError) Definitive() bool {
	return e.Status >= http.StatusBadRequest && e.Status < http.StatusInternalServerError
}

// newAPIError classifies a non-2xx response, pulling code/message/details
// out of the standard error body when present. gjson tolerates bodies that
// are not the expected shape, including non-JSON ones.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Message: http.StatusText(status),
	}

	if len(body) == 0 || !gjson.ValidBytes(body) {
		return apiErr
	}

	if code := gjson.GetBytes(body, "error.code"); code.Exists() {
		apiErr.Code = code.String()
	}

	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		apiErr.Message = msg.String()
	}

	if details := gjson.GetBytes(body, "error.details"); details.IsObject() {
		m, ok := details.Value().(map[string]any)
		if ok {
			apiErr.Details = m
		}
	}

	return apiErr
}
