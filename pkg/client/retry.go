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
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBackoffBase = 500 * time.Millisecond
	defaultBackoffCap  = 5 * time.Second
)

// RetryPolicy decides, independently of any I/O, whether a failed attempt
// should be retried and how long to wait before the next one.
type RetryPolicy struct {
	// MaxAttempts is the total attempt budget, first try included.
	MaxAttempts int
	// BaseDelay scales linearly with the attempt number.
	BaseDelay time.Duration
	// MaxDelay caps the backoff.
	MaxDelay time.Duration
}

// DefaultRetryPolicy returns the standard 3-attempt linear backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBackoffBase,
		MaxDelay:    defaultBackoffCap,
	}
}

// ShouldRetry reports whether another attempt is allowed after err.
// Network failures always retry; API errors retry only on 5xx; anything
// else (including decode failures) is final.
func (p RetryPolicy) ShouldRetry(err error, attemptsSoFar int) bool {
	if attemptsSoFar >= p.MaxAttempts {
		return false
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}

	return false
}

// BackoffDelay returns the wait before the attempt following attempt
// failed attempts: base delay times the attempt number, capped.
func (p RetryPolicy) BackoffDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := p.BaseDelay * time.Duration(attempt)
	if delay > p.MaxDelay {
		delay = p.MaxDelay
	}

	return delay
}
