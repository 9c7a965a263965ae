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

// Package client is the dashboard-side data access layer: a typed HTTP
// client for the CloudPulse read API with timeout, retry with linear
// backoff, and a classified error taxonomy, plus per-resource polling
// caches that serve stale data through refresh failures.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

const (
	defaultRequestTimeout = 10 * time.Second

	// maxErrorBodyBytes bounds how much of a failed response is read for
	// error classification.
	maxErrorBodyBytes = 64 * 1024
)

var errBaseURLRequired = errors.New("base_url is required")

// Config configures the data access client.
type Config struct {
	BaseURL     string          `json:"base_url" yaml:"base_url"`
	Timeout     models.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxAttempts int             `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"`
	BackoffBase models.Duration `json:"backoff_base,omitempty" yaml:"backoff_base,omitempty"`
	BackoffCap  models.Duration `json:"backoff_cap,omitempty" yaml:"backoff_cap,omitempty"`
}

// Validate applies defaults and checks required fields.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errBaseURLRequired
	}

	if c.Timeout == 0 {
		c.Timeout = models.Duration(defaultRequestTimeout)
	}

	if c.MaxAttempts == 0 {
		c.MaxAttempts = defaultMaxAttempts
	}

	if c.BackoffBase == 0 {
		c.BackoffBase = models.Duration(defaultBackoffBase)
	}

	if c.BackoffCap == 0 {
		c.BackoffCap = models.Duration(defaultBackoffCap)
	}

	return nil
}

// Client performs resilient reads against the CloudPulse API.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	policy     RetryPolicy
	sleep      func(ctx context.Context, d time.Duration) error
	logger     logger.Logger
}

// New creates a client from the configuration. A nil config panics; call
// Validate first.
func New(cfg *Config, log logger.Logger, options ...func(*Client)) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout),
		},
		policy: RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   time.Duration(cfg.BackoffBase),
			MaxDelay:    time.Duration(cfg.BackoffCap),
		},
		sleep:  sleepContext,
		logger: log,
	}

	for _, o := range options {
		o(c)
	}

	return c
}

// WithHTTPDoer replaces the HTTP transport. Tests inject scripted doers.
func WithHTTPDoer(doer HTTPDoer) func(*Client) {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithSleep replaces the inter-attempt wait. Tests record delays instead
// of sleeping.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) func(*Client) {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// Metrics returns the current metric snapshot.
func (c *Client) Metrics(ctx context.Context) ([]models.MetricSeries, error) {
	var out []models.MetricSeries
	if err := c.get(ctx, "/api/metrics", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// MetricsSummary returns windowed aggregates from the history store.
func (c *Client) MetricsSummary(ctx context.Context) ([]models.MetricSummary, error) {
	var out []models.MetricSummary
	if err := c.get(ctx, "/api/metrics/summary", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Services returns the current service registry.
func (c *Client) Services(ctx context.Context) ([]models.ServiceRecord, error) {
	var out []models.ServiceRecord
	if err := c.get(ctx, "/api/services", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Service returns a single service by ID.
func (c *Client) Service(ctx context.Context, id string) (models.ServiceRecord, error) {
	var out models.ServiceRecord
	if err := c.get(ctx, "/api/services/"+url.PathEscape(id), nil, &out); err != nil {
		return models.ServiceRecord{}, err
	}

	return out, nil
}

// Logs returns a filtered page of log records, newest first.
func (c *Client) Logs(ctx context.Context, q models.LogQuery) (models.LogsPage, error) {
	params := url.Values{}

	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	if q.Level != "" {
		params.Set("level", string(q.Level))
	}

	if q.Service != "" {
		params.Set("service", q.Service)
	}

	var out models.LogsPage
	if err := c.get(ctx, "/api/logs", params, &out); err != nil {
		return models.LogsPage{}, err
	}

	return out, nil
}

// Status returns the derived system status aggregate.
func (c *Client) Status(ctx context.Context) (models.SystemStatus, error) {
	var out models.SystemStatus
	if err := c.get(ctx, "/api/status", nil, &out); err != nil {
		return models.SystemStatus{}, err
	}

	return out, nil
}

// Health returns the process health report.
func (c *Client) Health(ctx context.Context) (models.HealthResponse, error) {
	var out models.HealthResponse
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return models.HealthResponse{}, err
	}

	return out, nil
}

// get runs the retry loop around a single GET. Exhausting the budget
// surfaces the last classified error unchanged.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.policy.BackoffDelay(attempt - 1)

			c.logger.Debug().
				Str("url", reqURL).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("Retrying request")

			if err := c.sleep(ctx, delay); err != nil {
				return lastErr
			}
		}

		body, err := c.doRequest(ctx, reqURL)
		if err == nil {
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decoding %s response: %w", path, err)
			}

			return nil
		}

		lastErr = err

		if !c.policy.ShouldRetry(err, attempt) {
			return lastErr
		}
	}

	return lastErr
}

func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", reqURL, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

		return nil, newAPIError(resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: reqURL, Err: err}
	}

	return body, nil
}

// sleepContext waits for d or until ctx is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
