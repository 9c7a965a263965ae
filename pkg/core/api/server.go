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

// Package api provides the HTTP API server for CloudPulse
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	cphttp "github.com/carverauto/cloudpulse/pkg/http"
	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
)

const (
	// Version is reported in the service banner.
	Version = "1.0.0"

	serviceName = "cloudpulse-api"

	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// APIServer serves the CloudPulse HTTP API.
type APIServer struct {
	core       CoreService
	router     *mux.Router
	corsConfig models.CORSConfig
	rateLimit  models.RateLimitConfig
	limiter    cphttp.RateLimiter
	httpServer *http.Server
	logger     logger.Logger
}

// NewAPIServer creates a new API server instance with the given configuration
func NewAPIServer(core CoreService, corsConfig models.CORSConfig, log logger.Logger, options ...func(*APIServer)) *APIServer {
	s := &APIServer{
		core:       core,
		router:     mux.NewRouter(),
		corsConfig: corsConfig,
		logger:     log,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// WithRateLimiter enables per-client rate limiting on the API routes.
func WithRateLimiter(limiter cphttp.RateLimiter, cfg models.RateLimitConfig) func(*APIServer) {
	return func(server *APIServer) {
		server.limiter = limiter
		server.rateLimit = cfg
	}
}

// Router exposes the configured route tree. Tests drive it directly.
func (s *APIServer) Router() *mux.Router {
	return s.router
}

func (s *APIServer) setupRoutes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return cphttp.CommonMiddleware(next, s.corsConfig, s.logger)
	})

	s.router.HandleFunc("/", s.getBanner).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.getHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/readiness", s.getReadiness).Methods(http.MethodGet)

	apiRoutes := s.router.PathPrefix("/api").Subrouter()

	if s.limiter != nil {
		apiRoutes.Use(cphttp.RateLimitMiddleware(s.limiter, s.rateLimit, s.logger))
	}

	apiRoutes.HandleFunc("/metrics", s.getMetrics).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/metrics/summary", s.getMetricsSummary).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/services", s.getServices).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/services/{id}", s.getService).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/services/{id}/health", s.getServiceHealth).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/logs", s.getLogs).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/logs/levels", s.getLogLevels).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/logs/services", s.getLogServices).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/logs/stats", s.getLogStats).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/logs/stream", s.handleLogStream).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/status", s.getStatus).Methods(http.MethodGet)
}

// Start begins serving on addr. It returns once the listener is running;
// listen failures after startup are logged.
func (s *APIServer) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	go func() {
		s.logger.Info().Str("addr", addr).Msg("API server listening")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("API server failed")
		}
	}()

	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *APIServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	if s.limiter != nil {
		s.limiter.Close()
	}

	return s.httpServer.Shutdown(ctx)
}
