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

// Package lifecycle runs a binary's long-lived services with signal
// handling and graceful shutdown.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/cloudpulse/pkg/logger"
)

const defaultShutdownTimeout = 10 * time.Second

// Service is a long-lived component with explicit start and stop.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Run starts the services in order and blocks until the context is
// canceled or SIGINT/SIGTERM arrives, then stops them in reverse order.
// A service that fails to start aborts the run; services already started
// are stopped before the error is returned.
func Run(ctx context.Context, log logger.Logger, services ...Service) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := make([]Service, 0, len(services))

	for _, svc := range services {
		if err := svc.Start(sigCtx); err != nil {
			stopServices(started, log)
			return err
		}

		started = append(started, svc)
	}

	log.Info().Int("services", len(started)).Msg("All services running")

	<-sigCtx.Done()

	log.Info().Msg("Shutdown signal received")

	return stopServices(started, log)
}

func stopServices(started []Service, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	var firstErr error

	for i := len(started) - 1; i >= 0; i-- {
		if err := started[i].Stop(ctx); err != nil {
			log.Error().Err(err).Msg("Service shutdown failed")

			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// httpServer is the surface the API server exposes for lifecycle control.
type httpServer interface {
	Start(addr string) error
	Shutdown(ctx context.Context) error
}

// HTTPService adapts an HTTP server to the Service interface.
func HTTPService(srv httpServer, addr string) Service {
	return &httpService{srv: srv, addr: addr}
}

type httpService struct {
	srv  httpServer
	addr string
}

func (h *httpService) Start(_ context.Context) error {
	return h.srv.Start(h.addr)
}

func (h *httpService) Stop(ctx context.Context) error {
	return h.srv.Shutdown(ctx)
}
