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

// Package simulator drives the synthetic infrastructure: a random-walk
// telemetry generator, a service health state machine, and a log
// emitter, each ticking on its own period. Generation is best effort; a
// failed tick is logged and absorbed, never stopping a loop and never
// reaching a serving path.
package simulator

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/cloudpulse/pkg/logger"
)

// Simulator owns the three generator loops and their shared lifecycle.
type Simulator struct {
	config    *Config
	clock     Clock
	telemetry *TelemetryGenerator
	health    *HealthSimulator
	emitter   *LogEmitter
	logger    logger.Logger

	ready     atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New builds a Simulator writing into sink. A nil clock selects the real
// clock, a nil publisher disables transition events, and a zero seed
// derives one from the clock so unseeded runs do not repeat.
func New(
	cfg *Config,
	sink Sink,
	state StateReader,
	clck Clock,
	publisher TransitionPublisher,
	log logger.Logger,
) *Simulator {
	if clck == nil {
		clck = realClock{}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = clck.Now().UnixNano()
	}

	// Each loop gets its own source so their draws stay independent of
	// scheduling order.
	emitter := NewLogEmitter(rand.New(rand.NewSource(seed+2)), sink, state)
	telemetry := NewTelemetryGenerator(cfg.Metrics, cfg.TrendEpsilon, rand.New(rand.NewSource(seed)), sink, emitter)
	health := NewHealthSimulator(
		cfg.Services, cfg.Transitions, cfg.Uptime,
		rand.New(rand.NewSource(seed+1)), sink, emitter, publisher, log)

	s := &Simulator{
		config:    cfg,
		clock:     clck,
		telemetry: telemetry,
		health:    health,
		emitter:   emitter,
		logger:    log,
		done:      make(chan struct{}),
	}

	if cfg.PersistState {
		s.loadSnapshot()
	}

	return s
}

// Start runs one synchronous tick of the telemetry and health generators
// so the store is populated before the first request can arrive, then
// launches the background loops.
func (s *Simulator) Start(ctx context.Context) error {
	now := s.clock.Now()

	s.safeTick(ctx, "telemetry", now, s.telemetry.Tick)
	s.safeTick(ctx, "services", now, s.health.Tick)
	s.ready.Store(true)

	s.wg.Add(3)

	go s.runLoop(ctx, "telemetry", time.Duration(s.config.MetricsInterval), s.telemetry.Tick)
	go s.runLoop(ctx, "services", time.Duration(s.config.ServicesInterval), s.health.Tick)
	go s.runLoop(ctx, "logs", time.Duration(s.config.LogsInterval), s.emitter.Tick)

	s.logger.Info().
		Dur("metrics_interval", time.Duration(s.config.MetricsInterval)).
		Dur("services_interval", time.Duration(s.config.ServicesInterval)).
		Dur("logs_interval", time.Duration(s.config.LogsInterval)).
		Msg("Simulator started")

	return nil
}

// Stop halts the loops, waits for in-flight ticks, and persists state
// when configured to.
func (s *Simulator) Stop(_ context.Context) error {
	s.closeOnce.Do(func() {
		close(s.done)
	})

	s.wg.Wait()

	if s.config.PersistState {
		s.saveSnapshot()
	}

	s.logger.Info().Msg("Simulator stopped")

	return nil
}

// Ready reports whether the initial generation tick has completed.
func (s *Simulator) Ready() bool {
	return s.ready.Load()
}

func (s *Simulator) runLoop(ctx context.Context, name string, interval time.Duration, tick func(context.Context, time.Time)) {
	defer s.wg.Done()

	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case now := <-ticker.Chan():
			s.safeTick(ctx, name, now, tick)
		}
	}
}

// safeTick absorbs a panicking tick so one bad cycle cannot take down
// the generation loop.
func (s *Simulator) safeTick(ctx context.Context, name string, now time.Time, tick func(context.Context, time.Time)) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Str("generator", name).Interface("panic", r).Msg("Recovered from generation tick failure")
		}
	}()

	tick(ctx, now)
}
