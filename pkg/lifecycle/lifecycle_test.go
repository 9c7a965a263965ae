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

package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/cloudpulse/pkg/logger"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *eventRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.events))
	copy(out, r.events)

	return out
}

type recordingService struct {
	name     string
	rec      *eventRecorder
	startErr error
	stopErr  error
}

func (s *recordingService) Start(_ context.Context) error {
	s.rec.add(s.name + ":start")
	return s.startErr
}

func (s *recordingService) Stop(_ context.Context) error {
	s.rec.add(s.name + ":stop")
	return s.stopErr
}

func TestRunStopsServicesInReverseOrderOnCancel(t *testing.T) {
	rec := &eventRecorder{}

	first := &recordingService{name: "core", rec: rec}
	second := &recordingService{name: "api", rec: rec}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, logger.NewTestLogger(), first, second)
	}()

	// Let both services start before canceling.
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Equal(t, []string{"core:start", "api:start", "api:stop", "core:stop"}, rec.snapshot())
}

func TestRunStopsStartedServicesWhenStartFails(t *testing.T) {
	rec := &eventRecorder{}

	startErr := errors.New("bind failed")

	first := &recordingService{name: "core", rec: rec}
	second := &recordingService{name: "api", rec: rec, startErr: startErr}

	err := Run(context.Background(), logger.NewTestLogger(), first, second)
	require.ErrorIs(t, err, startErr)

	assert.Equal(t, []string{"core:start", "api:start", "core:stop"}, rec.snapshot())
}

func TestRunReportsFirstStopError(t *testing.T) {
	rec := &eventRecorder{}

	stopErr := errors.New("drain timeout")

	first := &recordingService{name: "core", rec: rec}
	second := &recordingService{name: "api", rec: rec, stopErr: stopErr}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, logger.NewTestLogger(), first, second)
	require.ErrorIs(t, err, stopErr)
}
