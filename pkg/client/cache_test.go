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
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testInterval = 5 * time.Second

// newTestCacheClock wires a mock clock whose ticker is driven by the
// returned channel.
func newTestCacheClock(ctrl *gomock.Controller) (*MockClock, chan time.Time) {
	tickCh := make(chan time.Time)

	var readOnly <-chan time.Time = tickCh

	ticker := NewMockTicker(ctrl)
	ticker.EXPECT().Chan().Return(readOnly).AnyTimes()
	ticker.EXPECT().Stop().AnyTimes()

	clock := NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Now()).AnyTimes()
	clock.EXPECT().Ticker(testInterval).Return(ticker).AnyTimes()

	return clock, tickCh
}

func TestPollingCacheServesFetchedValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock, _ := newTestCacheClock(ctrl)

	fetch := func(_ context.Context) (string, error) {
		return "snapshot-1", nil
	}

	cache := NewPollingCache("metrics", fetch, ResourceConfig{Interval: testInterval}, clock)
	cache.Start(context.Background())
	defer cache.Stop()

	v, err := cache.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "snapshot-1", v)
	assert.False(t, cache.IsStale())
	assert.Equal(t, "metrics", cache.Name())
}

func TestPollingCacheConcurrentReadsDuringRefreshShareOneFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock, tickCh := newTestCacheClock(ctrl)

	var (
		calls        int32
		fetchStarted = make(chan struct{})
		release      = make(chan struct{})
	)

	fetch := func(_ context.Context) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return "old", nil
		}

		close(fetchStarted)
		<-release

		return "new", nil
	}

	cache := NewPollingCache("metrics", fetch, ResourceConfig{Interval: testInterval}, clock)
	cache.Start(context.Background())
	defer cache.Stop()

	v, err := cache.Read(context.Background())
	require.NoError(t, err)
	require.Equal(t, "old", v)

	// Kick the second refresh and let it park inside the fetch.
	tickCh <- time.Now()
	<-fetchStarted

	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			got, readErr := cache.Read(context.Background())
			assert.NoError(t, readErr)
			assert.Equal(t, "old", got)
		}()
	}

	wg.Wait()

	// Ten concurrent reads during the in-flight refresh triggered no
	// extra network calls.
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	close(release)

	assert.Eventually(t, func() bool {
		got, readErr := cache.Read(context.Background())
		return readErr == nil && got == "new"
	}, time.Second, 5*time.Millisecond)
}

func TestPollingCacheReadRacingStartupRefreshFetchesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock, _ := newTestCacheClock(ctrl)

	var calls int32

	fetch := func(_ context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "first", nil
		}

		return "duplicate", nil
	}

	cache := NewPollingCache("metrics", fetch, ResourceConfig{Interval: testInterval}, clock)

	// A reader racing the startup refresh sees no refresh in flight and
	// queues a kick; model that deterministically before the loop runs.
	cache.kick <- struct{}{}

	cache.Start(context.Background())
	defer cache.Stop()

	v, err := cache.Read(context.Background())
	require.NoError(t, err)
	require.Equal(t, "first", v)

	// The leftover kick is dropped once a fresh value exists instead of
	// firing a second fetch.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	v, err = cache.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", v)
}

func TestPollingCacheServesStaleValueAfterFailedRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock, tickCh := newTestCacheClock(ctrl)

	var calls int32

	fetch := func(_ context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "good", nil
		}

		return "", &NetworkError{URL: "http://core/api/metrics", Err: errors.New("refused")}
	}

	cache := NewPollingCache("metrics", fetch, ResourceConfig{Interval: testInterval}, clock)
	cache.Start(context.Background())
	defer cache.Stop()

	v, err := cache.Read(context.Background())
	require.NoError(t, err)
	require.Equal(t, "good", v)
	require.False(t, cache.IsStale())

	tickCh <- time.Now()

	assert.Eventually(t, cache.IsStale, time.Second, 5*time.Millisecond)

	v, err = cache.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "good", v)
	assert.Error(t, cache.LastError())
}

func TestPollingCacheHaltsOnDefinitiveClientError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock, tickCh := newTestCacheClock(ctrl)

	var calls int32

	fetch := func(_ context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", &APIError{Status: http.StatusNotFound, Code: "RESOURCE_NOT_FOUND", Message: "gone"}
		}

		return "recovered", nil
	}

	cache := NewPollingCache("service", fetch, ResourceConfig{Interval: testInterval}, clock)
	cache.Start(context.Background())
	defer cache.Stop()

	_, err := cache.Read(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	// Repeated reads keep surfacing the definitive error instead of
	// blocking on refreshes that will not happen.
	_, err = cache.Read(context.Background())
	require.Error(t, err)

	// Ticks while halted never reach the fetch function.
	tickCh <- time.Now()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	cache.Invalidate()

	assert.Eventually(t, func() bool {
		got, readErr := cache.Read(context.Background())
		return readErr == nil && got == "recovered"
	}, time.Second, 5*time.Millisecond)
}

func TestPollingCacheFirstFailurePropagatesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock, _ := newTestCacheClock(ctrl)

	var calls int32

	fetch := func(_ context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return "", &APIError{Status: http.StatusInternalServerError, Message: "boom"}
		}

		return "later", nil
	}

	cache := NewPollingCache("status", fetch, ResourceConfig{Interval: testInterval}, clock)
	cache.Start(context.Background())
	defer cache.Stop()

	_, err := cache.Read(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)

	// The error was consumed; the next read triggers a fresh fetch and
	// gets the value.
	v, err := cache.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "later", v)
}

func TestPollingCacheDiscardsResultsFromOutdatedGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock, _ := newTestCacheClock(ctrl)

	var (
		calls        int32
		fetchStarted = make(chan struct{})
		release      = make(chan struct{})
	)

	fetch := func(_ context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(fetchStarted)
			<-release

			return "outdated", nil
		}

		return "current", nil
	}

	cache := NewPollingCache("logs", fetch, ResourceConfig{Interval: testInterval}, clock)
	cache.Start(context.Background())

	defer cache.Stop()

	<-fetchStarted

	// Invalidate while the first fetch is still in flight: its result
	// belongs to the old generation and must not be written back.
	cache.Invalidate()
	close(release)

	v, err := cache.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "current", v)
}

func TestPollingCacheStopUnblocksWaitingReaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clock, _ := newTestCacheClock(ctrl)

	fetchStarted := make(chan struct{})
	release := make(chan struct{})

	fetch := func(_ context.Context) (string, error) {
		close(fetchStarted)
		<-release

		return "", errors.New("never delivered")
	}

	cache := NewPollingCache("metrics", fetch, ResourceConfig{Interval: testInterval}, clock)
	cache.Start(context.Background())

	<-fetchStarted

	readDone := make(chan error, 1)

	go func() {
		_, err := cache.Read(context.Background())
		readDone <- err
	}()

	// Stop closes the done channel immediately, then waits for the loop;
	// the waiting reader must unblock without the fetch ever finishing.
	stopDone := make(chan struct{})

	go func() {
		cache.Stop()
		close(stopDone)
	}()

	select {
	case err := <-readDone:
		require.ErrorIs(t, err, ErrNoCachedValue)
	case <-time.After(time.Second):
		t.Fatal("reader did not unblock on Stop")
	}

	// Let the parked fetch finish so Stop can drain the loop goroutine.
	close(release)
	<-stopDone
}
