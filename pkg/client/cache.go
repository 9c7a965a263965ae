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
	"sync"
	"time"
)

// FetchFunc produces a fresh value for one logical resource.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// ResourceConfig tunes one polling cache.
type ResourceConfig struct {
	// Interval between automatic refreshes.
	Interval time.Duration
	// TTL after which a value counts as stale even without a failed
	// refresh. Zero defaults to twice the interval.
	TTL time.Duration
}

// PollingCache wraps a fetch function with interval-based refresh and
// stale-while-revalidate semantics. At most one refresh is in flight at a
// time; readers are never blocked on a refresh once a value exists.
//
// A refresh that fails with a definitive 4xx halts automatic refresh for
// the resource until Invalidate is called. Results from a refresh that
// started before an Invalidate or Stop carry a stale generation and are
// discarded instead of written back.
type PollingCache[T any] struct {
	name     string
	fetch    FetchFunc[T]
	interval time.Duration
	ttl      time.Duration
	clock    Clock

	mu         sync.Mutex
	value      T
	hasValue   bool
	fetchedAt  time.Time
	lastErr    error
	stale      bool
	halted     bool
	inFlight   bool
	generation uint64
	waiters    []chan struct{}

	kick      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPollingCache builds a cache for one logical resource. Start must be
// called before automatic refreshes happen; Read before the first
// successful refresh waits for one.
func NewPollingCache[T any](name string, fetch FetchFunc[T], cfg ResourceConfig, clock Clock) *PollingCache[T] {
	if clock == nil {
		clock = realClock{}
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 2 * cfg.Interval
	}

	return &PollingCache[T]{
		name:     name,
		fetch:    fetch,
		interval: cfg.Interval,
		ttl:      ttl,
		clock:    clock,
		kick:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start launches the refresh loop: one immediate refresh, then one per
// interval, plus any kicked by Invalidate or a first Read.
func (c *PollingCache[T]) Start(ctx context.Context) {
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		c.refresh(ctx)

		ticker := c.clock.Ticker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.done:
				return
			case <-c.kick:
				c.refreshIfNeeded(ctx)
			case <-ticker.Chan():
				c.refresh(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop. Any in-flight refresh completes but its
// result is discarded.
func (c *PollingCache[T]) Stop() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.generation++
		c.mu.Unlock()

		close(c.done)
	})

	c.wg.Wait()
}

// Read returns the last known good value, stale or not. When no value has
// ever been fetched it waits for the pending refresh; if that refresh
// failed, the classified error is delivered to the first caller only.
func (c *PollingCache[T]) Read(ctx context.Context) (T, error) {
	for {
		c.mu.Lock()

		if c.hasValue {
			v := c.value
			c.mu.Unlock()

			return v, nil
		}

		if c.halted && c.lastErr != nil {
			// A definitive failure with nothing cached: every reader
			// gets the error until Invalidate clears the halt.
			err := c.lastErr
			c.mu.Unlock()

			var zero T

			return zero, err
		}

		if c.lastErr != nil {
			err := c.lastErr
			c.lastErr = nil
			c.mu.Unlock()

			var zero T

			return zero, err
		}

		ch := make(chan struct{})
		c.waiters = append(c.waiters, ch)
		inFlight := c.inFlight
		c.mu.Unlock()

		if !inFlight {
			select {
			case c.kick <- struct{}{}:
			default:
			}
		}

		var zero T

		select {
		case <-ch:
			// Re-check under the lock.
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-c.done:
			return zero, ErrNoCachedValue
		}
	}
}

// Name identifies the resource this cache serves.
func (c *PollingCache[T]) Name() string {
	return c.name
}

// IsStale reports whether the cached value should be treated as possibly
// out of date: the last refresh failed, refresh is halted, the TTL
// elapsed, or no value exists at all.
func (c *PollingCache[T]) IsStale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasValue {
		return true
	}

	if c.stale || c.halted {
		return true
	}

	return c.clock.Now().Sub(c.fetchedAt) > c.ttl
}

// LastError returns the most recent refresh failure, nil after a
// successful refresh.
func (c *PollingCache[T]) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastErr
}

// Invalidate marks the current value stale, clears a 4xx halt, and kicks
// an immediate refresh. Results from refreshes that started earlier are
// discarded.
func (c *PollingCache[T]) Invalidate() {
	c.mu.Lock()
	c.generation++
	c.halted = false
	c.lastErr = nil

	if c.hasValue {
		c.stale = true
	}
	c.mu.Unlock()

	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// refreshIfNeeded serves a kicked refresh only when a reader could gain
// from one: no fresh value and no failure pending delivery. A Read that
// races an already-running refresh queues a kick; once that refresh
// lands, the kick is obsolete and must not fire a second fetch.
func (c *PollingCache[T]) refreshIfNeeded(ctx context.Context) {
	c.mu.Lock()

	fresh := c.hasValue && !c.stale && c.clock.Now().Sub(c.fetchedAt) <= c.ttl
	pending := c.lastErr != nil

	c.mu.Unlock()

	if fresh || pending {
		return
	}

	c.refresh(ctx)
}

func (c *PollingCache[T]) refresh(ctx context.Context) {
	c.mu.Lock()

	if c.inFlight || c.halted {
		c.mu.Unlock()
		return
	}

	c.inFlight = true
	gen := c.generation
	c.mu.Unlock()

	value, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight = false
	defer c.notifyWaiters()

	if gen != c.generation {
		// Invalidate or Stop raced this refresh; the result belongs to
		// an outdated generation.
		return
	}

	if err != nil {
		c.lastErr = err

		if c.hasValue {
			c.stale = true
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Definitive() {
			c.halted = true
		}

		return
	}

	c.value = value
	c.hasValue = true
	c.fetchedAt = c.clock.Now()
	c.lastErr = nil
	c.stale = false
}

func (c *PollingCache[T]) notifyWaiters() {
	for _, ch := range c.waiters {
		close(ch)
	}

	c.waiters = nil
}
