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

package simulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalkStaysInDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	value := 50.0
	for i := 0; i < 10000; i++ {
		value = walk(rng, value, 25, 20, 90)

		assert.GreaterOrEqual(t, value, 20.0)
		assert.LessOrEqual(t, value, 90.0)
	}
}

func TestWalkStepBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	value := 50.0
	for i := 0; i < 1000; i++ {
		next := walk(rng, value, 5, 0, 100)

		// Away from the domain edges a step never exceeds the configured
		// magnitude.
		assert.LessOrEqual(t, next-value, 5.0)
		assert.GreaterOrEqual(t, next-value, -5.0)

		value = next
	}
}

func TestWalkDeterministicForSeed(t *testing.T) {
	a := rand.New(rand.NewSource(1234))
	b := rand.New(rand.NewSource(1234))

	va, vb := 42.0, 42.0
	for i := 0; i < 100; i++ {
		va = walk(a, va, 3, 0, 100)
		vb = walk(b, vb, 3, 0, 100)

		assert.Equal(t, va, vb)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		low      float64
		high     float64
		expected float64
	}{
		{name: "inside", value: 50, low: 0, high: 100, expected: 50},
		{name: "below", value: -5, low: 0, high: 100, expected: 0},
		{name: "above", value: 105, low: 0, high: 100, expected: 100},
		{name: "at low bound", value: 0, low: 0, high: 100, expected: 0},
		{name: "at high bound", value: 100, low: 0, high: 100, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clamp(tt.value, tt.low, tt.high))
		})
	}
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, 55.0, midpoint(20, 90))
	assert.Equal(t, 25.25, midpoint(0.5, 50))
}
