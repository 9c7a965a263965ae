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

import "math/rand"

// walk advances value by a uniform step in [-step, step] and clamps the
// result to [low, high]. Values at a bound stay in the domain rather than
// reflecting, so a pinned series reads as saturation, not noise.
func walk(rng *rand.Rand, value, step, low, high float64) float64 {
	next := value + (rng.Float64()*2-1)*step

	return clamp(next, low, high)
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}

// midpoint seeds a fresh series at the center of its domain.
func midpoint(low, high float64) float64 {
	return low + (high-low)/2
}
