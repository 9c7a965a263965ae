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

package store

import (
	"sort"

	"github.com/carverauto/cloudpulse/pkg/models"
)

const defaultLogLimit = 50

// logRing is a fixed-capacity ring of log records. push overwrites the
// oldest entry once the ring is full. Callers hold the store's log lock.
type logRing struct {
	buf  []models.LogRecord
	head int
	size int
}

func newLogRing(capacity int) *logRing {
	if capacity <= 0 {
		capacity = 1
	}

	return &logRing{buf: make([]models.LogRecord, capacity)}
}

func (r *logRing) push(rec models.LogRecord) {
	r.buf[r.head] = rec
	r.head = (r.head + 1) % len(r.buf)

	if r.size < len(r.buf) {
		r.size++
	}
}

// newestFirst visits retained records from newest to oldest, stopping
// early when fn returns false.
func (r *logRing) newestFirst(fn func(rec *models.LogRecord) bool) {
	for i := 0; i < r.size; i++ {
		idx := (r.head - 1 - i + len(r.buf)) % len(r.buf)

		if !fn(&r.buf[idx]) {
			return
		}
	}
}

// Logs returns one page of retained log records, newest first. Total is
// the number of records matching the level and service filters before
// pagination, so clients can page through the full match set.
func (s *Store) Logs(q models.LogQuery) models.LogsPage {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLogLimit
	}

	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	s.logsMu.RLock()
	defer s.logsMu.RUnlock()

	page := models.LogsPage{
		Logs:   make([]models.LogRecord, 0, limit),
		Limit:  limit,
		Offset: offset,
	}

	matched := 0

	s.logs.newestFirst(func(rec *models.LogRecord) bool {
		if q.Level != "" && rec.Level != q.Level {
			return true
		}

		if q.Service != "" && rec.Service != q.Service {
			return true
		}

		if matched >= offset && len(page.Logs) < limit {
			page.Logs = append(page.Logs, *rec)
		}

		matched++

		return true
	})

	page.Total = matched

	return page
}

// LogStats returns per-level counts over the retained log window.
func (s *Store) LogStats() models.LogStats {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()

	stats := models.LogStats{ByLevel: make(map[models.LogLevel]int)}

	s.logs.newestFirst(func(rec *models.LogRecord) bool {
		stats.Total++
		stats.ByLevel[rec.Level]++

		return true
	})

	return stats
}

// LogServices returns the distinct service names present in the retained
// log window, sorted for stable output.
func (s *Store) LogServices() []string {
	s.logsMu.RLock()

	seen := make(map[string]struct{})

	s.logs.newestFirst(func(rec *models.LogRecord) bool {
		if rec.Service != "" {
			seen[rec.Service] = struct{}{}
		}

		return true
	})

	s.logsMu.RUnlock()

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}

	sort.Strings(out)

	return out
}
