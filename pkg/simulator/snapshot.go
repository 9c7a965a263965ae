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
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/carverauto/cloudpulse/pkg/models"
)

const (
	snapshotFilePerms = 0o600
	dataDirPerms      = 0o750
)

// snapshotState is the on-disk shape of persisted simulator state.
type snapshotState struct {
	SavedAt  time.Time              `json:"saved_at"`
	Metrics  []models.MetricSeries  `json:"metrics"`
	Services []models.ServiceRecord `json:"services"`
}

// snapshotPath resolves the snapshot location, creating the data
// directory when one is configured.
func (s *Simulator) snapshotPath() string {
	if s.config.DataDir == "" {
		return s.config.SnapshotFile
	}

	if err := os.MkdirAll(s.config.DataDir, dataDirPerms); err != nil {
		s.logger.Warn().Err(err).Str("dir", s.config.DataDir).Msg("Failed to create data directory")
	}

	return filepath.Join(s.config.DataDir, s.config.SnapshotFile)
}

// loadSnapshot restores persisted state when a fresh snapshot exists.
// Everything here is best effort: a missing, unreadable, or stale
// snapshot just means a cold start.
func (s *Simulator) loadSnapshot() {
	path := s.snapshotPath()

	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Debug().Str("path", path).Msg("No simulator snapshot found, starting from seed state")
		return
	}

	var saved snapshotState

	if err := json.Unmarshal(data, &saved); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to parse simulator snapshot, starting from seed state")
		return
	}

	if age := s.clock.Now().Sub(saved.SavedAt); age > defaultSnapshotMaxAge {
		s.logger.Info().Dur("age", age).Str("path", path).Msg("Ignoring stale simulator snapshot")
		return
	}

	s.telemetry.restore(saved.Metrics)
	s.health.restore(saved.Services)

	s.logger.Info().
		Int("metrics", len(saved.Metrics)).
		Int("services", len(saved.Services)).
		Str("path", path).
		Msg("Restored simulator state from snapshot")
}

// saveSnapshot persists the current generator state under a file lock so
// concurrent instances sharing a data directory do not interleave writes.
func (s *Simulator) saveSnapshot() {
	path := s.snapshotPath()
	lock := flock.New(path + ".lock")

	locked, err := lock.TryLock()
	if err != nil || !locked {
		s.logger.Warn().Err(err).Str("path", path).Msg("Snapshot file is locked, skipping save")
		return
	}

	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to release snapshot lock")
		}
	}()

	saved := snapshotState{
		SavedAt:  s.clock.Now(),
		Metrics:  s.telemetry.Metrics(),
		Services: s.health.Services(),
	}

	data, err := json.Marshal(saved)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal simulator snapshot")
		return
	}

	if err := os.WriteFile(path, data, snapshotFilePerms); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("Failed to write simulator snapshot")
		return
	}

	s.logger.Info().Str("path", path).Msg("Saved simulator state snapshot")
}
