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

package core

import (
	"context"
	"sync"
	"time"

	"github.com/carverauto/cloudpulse/pkg/db"
	"github.com/carverauto/cloudpulse/pkg/logger"
	"github.com/carverauto/cloudpulse/pkg/models"
	"github.com/carverauto/cloudpulse/pkg/store"
)

const historyWriteTimeout = 5 * time.Second

// historySink feeds generator output into the live store and mirrors each
// metric snapshot into the history store. History writes run off the tick
// goroutine so a slow or unreachable database never stalls generation.
type historySink struct {
	store   *store.Store
	history db.HistoryStore
	logger  logger.Logger
	wg      sync.WaitGroup
}

func newHistorySink(st *store.Store, history db.HistoryStore, log logger.Logger) *historySink {
	return &historySink{
		store:   st,
		history: history,
		logger:  log,
	}
}

func (s *historySink) UpdateMetrics(ts time.Time, series []models.MetricSeries) {
	s.store.UpdateMetrics(ts, series)

	if s.history == nil {
		return
	}

	samples := make([]models.MetricSample, len(series))
	for i := range series {
		samples[i] = models.MetricSample{
			Name:      series[i].Name,
			Value:     series[i].Value,
			Unit:      series[i].Unit,
			Timestamp: ts,
		}
	}

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), historyWriteTimeout)
		defer cancel()

		if err := s.history.RecordSamples(ctx, samples); err != nil {
			s.logger.Error().Err(err).Msg("Failed to record metric history")
		}
	}()
}

func (s *historySink) UpdateServices(ts time.Time, records []models.ServiceRecord) {
	s.store.UpdateServices(ts, records)
}

func (s *historySink) AppendLog(rec models.LogRecord) {
	s.store.AppendLog(rec)
}

// wait blocks until in-flight history writes finish. Called on shutdown.
func (s *historySink) wait() {
	s.wg.Wait()
}
