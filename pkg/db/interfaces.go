package db

import (
	"context"
	"time"

	"github.com/carverauto/cloudpulse/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/carverauto/cloudpulse/pkg/db HistoryStore

// HistoryStore records metric samples and aggregates them over a time
// window.
type HistoryStore interface {
	// RecordSamples appends one tick's worth of samples.
	RecordSamples(ctx context.Context, samples []models.MetricSample) error

	// Summaries aggregates min/max/avg per metric over the trailing
	// window, sorted by metric name.
	Summaries(ctx context.Context, window time.Duration) ([]models.MetricSummary, error)

	// Prune drops samples older than the retention horizon.
	Prune(ctx context.Context, olderThan time.Duration) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close()
}
