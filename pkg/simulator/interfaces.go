package simulator

import (
	"context"
	"time"

	"github.com/carverauto/cloudpulse/pkg/models"
)

//go:generate mockgen -destination=mock_simulator.go -package=simulator github.com/carverauto/cloudpulse/pkg/simulator Clock,Ticker,Sink,TransitionPublisher

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// Sink receives generator output. The store implements it; tests swap in
// a recording fake.
type Sink interface {
	UpdateMetrics(ts time.Time, series []models.MetricSeries)
	UpdateServices(ts time.Time, records []models.ServiceRecord)
	AppendLog(rec models.LogRecord)
}

// StateReader exposes the current simulated state to the log emitter so
// heartbeat records can reference live values.
type StateReader interface {
	Metrics() []models.MetricSeries
	Services() []models.ServiceRecord
}

// TransitionPublisher receives service state transitions as they happen.
// The health loop invokes it synchronously on every transition, so
// implementations must not block for long. A nil publisher disables
// transition events.
type TransitionPublisher interface {
	PublishTransition(ctx context.Context, data *models.ServiceHealthEventData) error
}
