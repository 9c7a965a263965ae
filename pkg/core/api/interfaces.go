// Package api pkg/core/api/interfaces.go
package api

import (
	"context"

	"github.com/carverauto/cloudpulse/pkg/models"
)

//go:generate mockgen -destination=mock_api.go -package=api github.com/carverauto/cloudpulse/pkg/core/api CoreService

// CoreService is the query surface the API serves. The core Server
// implements it; tests substitute a mock.
type CoreService interface {
	Metrics() []models.MetricSeries
	MetricsSummary(ctx context.Context) ([]models.MetricSummary, error)
	Services() []models.ServiceRecord
	Service(id string) (models.ServiceRecord, error)
	ServiceHealth(id string) (models.ServiceHealth, error)
	Logs(q models.LogQuery) models.LogsPage
	LogStats() models.LogStats
	LogServices() []string
	SubscribeLogs(buffer int) (<-chan models.LogRecord, func())
	Status() models.SystemStatus
	Ready() bool
	Health(ctx context.Context) models.HealthResponse
}
