package client

import (
	"net/http"
	"time"
)

//go:generate mockgen -destination=mock_client.go -package=client github.com/carverauto/cloudpulse/pkg/client HTTPDoer,Clock,Ticker

// HTTPDoer abstracts the HTTP transport so tests can script responses.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

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
