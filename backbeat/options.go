package backbeat

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/couchbase/replverify/retry"
	"github.com/couchbase/replverify/types/timeprovider"
)

// DefaultRetries is the number of attempts made for each request when none is configured.
const DefaultRetries = 3

// Options encapsulates the options available when creating a Backbeat client.
type Options struct {
	// Endpoint is the base URL of the deployment exposing the '/_/backbeat' API.
	Endpoint string

	// HTTPClient is used to dispatch requests, defaults to a client with a one minute timeout.
	HTTPClient *http.Client

	// Retries is the maximum number of attempts for each request.
	Retries int

	// Algorithm is the algorithm used to back off between attempts, the zero value uses the fibonacci sequence.
	Algorithm retry.Algorithm

	// TimeProvider is used to back off between attempts.
	TimeProvider timeprovider.TimeProvider

	// Logger is the passed logger which implements a custom Log method.
	Logger *slog.Logger
}

func (o *Options) defaults() {
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: time.Minute}
	}

	if o.Retries <= 0 {
		o.Retries = DefaultRetries
	}

	if o.TimeProvider == nil {
		o.TimeProvider = timeprovider.CurrentTimeProvider{}
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
