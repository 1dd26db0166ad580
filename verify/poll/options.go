package poll

import (
	"log/slog"
	"time"

	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/types/timeprovider"
)

const (
	// DefaultDelay is the delay between each poll.
	DefaultDelay = 2 * time.Second

	// DefaultBudget is the maximum amount of time spent waiting for an object to settle.
	DefaultBudget = 5 * time.Minute
)

// Options encapsulates the options available when creating a poller.
type Options struct {
	// Client is the backend which is polled.
	//
	// NOTE: This attribute is required.
	Client objcli.Client

	// Name identifies the backend in errors/logs, defaults to the client provider.
	Name string

	// Mode is the settlement predicate, defaults to 'ModeSettled'.
	Mode Mode

	// Delay is the fixed delay between each poll.
	Delay time.Duration

	// Budget is the maximum wall-clock time spent waiting; once exhausted no further polls are scheduled.
	Budget time.Duration

	// TimeProvider is the clock used to measure the budget and wait between polls.
	TimeProvider timeprovider.TimeProvider

	Logger *slog.Logger
}

// defaults fills any missing attributes to a sane default.
func (o *Options) defaults() {
	if o.Name == "" && o.Client != nil {
		o.Name = o.Client.Provider().String()
	}

	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	}

	if o.Budget <= 0 {
		o.Budget = DefaultBudget
	}

	if o.TimeProvider == nil {
		o.TimeProvider = timeprovider.CurrentTimeProvider{}
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}
