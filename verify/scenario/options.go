package scenario

import (
	"log/slog"
	"time"

	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/types/timeprovider"
	"github.com/couchbase/replverify/verify/compare"
	"github.com/couchbase/replverify/verify/diag"
	"github.com/couchbase/replverify/verify/poll"
)

// Endpoint is a bucket in a backend.
type Endpoint struct {
	// Name identifies the backend in errors/logs, defaults to the client provider.
	Name string

	Client objcli.Client
	Bucket string
}

// name returns the name of the endpoint.
func (e Endpoint) name() string {
	if e.Name != "" {
		return e.Name
	}

	return e.Client.Provider().String()
}

// Destination is a replication destination, compared against the source using its rule.
type Destination struct {
	Endpoint

	Rule compare.Rule

	// PrefixSourceBucket indicates replicas are stored under '<source bucket>/<key>' in the destination, which is the
	// case for locations which don't match the source bucket name.
	PrefixSourceBucket bool
}

// key returns the key of the replica of the given source key.
func (d Destination) key(sourceBucket, key string) string {
	if d.PrefixSourceBucket {
		return sourceBucket + "/" + key
	}

	return key
}

// Options encapsulates the options available when creating a 'Runner'.
type Options struct {
	// Source is the bucket objects are written to, and replicated from.
	//
	// NOTE: This attribute is required.
	Source Endpoint

	// Locations are the replication locations of the source bucket, including those which aren't verified. The lineage
	// keys written to the source for each location are ignored when comparing user metadata.
	Locations []string

	// Delay is the delay between polls, see 'poll.Options'.
	Delay time.Duration

	// Budget is the maximum time spent waiting for each backend to settle, see 'poll.Options'.
	Budget time.Duration

	// TimeProvider is the clock used when waiting.
	TimeProvider timeprovider.TimeProvider

	// Dumper persists mismatching bodies, defaults to a 'diag.FileDumper' using its default options.
	Dumper diag.Dumper

	// PoolSize is the maximum number of concurrent fetches, defaults to one per backend.
	PoolSize int

	Logger *slog.Logger
}

// defaults fills any missing attributes to a sane default.
func (o *Options) defaults() {
	if o.Delay <= 0 {
		o.Delay = poll.DefaultDelay
	}

	if o.Budget <= 0 {
		o.Budget = poll.DefaultBudget
	}

	if o.TimeProvider == nil {
		o.TimeProvider = timeprovider.CurrentTimeProvider{}
	}

	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	if o.Dumper == nil {
		o.Dumper = diag.NewFileDumper(diag.FileDumperOptions{Logger: o.Logger})
	}
}
