// Package scenario composes the poller and comparator into end-to-end replication checks. Each check is a linear
// sequence of blocking calls, and a failed comparison is never retried.
package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/couchbase/replverify/hofp"
	"github.com/couchbase/replverify/log"
	"github.com/couchbase/replverify/metrics"
	"github.com/couchbase/replverify/objstore/objutil"
	"github.com/couchbase/replverify/objstore/objval"
	"github.com/couchbase/replverify/verify/compare"
	"github.com/couchbase/replverify/verify/poll"
)

// Object is an object written to the source.
type Object struct {
	Key        string
	Body       []byte
	Attributes objval.PutAttributes
}

// Check identifies a source object which should be verified.
type Check struct {
	Key string

	// VersionID optionally selects a specific source version, the latest version is used when empty.
	VersionID string

	// Tags indicates whether tag sets should be captured and compared.
	Tags bool

	// ACL indicates whether ACLs should be captured and compared.
	ACL bool
}

// Runner runs verification scenarios against a single source bucket. Each call is a self-contained verification run,
// no state is shared between runs.
type Runner struct {
	options Options
}

// NewRunner returns a new runner using the given options.
func NewRunner(options Options) *Runner {
	options.defaults()

	return &Runner{options: options}
}

// Source returns the endpoint objects are replicated from.
func (r *Runner) Source() Endpoint {
	return r.options.Source
}

// ReplicateAndVerify writes the object to the source then verifies it's replicated to every destination, returning
// the source version id.
func (r *Runner) ReplicateAndVerify(ctx context.Context, object Object, dests ...Destination) (string, error) {
	source := r.options.Source

	version, err := objutil.Upload(ctx, objutil.UploadOptions{
		Client:     source.Client,
		Bucket:     source.Bucket,
		Key:        object.Key,
		Body:       object.Body,
		Attributes: object.Attributes,
	})
	if err != nil {
		err = fmt.Errorf("failed to write key '%s' to source '%s' bucket '%s': %w",
			object.Key, source.name(), source.Bucket, err)

		r.record("replicate", err)

		return "", err
	}

	r.options.Logger.Info("Wrote source object", r.attrs(object.Key, version, "size", len(object.Body))...)

	check := Check{
		Key:       object.Key,
		VersionID: version,
		Tags:      len(object.Attributes.Tags) != 0,
		ACL:       object.Attributes.CannedACL != "",
	}

	err = r.verify(ctx, check, dests)
	r.record("replicate", err)

	return version, err
}

// Verify verifies an existing source object has been replicated to every destination.
func (r *Runner) Verify(ctx context.Context, check Check, dests ...Destination) error {
	err := r.verify(ctx, check, dests)
	r.record("verify", err)

	return err
}

// verify waits for the source then every destination to settle, before fetching and comparing snapshots.
func (r *Runner) verify(ctx context.Context, check Check, dests []Destination) error {
	source := r.options.Source

	for _, dest := range dests {
		if err := dest.Rule.Validate(); err != nil {
			return fmt.Errorf("invalid rule for destination '%s': %w", dest.name(), err)
		}
	}

	res, err := r.poller(source, poll.ModeSettled).Wait(ctx, poll.Target{
		Bucket:    source.Bucket,
		Key:       check.Key,
		VersionID: check.VersionID,
	})
	if err != nil {
		return err // Purposefully not wrapped
	}

	for _, dest := range dests {
		expected := dest.Rule.SourceStatus
		if expected != objval.ReplicationStatusUnknown && res.Status != expected {
			return r.mismatch(compare.SourceStatusMismatch(dest.name(), check.Key, check.VersionID, res.Status, expected))
		}
	}

	for _, dest := range dests {
		_, err := r.poller(dest.Endpoint, poll.ModeSettled).Wait(ctx, poll.Target{
			Bucket: dest.Bucket,
			Key:    dest.key(source.Bucket, check.Key),
		})
		if err != nil {
			return err // Purposefully not wrapped
		}
	}

	snapshots, err := r.capture(ctx, check, dests)
	if err != nil {
		return err
	}

	targets := make([]compare.Target, 0, len(dests))

	for i, dest := range dests {
		targets = append(targets, compare.Target{Name: dest.name(), Snapshot: snapshots[i+1], Rule: dest.Rule})
	}

	verdict := compare.Compare(snapshots[0], targets, r.options.Locations...)
	if !verdict.Pass() {
		return r.mismatch(verdict.Mismatch())
	}

	r.options.Logger.Info("Replication verified",
		r.attrs(check.Key, snapshots[0].VersionID(), "status", res.Status, "destinations", len(dests))...)

	return nil
}

// fetch is a single snapshot fetched during a verification run.
type fetch struct {
	endpoint  Endpoint
	role      Role
	key       string
	versionID string
}

// capture fetches the source and destination snapshots concurrently, the source snapshot is first.
func (r *Runner) capture(ctx context.Context, check Check, dests []Destination) ([]*objval.Snapshot, error) {
	source := r.options.Source

	fetches := []fetch{{endpoint: source, role: RoleSource, key: check.Key, versionID: check.VersionID}}

	for _, dest := range dests {
		fetches = append(fetches, fetch{
			endpoint: dest.Endpoint,
			role:     RoleDestination,
			key:      dest.key(source.Bucket, check.Key),
		})
	}

	var (
		snapshots = make([]*objval.Snapshot, len(fetches))
		indexes   = make([]int, len(fetches))
	)

	for i := range indexes {
		indexes[i] = i
	}

	options := hofp.Options{
		Context:   ctx,
		Size:      r.options.PoolSize,
		LogPrefix: "(scenario)",
		Logger:    r.options.Logger,
	}

	err := hofp.Each(options, indexes, func(ctx context.Context, i int) error {
		f := fetches[i]

		snapshot, err := objutil.CaptureSnapshot(ctx, f.endpoint.Client, objutil.CaptureOptions{
			Bucket:    f.endpoint.Bucket,
			Key:       f.key,
			VersionID: f.versionID,
			Tags:      check.Tags,
			ACL:       check.ACL,
		})
		if err != nil {
			return &FetchError{
				Backend:   f.endpoint.name(),
				Role:      f.role,
				Bucket:    f.endpoint.Bucket,
				Key:       f.key,
				VersionID: f.versionID,
				Err:       err,
			}
		}

		snapshots[i] = snapshot

		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshots, nil
}

// mismatch records the mismatch, dumping both bodies when they differ.
func (r *Runner) mismatch(mismatch *compare.Mismatch) error {
	metrics.MismatchesTotal.WithLabelValues(mismatch.Destination, mismatch.Field).Inc()

	r.options.Logger.Error("Replication verification failed",
		r.attrs(mismatch.Key, mismatch.VersionID, "destination", mismatch.Destination, "field", mismatch.Field)...)

	if mismatch.Field != compare.FieldBody {
		return mismatch
	}

	_, err := r.options.Dumper.Dump(mismatch.Destination+"_"+mismatch.Key, mismatch.SourceBody, mismatch.DestinationBody)
	if err != nil {
		r.options.Logger.Error("Failed to dump mismatching bodies", "err", err)
	}

	return mismatch
}

// wait blocks for the given duration, or until the context is cancelled.
func (r *Runner) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.options.TimeProvider.After(d):
		return nil
	}
}

func (r *Runner) poller(endpoint Endpoint, mode poll.Mode) *poll.Poller {
	return poll.NewPoller(poll.Options{
		Client:       endpoint.Client,
		Name:         endpoint.name(),
		Mode:         mode,
		Delay:        r.options.Delay,
		Budget:       r.options.Budget,
		TimeProvider: r.options.TimeProvider,
		Logger:       r.options.Logger,
	})
}

// record updates the verification metrics with the result of a run.
func (r *Runner) record(scenario string, err error) {
	result := "pass"

	switch {
	case err == nil:
	case compare.IsMismatch(err):
		result = "mismatch"
	case poll.IsTimeoutError(err):
		result = "timeout"
	default:
		result = "error"
	}

	metrics.VerificationsTotal.WithLabelValues(scenario, result).Inc()
}

// attrs returns the common log attributes for the given source object followed by the given key/value pairs.
func (r *Runner) attrs(key, versionID string, args ...any) []any {
	return append([]any{
		"source", r.options.Source.name(),
		log.UserData("bucket", r.options.Source.Bucket),
		log.UserData("key", key),
		"version_id", versionID,
	}, args...)
}
