package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/couchbase/replverify/hofp"
	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objutil"
	"github.com/couchbase/replverify/verify/poll"
)

// VerifyDeletion deletes the source object (or version) then waits for it to disappear from every destination.
func (r *Runner) VerifyDeletion(ctx context.Context, check Check, dests ...Destination) error {
	err := r.verifyDeletion(ctx, check, dests)
	r.record("delete", err)

	return err
}

func (r *Runner) verifyDeletion(ctx context.Context, check Check, dests []Destination) error {
	source := r.options.Source

	err := source.Client.DeleteObject(ctx, objcli.DeleteObjectOptions{
		Bucket:    source.Bucket,
		Key:       check.Key,
		VersionID: check.VersionID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete key '%s' (version '%s') from source '%s' bucket '%s': %w",
			check.Key, check.VersionID, source.name(), source.Bucket, err)
	}

	for _, dest := range dests {
		res, err := r.poller(dest.Endpoint, poll.ModeAbsent).Wait(ctx, poll.Target{
			Bucket: dest.Bucket,
			Key:    dest.key(source.Bucket, check.Key),
		})
		if err != nil {
			return err // Purposefully not wrapped
		}

		r.options.Logger.Info("Deletion propagated",
			r.attrs(check.Key, check.VersionID, "destination", dest.name(), "polls", res.Polls)...)
	}

	return nil
}

// VerifyNotReplicated waits for the grace period then checks the object hasn't been replicated to any destination, for
// example whilst replication is paused.
func (r *Runner) VerifyNotReplicated(ctx context.Context, check Check, grace time.Duration, dests ...Destination) error {
	err := r.verifyNotReplicated(ctx, check, grace, dests)
	r.record("paused", err)

	return err
}

func (r *Runner) verifyNotReplicated(ctx context.Context, check Check, grace time.Duration, dests []Destination) error {
	source := r.options.Source

	if err := r.wait(ctx, grace); err != nil {
		return fmt.Errorf("failed to wait for grace period: %w", err)
	}

	for _, dest := range dests {
		key := dest.key(source.Bucket, check.Key)

		exists, err := objutil.Exists(ctx, dest.Client, dest.Bucket, key, "")
		if err != nil {
			return &FetchError{Backend: dest.name(), Role: RoleDestination, Bucket: dest.Bucket, Key: key, Err: err}
		}

		if exists {
			return &UnexpectedObjectError{Backend: dest.name(), Bucket: dest.Bucket, Key: key}
		}
	}

	r.options.Logger.Info("Object not replicated", r.attrs(check.Key, check.VersionID, "grace", grace)...)

	return nil
}

// Cleanup deletes every version of every object with the given prefix from the source and each destination.
func (r *Runner) Cleanup(ctx context.Context, prefix string, dests ...Destination) error {
	type target struct {
		endpoint Endpoint
		prefix   string
	}

	source := r.options.Source

	targets := []target{{endpoint: source, prefix: prefix}}

	for _, dest := range dests {
		targets = append(targets, target{endpoint: dest.Endpoint, prefix: dest.key(source.Bucket, prefix)})
	}

	options := hofp.Options{
		Context:   ctx,
		Size:      r.options.PoolSize,
		LogPrefix: "(scenario)",
		Logger:    r.options.Logger,
	}

	return hofp.Each(options, targets, func(ctx context.Context, t target) error {
		err := t.endpoint.Client.DeleteDirectory(ctx, objcli.DeleteDirectoryOptions{
			Bucket:   t.endpoint.Bucket,
			Prefix:   t.prefix,
			Versions: true,
		})
		if err != nil {
			return fmt.Errorf("failed to cleanup prefix '%s' in '%s' bucket '%s': %w",
				t.prefix, t.endpoint.name(), t.endpoint.Bucket, err)
		}

		return nil
	})
}
