package poll

import (
	"context"

	"github.com/couchbase/replverify/log"
	"github.com/couchbase/replverify/objstore/objerr"
)

// ReplicationEnabled is the status of a bucket replication rule once replication is enabled.
const ReplicationEnabled = "Enabled"

// ReplicationStatusFunc returns the status of the replication rule for the given bucket, see
// 'objaws.Client.GetBucketReplicationStatus'.
type ReplicationStatusFunc func(ctx context.Context, bucket string) (string, error)

// WaitUntilReplicationEnabled polls the replication rule of the given bucket until it's enabled. A missing replication
// configuration is treated as not yet enabled.
//
// NOTE: The 'Client' and 'Mode' options are unused.
func WaitUntilReplicationEnabled(
	ctx context.Context,
	bucket string,
	fetch ReplicationStatusFunc,
	options Options,
) error {
	if options.Name == "" {
		options.Name = "replication rule"
	}

	p := NewPoller(options)

	logger := p.options.Logger.With("backend", p.options.Name, log.UserData("bucket", bucket))

	check := func(ctx context.Context) (observation, error) {
		status, err := fetch(ctx, bucket)

		switch {
		case err == nil:
			return observation{settled: status == ReplicationEnabled}, nil
		case objerr.IsNotFoundError(err), objerr.IsTransientError(err):
			return observation{transient: err}, nil
		}

		return observation{}, err
	}

	res, err := p.run(ctx, logger, Target{Bucket: bucket}, check)
	if err != nil {
		return err
	}

	logger.Info("Bucket replication enabled", "polls", res.Polls)

	return nil
}
