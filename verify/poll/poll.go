// Package poll implements waiting for the replication status of an object to settle, or for an object to disappear.
package poll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchbase/replverify/log"
	"github.com/couchbase/replverify/metrics"
	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// Target identifies the object being waited on.
type Target struct {
	Bucket string
	Key    string

	// VersionID optionally selects a specific version, the latest version is polled when empty.
	VersionID string
}

// Result is the outcome of a wait.
type Result struct {
	State State

	// Status is the last observed replication status, 'ReplicationStatusDeleted' when an absent wait settles.
	Status objval.ReplicationStatus

	// Polls is the number of fetches performed.
	Polls int

	// Elapsed is the time between the first fetch and the wait finishing.
	Elapsed time.Duration
}

// observation is the outcome of a single poll.
type observation struct {
	settled bool
	status  objval.ReplicationStatus

	// transient is the absorbed error which caused another cycle, if any.
	transient error
}

// Poller waits for objects in a single backend to satisfy its settlement predicate. Each poll performs a fresh fetch,
// nothing is cached between polls.
type Poller struct {
	options Options
}

// NewPoller returns a new poller using the given options.
func NewPoller(options Options) *Poller {
	options.defaults()

	return &Poller{options: options}
}

// Wait blocks until the target settles, the budget is exhausted or a non-transient error occurs.
//
// NOTE: Errors other than timeouts/cancellation are returned unchanged.
func (p *Poller) Wait(ctx context.Context, target Target) (Result, error) {
	logger := p.options.Logger.With(
		"backend", p.options.Name,
		"mode", p.options.Mode.String(),
		log.UserData("bucket", target.Bucket),
		log.UserData("key", target.Key),
		"version_id", target.VersionID,
	)

	return p.run(ctx, logger, target, func(ctx context.Context) (observation, error) {
		return p.poll(ctx, target)
	})
}

// poll performs a single fetch and applies the settlement predicate of the mode.
func (p *Poller) poll(ctx context.Context, target Target) (observation, error) {
	attrs, err := p.options.Client.GetObjectAttrs(ctx, objcli.GetObjectAttrsOptions{
		Bucket:    target.Bucket,
		Key:       target.Key,
		VersionID: target.VersionID,
	})

	switch {
	case err == nil && p.options.Mode == ModeAbsent:
		return observation{status: attrs.ReplicationStatus}, nil
	case err == nil:
		return observation{settled: !attrs.ReplicationStatus.InFlight(), status: attrs.ReplicationStatus}, nil
	case objerr.IsNotFoundError(err) && p.options.Mode == ModeAbsent:
		return observation{settled: true, status: objval.ReplicationStatusDeleted}, nil
	case objerr.IsNotFoundError(err), objerr.IsTransientError(err):
		return observation{transient: err}, nil
	}

	return observation{}, err
}

// run drives the polling loop, 'check' is called once per cycle; suspension only happens between calls to 'check'.
func (p *Poller) run(
	ctx context.Context,
	logger *slog.Logger,
	target Target,
	check func(ctx context.Context) (observation, error),
) (Result, error) {
	var (
		tp    = p.options.TimeProvider
		start = tp.Now()
		res   = Result{State: StateWaiting}
	)

	finish := func(state State, err error) (Result, error) {
		res.State = state
		res.Elapsed = tp.Now().Sub(start)

		metrics.WaitDuration.WithLabelValues(p.options.Mode.String(), state.String()).Observe(res.Elapsed.Seconds())

		return res, err
	}

	for {
		obs, err := check(ctx)
		res.Polls++

		if err != nil {
			p.observe("failed")
			logger.Error("Failed to poll replication status", "polls", res.Polls, "err", err)

			return finish(StateFailed, err)
		}

		res.Status = obs.status

		if obs.settled {
			p.observe("settled")
			logger.Info("Replication settled", "status", res.Status, "polls", res.Polls)

			return finish(StateSettled, nil)
		}

		outcome := "waiting"
		if obs.transient != nil {
			outcome = "transient"
		}

		p.observe(outcome)

		if elapsed := tp.Now().Sub(start); elapsed >= p.options.Budget {
			logger.Warn("Timed out waiting for replication to settle",
				"status", res.Status, "polls", res.Polls, "budget", p.options.Budget)

			return finish(StateTimedOut, &TimeoutError{
				Backend:   p.options.Name,
				Bucket:    target.Bucket,
				Key:       target.Key,
				VersionID: target.VersionID,
				Mode:      p.options.Mode,
				Budget:    p.options.Budget,
				Status:    res.Status,
				Err:       obs.transient,
			})
		}

		logger.Debug("Waiting for replication to settle",
			"status", res.Status, "polls", res.Polls, "delay", p.options.Delay, "err", obs.transient)

		select {
		case <-ctx.Done():
			return finish(StateFailed, fmt.Errorf("failed to wait for replication: %w", ctx.Err()))
		case <-tp.After(p.options.Delay):
		}
	}
}

func (p *Poller) observe(outcome string) {
	metrics.PollsTotal.WithLabelValues(p.options.Mode.String(), outcome).Inc()
}
