package poll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
	"github.com/couchbase/replverify/types/timeprovider"
)

const (
	testBucket = "bucket"
	testKey    = "key"
	testDelay  = 2 * time.Second
)

// blockingTimeProvider never fires, so a wait can only finish through context cancellation.
type blockingTimeProvider struct {
	timeprovider.CurrentTimeProvider
}

func (blockingTimeProvider) After(time.Duration) <-chan time.Time {
	return nil
}

func newTestPoller(client objcli.Client, mode Mode, budget time.Duration) (*Poller, *timeprovider.FakeTimeProvider) {
	tp := timeprovider.NewFakeTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	poller := NewPoller(Options{
		Client:       client,
		Mode:         mode,
		Delay:        testDelay,
		Budget:       budget,
		TimeProvider: tp,
	})

	return poller, tp
}

func putTestObject(client *objcli.TestClient) string {
	return client.PutObjectState(testBucket, &objval.TestObject{
		ObjectAttrs: objval.ObjectAttrs{Key: testKey},
		Body:        []byte("value"),
	})
}

func TestNewPollerDefaults(t *testing.T) {
	poller := NewPoller(Options{Client: objcli.NewTestClient(t, objval.ProviderScality)})

	require.Equal(t, "Scality", poller.options.Name)
	require.Equal(t, DefaultDelay, poller.options.Delay)
	require.Equal(t, DefaultBudget, poller.options.Budget)
	require.Equal(t, ModeSettled, poller.options.Mode)
	require.NotNil(t, poller.options.TimeProvider)
	require.NotNil(t, poller.options.Logger)
}

func TestWaitSettled(t *testing.T) {
	type test struct {
		name     string
		statuses []objval.ReplicationStatus
		status   objval.ReplicationStatus
		polls    int
	}

	tests := []*test{
		{
			name: "PendingPendingCompleted",
			statuses: []objval.ReplicationStatus{
				objval.ReplicationStatusPending,
				objval.ReplicationStatusPending,
				objval.ReplicationStatusCompleted,
			},
			status: objval.ReplicationStatusCompleted,
			polls:  3,
		},
		{
			name: "ProcessingFailed",
			statuses: []objval.ReplicationStatus{
				objval.ReplicationStatusProcessing,
				objval.ReplicationStatusFailed,
			},
			status: objval.ReplicationStatusFailed,
			polls:  2,
		},
		{
			name:     "ImmediateReplica",
			statuses: []objval.ReplicationStatus{objval.ReplicationStatusReplica},
			status:   objval.ReplicationStatusReplica,
			polls:    1,
		},
		{
			name:     "NoReplicationStatus",
			statuses: []objval.ReplicationStatus{objval.ReplicationStatusNone},
			status:   objval.ReplicationStatusNone,
			polls:    1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := objcli.NewTestClient(t, objval.ProviderScality)
			putTestObject(client)
			client.SetReplicationStatuses(testBucket, testKey, test.statuses...)

			poller, tp := newTestPoller(client, ModeSettled, time.Minute)

			res, err := poller.Wait(context.Background(), Target{Bucket: testBucket, Key: testKey})
			require.NoError(t, err)
			require.Equal(t, StateSettled, res.State)
			require.Equal(t, test.status, res.Status)
			require.Equal(t, test.polls, res.Polls)
			require.Equal(t, time.Duration(test.polls-1)*testDelay, res.Elapsed)

			sleeps := tp.Sleeps()
			require.Len(t, sleeps, test.polls-1)

			for _, sleep := range sleeps {
				require.Equal(t, testDelay, sleep)
			}

			require.Equal(t, test.polls, client.Calls("GetObjectAttrs"))
		})
	}
}

func TestWaitSettledTimeout(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderScality)
	version := putTestObject(client)
	client.SetReplicationStatuses(testBucket, testKey, objval.ReplicationStatusProcessing)

	poller, tp := newTestPoller(client, ModeSettled, 5*time.Second)

	res, err := poller.Wait(context.Background(), Target{Bucket: testBucket, Key: testKey, VersionID: version})
	require.Error(t, err)
	require.True(t, IsTimeoutError(err))
	require.ErrorContains(t, err, "timeout after 5000ms")
	require.ErrorContains(t, err, "last status PROCESSING")
	require.ErrorContains(t, err, version)

	require.Equal(t, StateTimedOut, res.State)
	require.Equal(t, objval.ReplicationStatusProcessing, res.Status)
	require.Equal(t, 4, res.Polls)
	require.Len(t, tp.Sleeps(), 3)
}

func TestWaitSettledAbsorbsTransientErrors(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderScality)
	putTestObject(client)
	client.SetReplicationStatuses(testBucket, testKey, objval.ReplicationStatusCompleted)
	client.InjectErrors(testBucket, testKey,
		&objerr.TransientError{Err: assert.AnError},
		&objerr.TransientError{Err: assert.AnError},
	)

	poller, tp := newTestPoller(client, ModeSettled, time.Minute)

	res, err := poller.Wait(context.Background(), Target{Bucket: testBucket, Key: testKey})
	require.NoError(t, err)
	require.Equal(t, StateSettled, res.State)
	require.Equal(t, objval.ReplicationStatusCompleted, res.Status)
	require.Equal(t, 3, res.Polls)
	require.Len(t, tp.Sleeps(), 2)
}

func TestWaitSettledTimeoutWrapsLastTransientError(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderScality)
	client.InjectErrors(testBucket, testKey,
		&objerr.TransientError{Err: assert.AnError},
		&objerr.TransientError{Err: assert.AnError},
	)

	poller, _ := newTestPoller(client, ModeSettled, testDelay)

	res, err := poller.Wait(context.Background(), Target{Bucket: testBucket, Key: testKey})
	require.True(t, IsTimeoutError(err))
	require.ErrorIs(t, err, assert.AnError)
	require.Equal(t, StateTimedOut, res.State)
	require.Equal(t, 2, res.Polls)
}

func TestWaitSettledNotFoundIsAnotherCycle(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderScality)

	// The object appears (already replicated) between the first and second poll
	client.Hook = func(op, _, _ string) {
		if op == "GetObjectAttrs" && client.Calls("GetObjectAttrs") == 1 {
			client.PutObjectState(testBucket, &objval.TestObject{
				ObjectAttrs: objval.ObjectAttrs{Key: testKey, ReplicationStatus: objval.ReplicationStatusReplica},
			})
		}
	}

	poller, tp := newTestPoller(client, ModeSettled, time.Minute)

	res, err := poller.Wait(context.Background(), Target{Bucket: testBucket, Key: testKey})
	require.NoError(t, err)
	require.Equal(t, objval.ReplicationStatusReplica, res.Status)
	require.Equal(t, 2, res.Polls)
	require.Equal(t, []time.Duration{testDelay}, tp.Sleeps())
}

func TestWaitFailsOnFatalError(t *testing.T) {
	type test struct {
		name string
		mode Mode
	}

	tests := []*test{
		{name: "Settled", mode: ModeSettled},
		{name: "Absent", mode: ModeAbsent},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := objcli.NewTestClient(t, objval.ProviderScality)
			putTestObject(client)

			fatal := &objerr.FatalError{Reason: "unknown replication status"}
			client.InjectErrors(testBucket, testKey, fatal)

			poller, tp := newTestPoller(client, test.mode, time.Minute)

			res, err := poller.Wait(context.Background(), Target{Bucket: testBucket, Key: testKey})
			require.ErrorIs(t, err, fatal)
			require.False(t, IsTimeoutError(err))
			require.Equal(t, StateFailed, res.State)
			require.Equal(t, 1, res.Polls)
			require.Empty(t, tp.Sleeps())
		})
	}
}

func TestWaitAbsent(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderAWS)
	putTestObject(client)

	// The deletion propagates after the third poll
	client.Hook = func(op, _, _ string) {
		if op == "GetObjectAttrs" && client.Calls("GetObjectAttrs") == 2 {
			require.NoError(t, client.DeleteObject(context.Background(), objcli.DeleteObjectOptions{
				Bucket: testBucket,
				Key:    testKey,
			}))
		}
	}

	poller, tp := newTestPoller(client, ModeAbsent, time.Minute)

	res, err := poller.Wait(context.Background(), Target{Bucket: testBucket, Key: testKey})
	require.NoError(t, err)
	require.Equal(t, StateSettled, res.State)
	require.Equal(t, objval.ReplicationStatusDeleted, res.Status)
	require.Equal(t, 3, res.Polls)
	require.Len(t, tp.Sleeps(), 2)
}

func TestWaitAbsentTimeout(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderAWS)
	putTestObject(client)

	poller, _ := newTestPoller(client, ModeAbsent, 10*time.Second)

	res, err := poller.Wait(context.Background(), Target{Bucket: testBucket, Key: testKey})
	require.True(t, IsTimeoutError(err))
	require.ErrorContains(t, err, "to be absent")
	require.Equal(t, StateTimedOut, res.State)
	require.NotEqual(t, objval.ReplicationStatusDeleted, res.Status)
}

func TestWaitContextCancelled(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderScality)
	putTestObject(client)
	client.SetReplicationStatuses(testBucket, testKey, objval.ReplicationStatusPending)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	poller := NewPoller(Options{Client: client, TimeProvider: blockingTimeProvider{}})

	res, err := poller.Wait(ctx, Target{Bucket: testBucket, Key: testKey})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, IsTimeoutError(err))
	require.Equal(t, StateFailed, res.State)
	require.Equal(t, 1, res.Polls)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "WAITING", StateWaiting.String())
	require.Equal(t, "SETTLED", StateSettled.String())
	require.Equal(t, "TIMED_OUT", StateTimedOut.String())
	require.Equal(t, "FAILED", StateFailed.String())
	require.Equal(t, "UNKNOWN(42)", State(42).String())

	require.Equal(t, "settled", ModeSettled.String())
	require.Equal(t, "absent", ModeAbsent.String())
	require.Equal(t, "unknown(42)", Mode(42).String())
}
