package poll

import (
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/replverify/objstore/objval"
)

// TimeoutError is returned when the budget is exhausted before the object settles; it signals that replication did
// not converge in time, which is distinct from a verification failure.
type TimeoutError struct {
	// Backend is the name of the backend being polled.
	Backend string

	Bucket    string
	Key       string
	VersionID string

	// Mode is the settlement predicate which was never satisfied.
	Mode Mode

	// Budget is the configured budget.
	Budget time.Duration

	// Status is the last replication status observed, 'ReplicationStatusUnknown' when the last poll didn't return the
	// object.
	Status objval.ReplicationStatus

	// Err is the last transient error observed, if any.
	Err error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timeout after %dms waiting for key '%s' (version '%s') in bucket '%s' on '%s' to be %s",
		e.Budget.Milliseconds(), e.Key, e.VersionID, e.Bucket, e.Backend, e.Mode)

	if e.Status != objval.ReplicationStatusUnknown {
		msg += fmt.Sprintf(", last status %s", e.Status)
	}

	if e.Err != nil {
		msg += fmt.Sprintf(", last error: %s", e.Err)
	}

	return msg
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// IsTimeoutError returns a boolean indicating whether the given error is a 'TimeoutError'.
func IsTimeoutError(err error) bool {
	var timeoutError *TimeoutError
	return errors.As(err, &timeoutError)
}
