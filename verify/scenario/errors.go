package scenario

import (
	"errors"
	"fmt"
)

// Role is the role of a backend within a verification run.
type Role string

const (
	RoleSource      Role = "source"
	RoleDestination Role = "destination"
)

// FetchError is returned when an object could not be fetched from a backend once replication has settled.
type FetchError struct {
	Backend   string
	Role      Role
	Bucket    string
	Key       string
	VersionID string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch key '%s' (version '%s') from %s '%s' bucket '%s': %s",
		e.Key, e.VersionID, e.Role, e.Backend, e.Bucket, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError returns a boolean indicating whether the given error is a 'FetchError'.
func IsFetchError(err error) bool {
	var fetchError *FetchError
	return errors.As(err, &fetchError)
}

// UnexpectedObjectError is returned when an object exists in a destination where it must not have been replicated,
// for example whilst replication is paused.
type UnexpectedObjectError struct {
	Backend string
	Bucket  string
	Key     string
}

func (e *UnexpectedObjectError) Error() string {
	return fmt.Sprintf("key '%s' unexpectedly replicated to destination '%s' bucket '%s'", e.Key, e.Backend, e.Bucket)
}
