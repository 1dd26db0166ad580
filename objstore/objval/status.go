package objval

import (
	"fmt"
	"strings"
)

// ReplicationStatus is the replication state reported by a backend for an object version.
type ReplicationStatus string

const (
	// ReplicationStatusUnknown is the zero value; it's never reported by a backend and is used where a status is not
	// asserted.
	ReplicationStatusUnknown ReplicationStatus = ""

	// ReplicationStatusPending indicates the replication service has not started processing the object.
	ReplicationStatusPending ReplicationStatus = "PENDING"

	// ReplicationStatusProcessing indicates replication to at least one destination is in flight.
	ReplicationStatusProcessing ReplicationStatus = "PROCESSING"

	// ReplicationStatusCompleted indicates the object has been replicated to every destination.
	ReplicationStatusCompleted ReplicationStatus = "COMPLETED"

	// ReplicationStatusReplica is reported by a destination for an object created by replication.
	ReplicationStatusReplica ReplicationStatus = "REPLICA"

	// ReplicationStatusFailed indicates replication to at least one destination failed.
	ReplicationStatusFailed ReplicationStatus = "FAILED"

	// ReplicationStatusNone indicates the backend reports no replication status for the object.
	ReplicationStatusNone ReplicationStatus = "NONE"

	// ReplicationStatusDeleted is synthetic, it's never reported by a backend and is returned when waiting for an
	// object to disappear.
	ReplicationStatusDeleted ReplicationStatus = "DELETED"
)

// InFlight returns a boolean indicating whether replication is still in progress.
func (r ReplicationStatus) InFlight() bool {
	return r == ReplicationStatusPending || r == ReplicationStatusProcessing
}

// ParseReplicationStatus converts a status reported by a backend into a 'ReplicationStatus'. An empty string means the
// backend did not report a status.
//
// NOTE: AWS reports 'COMPLETE' where Scality reports 'COMPLETED', both are accepted.
func ParseReplicationStatus(s string) (ReplicationStatus, error) {
	switch strings.ToUpper(s) {
	case "":
		return ReplicationStatusNone, nil
	case "PENDING":
		return ReplicationStatusPending, nil
	case "PROCESSING":
		return ReplicationStatusProcessing, nil
	case "COMPLETE", "COMPLETED":
		return ReplicationStatusCompleted, nil
	case "REPLICA":
		return ReplicationStatusReplica, nil
	case "FAILED":
		return ReplicationStatusFailed, nil
	}

	return ReplicationStatusUnknown, fmt.Errorf("unknown replication status %q", s)
}
