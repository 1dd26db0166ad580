package compare

import (
	"errors"
	"fmt"

	"github.com/couchbase/replverify/objstore/objval"
)

const (
	FieldSourceStatus      = "source-replication-status"
	FieldDestinationStatus = "replication-status"
	FieldVersionID         = "version-id"
	FieldBody              = "body"
	FieldETag              = "etag"
	FieldSize              = "content-length"
	FieldTags              = "tags"
	FieldACL               = "acl"

	// metadataFieldPrefix prefixes the key of a mismatching user metadata entry.
	metadataFieldPrefix = "metadata."
)

// absent is the value reported for an attribute which is not set.
const absent = "<absent>"

// MetadataField returns the field name used for the user metadata entry with the given key.
func MetadataField(key string) string {
	return metadataFieldPrefix + key
}

// Mismatch is a terminal verification failure, a single field differs between the source and a destination.
type Mismatch struct {
	// Destination is the name of the destination which doesn't match the source.
	Destination string

	// Key/VersionID identify the destination object.
	Key       string
	VersionID string

	// Field is the attribute which differs.
	Field string

	// SourceValue/DestinationValue are the conflicting values, bodies are reported by their fingerprint.
	SourceValue      string
	DestinationValue string

	// ExpectedValue is set when a single object doesn't have the value required by the rule, only the value of that
	// object is then populated.
	ExpectedValue string

	// SourceBody/DestinationBody are only populated for body mismatches, so they may be dumped for investigation.
	SourceBody      []byte
	DestinationBody []byte
}

// SourceStatusMismatch returns the mismatch reported when the source didn't settle with the status expected for the
// given destination.
func SourceStatusMismatch(destination, key, versionID string, actual, expected objval.ReplicationStatus) *Mismatch {
	return &Mismatch{
		Destination:   destination,
		Key:           key,
		VersionID:     versionID,
		Field:         FieldSourceStatus,
		SourceValue:   statusValue(actual),
		ExpectedValue: string(expected),
	}
}

func (m *Mismatch) Error() string {
	prefix := fmt.Sprintf("destination '%s' key '%s' (version '%s'): '%s' mismatch",
		m.Destination, m.Key, m.VersionID, m.Field)

	switch {
	case m.ExpectedValue != "" && m.SourceValue != "":
		return fmt.Sprintf("%s: source '%s', expected '%s'", prefix, m.SourceValue, m.ExpectedValue)
	case m.ExpectedValue != "":
		return fmt.Sprintf("%s: destination '%s', expected '%s'", prefix, m.DestinationValue, m.ExpectedValue)
	}

	return fmt.Sprintf("%s: source '%s', destination '%s'", prefix, m.SourceValue, m.DestinationValue)
}

// IsMismatch returns a boolean indicating whether the given error is a 'Mismatch'.
func IsMismatch(err error) bool {
	var mismatch *Mismatch
	return errors.As(err, &mismatch)
}

// Verdict is the result of comparing a source against its destinations; the zero value is a pass.
type Verdict struct {
	mismatch *Mismatch
}

// Pass returns a boolean indicating whether every destination matched the source.
func (v Verdict) Pass() bool {
	return v.mismatch == nil
}

// Mismatch returns the first mismatch found, <nil> for a pass.
func (v Verdict) Mismatch() *Mismatch {
	return v.mismatch
}

// Err returns the mismatch as an error, <nil> for a pass.
func (v Verdict) Err() error {
	if v.mismatch == nil {
		return nil
	}

	return v.mismatch
}
