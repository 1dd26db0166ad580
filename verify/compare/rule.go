package compare

import (
	"fmt"

	"github.com/couchbase/replverify/objstore/objval"
)

// Family is the backend family of a replication destination, it selects the key-mapping table used when comparing a
// destination against its source.
type Family int

const (
	// FamilyScality is a Scality (S3 compatible) destination, replicas are full copies including version ids.
	FamilyScality Family = iota

	// FamilyAWS is an AWS S3 destination.
	FamilyAWS

	// FamilyAzure is an Azure blob destination, which has no versioning.
	FamilyAzure

	// FamilyGCP is a Google Cloud Storage destination, where generations are used as version ids.
	FamilyGCP
)

// String returns a human readable representation of the family.
func (f Family) String() string {
	switch f {
	case FamilyScality:
		return "scality"
	case FamilyAWS:
		return "aws"
	case FamilyAzure:
		return "azure"
	case FamilyGCP:
		return "gcp"
	}

	return fmt.Sprintf("unknown(%d)", int(f))
}

// ParseFamily parses a family from its configuration name.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "scality":
		return FamilyScality, nil
	case "aws":
		return FamilyAWS, nil
	case "azure":
		return FamilyAzure, nil
	case "gcp":
		return FamilyGCP, nil
	}

	return 0, fmt.Errorf("unknown destination family %q", s)
}

// ACLMode determines how ACLs are compared.
type ACLMode int

const (
	// ACLSkip doesn't compare ACLs.
	ACLSkip ACLMode = iota

	// ACLFull requires the grants to be identical.
	ACLFull

	// ACLFirstPermission only requires the permission of the first grant to match, grantees are account specific.
	ACLFirstPermission
)

// Attribute is a structural object attribute compared with direct equality.
type Attribute string

const (
	AttributeContentType        Attribute = "content-type"
	AttributeCacheControl       Attribute = "cache-control"
	AttributeContentDisposition Attribute = "content-disposition"
	AttributeContentEncoding    Attribute = "content-encoding"
	AttributeContentLanguage    Attribute = "content-language"
)

// value returns the value of the attribute, <nil> when absent or when the attribute is unknown.
func (a Attribute) value(attrs objval.ObjectAttrs) *string {
	switch a {
	case AttributeContentType:
		return attrs.ContentType
	case AttributeCacheControl:
		return attrs.CacheControl
	case AttributeContentDisposition:
		return attrs.ContentDisposition
	case AttributeContentEncoding:
		return attrs.ContentEncoding
	case AttributeContentLanguage:
		return attrs.ContentLanguage
	}

	return nil
}

// known returns a boolean indicating whether the attribute is one of the supported structural attributes.
func (a Attribute) known() bool {
	for _, attribute := range allAttributes {
		if a == attribute {
			return true
		}
	}

	return false
}

var allAttributes = []Attribute{
	AttributeContentType,
	AttributeCacheControl,
	AttributeContentDisposition,
	AttributeContentEncoding,
	AttributeContentLanguage,
}

// Rule is the comparison rule for a single destination; rules should be built using the family constructors e.g.
// 'AWS' and may then be adjusted.
type Rule struct {
	Family Family

	// Location is the name of the replication location, used to derive the source lineage keys.
	Location string

	// SourceStatus is the status the source must report, 'ReplicationStatusUnknown' skips the check.
	SourceStatus objval.ReplicationStatus

	// DestinationStatus is the status the destination must report, 'ReplicationStatusUnknown' skips the check.
	DestinationStatus objval.ReplicationStatus

	// SourceVersionKey/SourceStatusKey are the lineage keys written to the source metadata by the replication service
	// once the object has been replicated to this location.
	SourceVersionKey string
	SourceStatusKey  string

	// ReplicaVersionKey/ReplicaStatusKey are the reverse lineage keys written to the destination metadata, recording the
	// source version id.
	ReplicaVersionKey string
	ReplicaStatusKey  string

	// LinkVersionID requires the source version lineage key to match the destination version id.
	LinkVersionID bool

	// SameVersionID requires the source and destination version ids to be identical.
	SameVersionID bool

	// ETag requires the source and destination etags to be identical.
	ETag bool

	// Size requires the source and destination content length to be identical.
	Size bool

	// Attributes are the structural attributes compared with direct equality.
	Attributes []Attribute

	// Metadata requires the user metadata to be identical, once lineage keys have been removed.
	Metadata bool

	// Tags requires the tag sets to be identical (ignoring order) when captured for both objects.
	Tags bool

	// ACL determines how ACLs are compared when captured for both objects.
	ACL ACLMode
}

// Validate returns an error if the rule has an unknown family or attribute, which would never be compared.
func (r Rule) Validate() error {
	if r.Family < FamilyScality || r.Family > FamilyGCP {
		return fmt.Errorf("unknown destination family %d", int(r.Family))
	}

	for _, attribute := range r.Attributes {
		if !attribute.known() {
			return fmt.Errorf("unknown attribute %q", attribute)
		}
	}

	return nil
}

// WithReplicaStatus returns a copy of the rule which requires the destination to report a 'REPLICA' status.
func (r Rule) WithReplicaStatus() Rule {
	r.DestinationStatus = objval.ReplicationStatusReplica
	return r
}

// LineageKeys returns the keys written to the source metadata by the replication service for the given location.
func LineageKeys(location string) []string {
	return []string{location + "-version-id", location + "-replication-status"}
}

// sourceLineageKeys returns the lineage keys this rule expects in the source metadata.
func (r Rule) sourceLineageKeys() []string {
	keys := make([]string, 0, 2)

	for _, key := range []string{r.SourceVersionKey, r.SourceStatusKey} {
		if key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}

// Scality returns the rule for a Scality destination, the replica is expected to be identical to its source.
func Scality() Rule {
	return Rule{
		Family:            FamilyScality,
		SourceStatus:      objval.ReplicationStatusCompleted,
		DestinationStatus: objval.ReplicationStatusReplica,
		SameVersionID:     true,
		ETag:              true,
		Size:              true,
		Attributes:        allAttributes,
		Metadata:          true,
		Tags:              true,
		ACL:               ACLFull,
	}
}

// AWS returns the rule for an AWS destination at the given location.
func AWS(location string) Rule {
	return Rule{
		Family:            FamilyAWS,
		Location:          location,
		SourceStatus:      objval.ReplicationStatusCompleted,
		SourceVersionKey:  location + "-version-id",
		SourceStatusKey:   location + "-replication-status",
		ReplicaVersionKey: "scal-version-id",
		ReplicaStatusKey:  "scal-replication-status",
		LinkVersionID:     true,
		ETag:              true,
		Size:              true,
		Attributes:        allAttributes,
		Metadata:          true,
		Tags:              true,
		ACL:               ACLFirstPermission,
	}
}

// Azure returns the rule for an Azure destination at the given location. Azure has no versioning, so there's no
// version lineage key on the source, and metadata keys may not contain dashes.
func Azure(location string) Rule {
	return Rule{
		Family:            FamilyAzure,
		Location:          location,
		SourceStatus:      objval.ReplicationStatusCompleted,
		SourceStatusKey:   location + "-replication-status",
		ReplicaVersionKey: "scal_version_id",
		ReplicaStatusKey:  "scal_replication_status",
		Size:              true,
		Attributes: []Attribute{
			AttributeContentType,
			AttributeCacheControl,
			AttributeContentEncoding,
			AttributeContentLanguage,
		},
		Metadata: true,
		Tags:     true,
	}
}

// GCP returns the rule for a Google Cloud Storage destination at the given location; the destination generation is
// used as its version id.
func GCP(location string) Rule {
	return Rule{
		Family:            FamilyGCP,
		Location:          location,
		SourceStatus:      objval.ReplicationStatusCompleted,
		SourceVersionKey:  location + "-version-id",
		SourceStatusKey:   location + "-replication-status",
		ReplicaVersionKey: "scal-version-id",
		ReplicaStatusKey:  "scal-replication-status",
		LinkVersionID:     true,
		Size:              true,
		Metadata:          true,
	}
}

// ForFamily returns the rule for the given family and location.
func ForFamily(family Family, location string) (Rule, error) {
	switch family {
	case FamilyScality:
		return Scality(), nil
	case FamilyAWS:
		return AWS(location), nil
	case FamilyAzure:
		return Azure(location), nil
	case FamilyGCP:
		return GCP(location), nil
	}

	return Rule{}, fmt.Errorf("unknown destination family %d", int(family))
}
