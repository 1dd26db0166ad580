// Package compare implements the comparison of a replicated object against its source, normalizing the lineage
// metadata written by the replication service for each destination family.
package compare

import (
	"bytes"
	"encoding/hex"
	"slices"
	"strconv"

	"golang.org/x/exp/maps"

	"github.com/couchbase/replverify/objstore/objval"
)

// Target is a destination snapshot along with the rule used to compare it.
type Target struct {
	// Name identifies the destination in mismatches.
	Name string

	Snapshot *objval.Snapshot
	Rule     Rule
}

// Compare checks each target against the source in order, stopping at the first mismatch. It performs no I/O.
//
// The source carries lineage keys for every location it's been replicated to, 'locations' should name each
// replication location of the source bucket (including those which aren't being verified) so their keys are ignored
// when comparing user metadata. The locations of the targets are always ignored.
func Compare(source *objval.Snapshot, targets []Target, locations ...string) Verdict {
	lineage := make([]string, 0, 2*(len(targets)+len(locations)))

	for _, location := range locations {
		lineage = append(lineage, LineageKeys(location)...)
	}

	for _, target := range targets {
		lineage = append(lineage, target.Rule.sourceLineageKeys()...)
	}

	for _, target := range targets {
		c := comparison{source: source, target: target, lineage: lineage}

		if mismatch := c.run(); mismatch != nil {
			return Verdict{mismatch: mismatch}
		}
	}

	return Verdict{}
}

// comparison compares a single destination against the source.
type comparison struct {
	source  *objval.Snapshot
	target  Target
	lineage []string
}

// check is a single step of a comparison, returning a mismatch or <nil>.
type check func() *Mismatch

func (c comparison) run() *Mismatch {
	checks := []check{
		c.status,
		c.lineageKeys,
		c.body,
		c.etag,
		c.size,
		c.attributes,
		c.metadata,
		c.tags,
		c.acl,
	}

	for _, fn := range checks {
		if mismatch := fn(); mismatch != nil {
			return mismatch
		}
	}

	return nil
}

func (c comparison) mismatch(field, src, dst string) *Mismatch {
	return &Mismatch{
		Destination:      c.target.Name,
		Key:              c.target.Snapshot.Key(),
		VersionID:        c.target.Snapshot.VersionID(),
		Field:            field,
		SourceValue:      src,
		DestinationValue: dst,
	}
}

// expectSource returns a mismatch where the source doesn't have the value the rule expects.
func (c comparison) expectSource(field, actual, expected string) *Mismatch {
	mismatch := c.mismatch(field, actual, "")
	mismatch.ExpectedValue = expected

	return mismatch
}

// expectDestination returns a mismatch where the destination doesn't have the value the rule expects.
func (c comparison) expectDestination(field, actual, expected string) *Mismatch {
	mismatch := c.mismatch(field, "", actual)
	mismatch.ExpectedValue = expected

	return mismatch
}

func (c comparison) status() *Mismatch {
	var (
		rule = c.target.Rule
		src  = c.source.ReplicationStatus()
		dst  = c.target.Snapshot.ReplicationStatus()
	)

	if rule.SourceStatus != objval.ReplicationStatusUnknown && src != rule.SourceStatus {
		return SourceStatusMismatch(c.target.Name, c.target.Snapshot.Key(), c.target.Snapshot.VersionID(), src,
			rule.SourceStatus)
	}

	if rule.DestinationStatus != objval.ReplicationStatusUnknown && dst != rule.DestinationStatus {
		return c.expectDestination(FieldDestinationStatus, statusValue(dst), string(rule.DestinationStatus))
	}

	return nil
}

func (c comparison) lineageKeys() *Mismatch {
	var (
		rule = c.target.Rule
		dst  = c.target.Snapshot
	)

	if rule.SameVersionID && c.source.VersionID() != dst.VersionID() {
		return c.mismatch(FieldVersionID, c.source.VersionID(), dst.VersionID())
	}

	if rule.SourceStatusKey != "" {
		value := metadataValue(c.source, rule.SourceStatusKey)
		if value != string(objval.ReplicationStatusCompleted) {
			return c.expectSource(MetadataField(rule.SourceStatusKey), value, string(objval.ReplicationStatusCompleted))
		}
	}

	if rule.LinkVersionID && rule.SourceVersionKey != "" {
		value := metadataValue(c.source, rule.SourceVersionKey)
		if value != dst.VersionID() {
			return c.mismatch(MetadataField(rule.SourceVersionKey), value, dst.VersionID())
		}
	}

	if rule.ReplicaVersionKey != "" {
		value := metadataValue(dst, rule.ReplicaVersionKey)
		if value != c.source.VersionID() {
			return c.mismatch(MetadataField(rule.ReplicaVersionKey), c.source.VersionID(), value)
		}
	}

	if rule.ReplicaStatusKey != "" {
		value := metadataValue(dst, rule.ReplicaStatusKey)
		if value != string(objval.ReplicationStatusReplica) {
			return c.expectDestination(MetadataField(rule.ReplicaStatusKey), value, string(objval.ReplicationStatusReplica))
		}
	}

	return nil
}

func (c comparison) body() *Mismatch {
	src, dst := c.source.Fingerprint(), c.target.Snapshot.Fingerprint()
	if src == dst {
		return nil
	}

	mismatch := c.mismatch(FieldBody, hex.EncodeToString(src[:]), hex.EncodeToString(dst[:]))
	mismatch.SourceBody = c.source.Body()
	mismatch.DestinationBody = c.target.Snapshot.Body()

	return mismatch
}

func (c comparison) etag() *Mismatch {
	if !c.target.Rule.ETag {
		return nil
	}

	src, dst := c.source.Attrs().ETag, c.target.Snapshot.Attrs().ETag
	if equalPtr(src, dst) {
		return nil
	}

	return c.mismatch(FieldETag, format(src), format(dst))
}

func (c comparison) size() *Mismatch {
	if !c.target.Rule.Size {
		return nil
	}

	src, dst := c.source.Attrs().Size, c.target.Snapshot.Attrs().Size
	if equalPtr(src, dst) {
		return nil
	}

	return c.mismatch(FieldSize, formatInt(src), formatInt(dst))
}

func (c comparison) attributes() *Mismatch {
	src, dst := c.source.Attrs(), c.target.Snapshot.Attrs()

	for _, attribute := range c.target.Rule.Attributes {
		if s, d := attribute.value(src), attribute.value(dst); !equalPtr(s, d) {
			return c.mismatch(string(attribute), format(s), format(d))
		}
	}

	return nil
}

func (c comparison) metadata() *Mismatch {
	if !c.target.Rule.Metadata {
		return nil
	}

	src := strip(c.source.Attrs().Metadata, c.lineage...)
	dst := strip(c.target.Snapshot.Attrs().Metadata,
		append(slices.Clone(c.lineage), c.target.Rule.ReplicaVersionKey, c.target.Rule.ReplicaStatusKey)...)

	keys := make([]string, 0, len(src)+len(dst))

	for key := range src {
		keys = append(keys, key)
	}

	for key := range dst {
		if _, ok := src[key]; !ok {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	for _, key := range keys {
		s, sok := src[key]
		d, dok := dst[key]

		if sok != dok || s != d {
			return c.mismatch(MetadataField(key), valueOrAbsent(s, sok), valueOrAbsent(d, dok))
		}
	}

	return nil
}

func (c comparison) tags() *Mismatch {
	src, dst := c.source.Tags(), c.target.Snapshot.Tags()
	if !c.target.Rule.Tags || src == nil || dst == nil || src.Equal(dst) {
		return nil
	}

	return c.mismatch(FieldTags, src.String(), dst.String())
}

func (c comparison) acl() *Mismatch {
	src, dst := c.source.ACL(), c.target.Snapshot.ACL()
	if src == nil || dst == nil {
		return nil
	}

	switch c.target.Rule.ACL {
	case ACLFull:
		if !src.Equal(dst) {
			return c.mismatch(FieldACL, formatACL(src), formatACL(dst))
		}
	case ACLFirstPermission:
		if src.FirstPermission() != dst.FirstPermission() {
			return c.mismatch(FieldACL, src.FirstPermission(), dst.FirstPermission())
		}
	case ACLSkip:
	}

	return nil
}

// metadataValue returns the value of the given metadata key, or a placeholder when absent.
func metadataValue(snapshot *objval.Snapshot, key string) string {
	value, ok := snapshot.Metadata(key)
	return valueOrAbsent(value, ok)
}

// strip returns a copy of the metadata without the given keys.
func strip(metadata map[string]string, keys ...string) map[string]string {
	stripped := maps.Clone(metadata)
	if stripped == nil {
		stripped = make(map[string]string)
	}

	for _, key := range keys {
		delete(stripped, key)
	}

	return stripped
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

func format(s *string) string {
	if s == nil {
		return absent
	}

	return *s
}

func formatInt(n *int64) string {
	if n == nil {
		return absent
	}

	return strconv.FormatInt(*n, 10)
}

// statusValue returns the status as reported in mismatches, a placeholder when unknown.
func statusValue(status objval.ReplicationStatus) string {
	return valueOrAbsent(string(status), status != objval.ReplicationStatusUnknown)
}

func valueOrAbsent(value string, ok bool) string {
	if !ok {
		return absent
	}

	return value
}

func formatACL(acl objval.ACL) string {
	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, grant := range acl {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString(grant.Grantee + ":" + grant.Permission)
	}

	buf.WriteByte(']')

	return buf.String()
}
