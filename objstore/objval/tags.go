package objval

import (
	"slices"
	"strings"
)

// Tag is a single key/value tag attached to an object.
type Tag struct {
	Key   string
	Value string
}

// TagSet is a set of tags, ordering is not significant.
type TagSet []Tag

// Equal returns a boolean indicating whether both tag sets contain the same tags, ignoring order.
func (t TagSet) Equal(other TagSet) bool {
	if len(t) != len(other) {
		return false
	}

	return slices.Equal(t.sorted(), other.sorted())
}

// Map returns the tag set as a map.
func (t TagSet) Map() map[string]string {
	m := make(map[string]string, len(t))

	for _, tag := range t {
		m[tag.Key] = tag.Value
	}

	return m
}

// String returns a stable string representation of the tag set.
func (t TagSet) String() string {
	pairs := make([]string, 0, len(t))

	for _, tag := range t.sorted() {
		pairs = append(pairs, tag.Key+"="+tag.Value)
	}

	return "{" + strings.Join(pairs, ",") + "}"
}

func (t TagSet) sorted() TagSet {
	sorted := slices.Clone(t)

	slices.SortFunc(sorted, func(a, b Tag) int {
		if c := strings.Compare(a.Key, b.Key); c != 0 {
			return c
		}

		return strings.Compare(a.Value, b.Value)
	})

	return sorted
}

// TagSetFromMap builds a tag set from a map.
func TagSetFromMap(m map[string]string) TagSet {
	tags := make(TagSet, 0, len(m))

	for key, value := range m {
		tags = append(tags, Tag{Key: key, Value: value})
	}

	return tags.sorted()
}

// Grant is a single ACL entry.
type Grant struct {
	Grantee    string
	Permission string
}

// ACL is an ordered list of grants.
type ACL []Grant

// Equal returns a boolean indicating whether both ACLs contain the same grants in the same order.
func (a ACL) Equal(other ACL) bool {
	return slices.Equal(a, other)
}

// FirstPermission returns the permission of the first grant, or an empty string if there are no grants.
func (a ACL) FirstPermission() string {
	if len(a) == 0 {
		return ""
	}

	return a[0].Permission
}
