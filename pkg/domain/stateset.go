package domain

import (
	"sort"
	"strings"
)

// StateSet is a canonical set of state identifiers: sorted and without duplicates.
// Values built with NewStateSet compare equal (Equal or reflect.DeepEqual)
// whenever they hold the same members, whatever order they were computed in.
// A StateSet must not be mutated after construction.
type StateSet []string

// NewStateSet builds the canonical form of the given states.
func NewStateSet(states ...string) StateSet {
	set := make(StateSet, 0, len(states))
	set = append(set, states...)
	sort.Strings(set)

	out := set[:0]
	for i, s := range set {
		if i > 0 && s == set[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Contains reports membership using binary search.
func (s StateSet) Contains(state string) bool {
	i := sort.SearchStrings(s, state)
	return i < len(s) && s[i] == state
}

// Intersects reports whether any member of s is also in other.
func (s StateSet) Intersects(other StateSet) bool {
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] == other[j]:
			return true
		case s[i] < other[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// Union returns the canonical union of both sets.
func (s StateSet) Union(other StateSet) StateSet {
	merged := make([]string, 0, len(s)+len(other))
	merged = append(merged, s...)
	merged = append(merged, other...)
	return NewStateSet(merged...)
}

// IsSubsetOf reports whether every member of s is in other.
func (s StateSet) IsSubsetOf(other StateSet) bool {
	for _, st := range s {
		if !other.Contains(st) {
			return false
		}
	}
	return true
}

// Equal compares members; nil and empty sets are equal.
func (s StateSet) Equal(other StateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Empty reports whether the set has no members.
func (s StateSet) Empty() bool { return len(s) == 0 }

// String renders the set as {q0, q1}.
func (s StateSet) String() string {
	return "{" + strings.Join(s, ", ") + "}"
}
