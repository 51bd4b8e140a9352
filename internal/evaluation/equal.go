package evaluation

import (
	"cmp"
	"slices"
)

// OrderedEqual reports whether a and b hold the same elements in the same order.
func OrderedEqual[T comparable](a, b []T) bool {
	return slices.Equal(a, b)
}

// UnorderedEqual reports whether a and b hold the same multiset of elements.
// Both inputs are copied before sorting, so callers keep their order.
func UnorderedEqual[T cmp.Ordered](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	aa := slices.Clone(a)
	bb := slices.Clone(b)
	slices.Sort(aa)
	slices.Sort(bb)
	return slices.Equal(aa, bb)
}
