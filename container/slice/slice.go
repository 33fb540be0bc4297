// Package slice implements set operations over slices of ordered values.
// Every operation returning a set returns it sorted and without duplicates.
package slice

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Set returns the distinct elements of s in ascending order.
func Set[T constraints.Ordered](s []T) []T {
	set := make([]T, len(s))
	copy(set, s)
	slices.Sort(set)
	return slices.Compact(set)
}

// Intersection of any number of slices with time
// complexity of approximately O(n) leveraging a map to
// check for element existence off by a constant factor
// of underlying map efficiency.
func Intersection[T constraints.Ordered](s ...[]T) []T {
	if len(s) == 0 {
		return []T{}
	}
	if len(s) == 1 {
		return Set(s[0])
	}
	intersect := make([]T, 0)
	m := make(map[T]int)
	for _, k := range s[0] {
		m[k] = 1
	}
	for i, num := 1, len(s); i < num; i++ {
		for _, k := range s[i] {
			// Only count each element once per slice.
			if count, found := m[k]; found && count == i {
				m[k]++
				if m[k] == num {
					intersect = append(intersect, k)
				}
			}
		}
	}
	slices.Sort(intersect)
	return intersect
}

// Union of any number of slices.
func Union[T constraints.Ordered](s ...[]T) []T {
	set := make([]T, 0)
	for _, ss := range s {
		set = append(set, ss...)
	}
	return Set(set)
}

// Not returns the elements of a that are not in b.
func Not[T constraints.Ordered](a, b []T) []T {
	m := make(map[T]bool, len(b))
	for _, k := range b {
		m[k] = true
	}
	set := make([]T, 0)
	for _, k := range a {
		if !m[k] {
			set = append(set, k)
		}
	}
	return Set(set)
}

// IsIn returns true if a is in b and False otherwise.
func IsIn[T comparable](a T, b []T) bool {
	for _, v := range b {
		if a == v {
			return true
		}
	}
	return false
}
