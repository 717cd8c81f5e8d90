package set

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Set is an unordered collection of distinct values. It is not safe for
// concurrent use.
type Set[T comparable] struct {
	m map[T]struct{}
}

func New[T comparable](values ...T) *Set[T] {
	s := &Set[T]{m: make(map[T]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s *Set[T]) Add(v T) {
	s.m[v] = struct{}{}
}

func (s *Set[T]) Has(v T) bool {
	_, ok := s.m[v]
	return ok
}

func (s *Set[T]) Delete(v T) {
	delete(s.m, v)
}

func (s *Set[T]) Len() int {
	return len(s.m)
}

func (s *Set[T]) Clear() {
	clear(s.m)
}

// All iterates the values in no particular order.
func (s *Set[T]) All() iter.Seq[T] {
	return maps.Keys(s.m)
}

// Values returns the values in no particular order.
func (s *Set[T]) Values() []T {
	return slices.Collect(s.All())
}

// Sorted returns the values of s in ascending order, keeping only those
// accepted by keep. A nil keep accepts everything.
func Sorted[T cmp.Ordered](s *Set[T], keep func(T) bool) []T {
	out := make([]T, 0, s.Len())
	for v := range s.m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}
