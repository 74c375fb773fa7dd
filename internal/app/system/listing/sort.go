// Package listing holds the filter and sort transforms applied to
// already-fetched collections. Every function returns a new slice and
// leaves its input untouched.
package listing

import (
	"cmp"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc"; anything else yields def.
func ParseDirection(s string, def Direction) Direction {
	switch Direction(s) {
	case Asc, Desc:
		return Direction(s)
	default:
		return def
	}
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// SortState is the criteria and direction a list is sorted by.
type SortState struct {
	Criteria  string    `json:"criteria"`
	Direction Direction `json:"direction"`
}

// Select applies a click on a column: the same criteria flips direction,
// a different one starts over in descending order.
func (s SortState) Select(criteria string) SortState {
	if criteria == s.Criteria {
		return SortState{Criteria: criteria, Direction: s.Direction.Flip()}
	}
	return SortState{Criteria: criteria, Direction: Desc}
}

// Compare orders two items: negative when a sorts before b in ascending order.
type Compare[T any] func(a, b T) int

// SortStable returns a sorted copy of items. Ties keep their relative
// order in both directions.
func SortStable[T any](items []T, dir Direction, compare Compare[T]) []T {
	out := make([]T, len(items))
	copy(out, items)
	if compare == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(out[i], out[j])
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Comparators maps sort criteria to comparator factories. Sort calls the
// factory once per sort, so a comparator may hold per-sort state such as a
// collator.
type Comparators[T any] map[string]func() Compare[T]

// Sort sorts items by the comparator registered for state.Criteria.
// Unknown criteria leave the order unchanged.
func Sort[T any](items []T, state SortState, comparators Comparators[T]) []T {
	var compare Compare[T]
	if newCompare := comparators[state.Criteria]; newCompare != nil {
		compare = newCompare()
	}
	return SortStable(items, state.Direction, compare)
}

// Filter returns the items for which keep reports true.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// NameComparator returns a function ordering strings the way an
// English-locale collator does: case-aware but not plain byte order. The
// collator keeps internal buffers, so the function must not be shared
// between goroutines.
func NameComparator() func(a, b string) int {
	return collate.New(language.English).CompareString
}

// byName compares items by a string key under one collator per sort.
func byName[T any](key func(T) string) func() Compare[T] {
	return func() Compare[T] {
		names := NameComparator()
		return func(a, b T) int { return names(key(a), key(b)) }
	}
}

// fixed registers a comparator that needs no per-sort state.
func fixed[T any](compare Compare[T]) func() Compare[T] {
	return func() Compare[T] { return compare }
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func compareNumber[N cmp.Ordered](a, b N) int { return cmp.Compare(a, b) }
