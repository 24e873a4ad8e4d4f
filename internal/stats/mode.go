package stats

import (
	"cmp"
	"slices"

	apperrors "bikeshare/internal/errors"
)

// ErrNoValues is returned by Mode for an empty input
var ErrNoValues = apperrors.NewEmptyResultError("no values to aggregate")

// Count pairs a value with its number of occurrences
type Count[T cmp.Ordered] struct {
	Value T
	N     int
}

// Frequencies counts each distinct value, ordered by descending count and
// then ascending value.
func Frequencies[T cmp.Ordered](values []T) []Count[T] {
	counts := make(map[T]int)
	for _, v := range values {
		counts[v]++
	}

	out := make([]Count[T], 0, len(counts))
	for v, n := range counts {
		out = append(out, Count[T]{Value: v, N: n})
	}
	slices.SortFunc(out, func(a, b Count[T]) int {
		if c := cmp.Compare(b.N, a.N); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

// Mode returns the most frequent value and its count. Among tied values the
// smallest wins.
func Mode[T cmp.Ordered](values []T) (Count[T], error) {
	if len(values) == 0 {
		return Count[T]{}, ErrNoValues
	}

	counts := make(map[T]int, len(values))
	best := Count[T]{Value: values[0]}
	for _, v := range values {
		counts[v]++
		n := counts[v]
		if n > best.N || (n == best.N && v < best.Value) {
			best = Count[T]{Value: v, N: n}
		}
	}
	return best, nil
}
