// Package weighted implements a list of values that supports random draws proportional to the weight of each
// value.
package weighted

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
)

// List is an ordered list of values, each with a positive weight. Get draws a value with a probability
// proportional to its weight relative to the total weight of the List. The zero value is not usable, use New,
// Empty or Singleton.
type List[T any] struct {
	values     []T
	cumulative []float64
	total      float64

	frozen    bool
	singleton bool
}

// New returns a new, empty List that values may be added to.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Empty returns a frozen List that holds no values. Get never yields a value and Add is a no-op.
func Empty[T any]() *List[T] {
	return &List[T]{frozen: true}
}

// Singleton returns a frozen List that always yields v. Drawing from it does not consume randomness.
func Singleton[T any](v T) *List[T] {
	return &List[T]{values: []T{v}, cumulative: []float64{1}, total: 1, frozen: true, singleton: true}
}

// Add appends v to the List with the weight passed. Weights that are not positive finite numbers are ignored, as
// are additions to a List returned by Empty or Singleton. Add reports if v was added.
func (l *List[T]) Add(weight float64, v T) bool {
	if l.frozen || !(weight > 0) || math.IsInf(weight, 1) {
		return false
	}
	l.total += weight
	l.values = append(l.values, v)
	l.cumulative = append(l.cumulative, l.total)
	return true
}

// Get draws a random value from the List. The bool returned is false if the List holds no values, in which case
// the zero value of T is returned.
func (l *List[T]) Get(r *rand.Rand) (T, bool) {
	switch {
	case len(l.values) == 0:
		var zero T
		return zero, false
	case l.singleton || len(l.values) == 1:
		return l.values[0], true
	}
	draw := r.Float64() * l.total
	i := sort.Search(len(l.cumulative), func(i int) bool {
		return l.cumulative[i] > draw
	})
	if i == len(l.values) {
		// Only reachable through floating point rounding of the draw.
		i--
	}
	return l.values[i], true
}

// Values returns all values in the List in the order they were added.
func (l *List[T]) Values() []T {
	return append([]T(nil), l.values...)
}

// Len returns the amount of values in the List.
func (l *List[T]) Len() int {
	return len(l.values)
}

// Empty checks if the List holds no values.
func (l *List[T]) Empty() bool {
	return len(l.values) == 0
}

// Weight returns the total weight of all values in the List.
func (l *List[T]) Weight() float64 {
	return l.total
}

// String ...
func (l *List[T]) String() string {
	parts := make([]string, len(l.values))
	prev := 0.0
	for i, v := range l.values {
		parts[i] = fmt.Sprintf("%v (%.2f)", v, l.cumulative[i]-prev)
		prev = l.cumulative[i]
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
