// Package interval provides half-open ranges of non-negative integers.
package interval

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned when constructing an Interval.
var (
	ErrEmpty    = errors.New("interval: count must be positive")
	ErrOverflow = errors.New("interval: end overflows uint64")
)

// Interval is the half-open range [start, start+count). Immutable value object.
//
// The zero value has a count of zero and represents "no interval"; it is never
// returned by any operation that succeeds.
type Interval struct {
	start uint64
	count uint64
}

// New creates an Interval covering count values from start.
func New(start, count uint64) (Interval, error) {
	if count == 0 {
		return Interval{}, fmt.Errorf("%w: start=%d", ErrEmpty, start)
	}
	if count > math.MaxUint64-start {
		return Interval{}, fmt.Errorf("%w: start=%d count=%d", ErrOverflow, start, count)
	}
	return Interval{start: start, count: count}, nil
}

// FromBounds creates an Interval covering [start, end).
func FromBounds(start, end uint64) (Interval, error) {
	if end <= start {
		return Interval{}, fmt.Errorf("%w: [%d,%d)", ErrEmpty, start, end)
	}
	return Interval{start: start, count: end - start}, nil
}

// MustNew is like New but panics on invalid input. Intended for literals in
// tests and fixed tables.
func MustNew(start, count uint64) Interval {
	i, err := New(start, count)
	if err != nil {
		panic(err)
	}
	return i
}

// Start returns the first value in the interval.
func (i Interval) Start() uint64 { return i.start }

// Count returns the number of values in the interval.
func (i Interval) Count() uint64 { return i.count }

// End returns the exclusive upper bound.
func (i Interval) End() uint64 { return i.start + i.count }

// IsZero reports whether i is the zero value.
func (i Interval) IsZero() bool { return i.count == 0 }

// ContainsValue reports whether v lies inside the interval.
func (i Interval) ContainsValue(v uint64) bool {
	return i.start <= v && v < i.End()
}

// Contains reports whether o lies entirely inside i.
func (i Interval) Contains(o Interval) bool {
	return i.start <= o.start && o.End() <= i.End()
}

// Overlaps reports whether i and o share at least one value.
func (i Interval) Overlaps(o Interval) bool {
	return i.start < o.End() && o.start < i.End()
}

// Adjacent reports whether one interval ends exactly where the other starts.
func (i Interval) Adjacent(o Interval) bool {
	return i.End() == o.start || o.End() == i.start
}

// Intersect returns the values shared by i and o. The boolean is false when
// they do not overlap.
func (i Interval) Intersect(o Interval) (Interval, bool) {
	return i.Sub(o.start, o.End())
}

// Sub returns the part of i that falls inside [from, to). The boolean is false
// when that part is empty.
func (i Interval) Sub(from, to uint64) (Interval, bool) {
	r, err := FromBounds(max(i.start, from), min(i.End(), to))
	if err != nil {
		return Interval{}, false
	}
	return r, true
}

// Hull returns the smallest interval covering both i and o.
func (i Interval) Hull(o Interval) Interval {
	lo := min(i.start, o.start)
	hi := max(i.End(), o.End())
	return Interval{start: lo, count: hi - lo}
}

// String renders the interval as [start,end).
func (i Interval) String() string {
	return fmt.Sprintf("[%d,%d)", i.start, i.End())
}

// Total sums the counts of the given intervals.
func Total(rs []Interval) uint64 {
	var n uint64
	for _, r := range rs {
		n += r.count
	}
	return n
}
