// Package remap provides piecewise-linear remapping tables and the pipeline
// that chains them.
package remap

import (
	"fmt"

	"github.com/helixml/rangemap/domain/interval"
)

// MapEntry shifts every value of one source interval by a constant offset.
// Immutable value object.
type MapEntry struct {
	source interval.Interval
	dest   uint64
}

// NewMapEntry creates an entry mapping [sourceStart, sourceStart+count) onto
// [destStart, destStart+count).
func NewMapEntry(sourceStart, destStart, count uint64) (MapEntry, error) {
	source, err := interval.New(sourceStart, count)
	if err != nil {
		return MapEntry{}, fmt.Errorf("map entry source: %w", err)
	}
	if _, err := interval.New(destStart, count); err != nil {
		return MapEntry{}, fmt.Errorf("map entry destination: %w", err)
	}
	return MapEntry{source: source, dest: destStart}, nil
}

// MustMapEntry is like NewMapEntry but panics on invalid input.
func MustMapEntry(sourceStart, destStart, count uint64) MapEntry {
	e, err := NewMapEntry(sourceStart, destStart, count)
	if err != nil {
		panic(err)
	}
	return e
}

// Source returns the interval of values this entry remaps.
func (e MapEntry) Source() interval.Interval { return e.source }

// Destination returns the interval the source is mapped onto.
func (e MapEntry) Destination() interval.Interval {
	return interval.MustNew(e.dest, e.source.Count())
}

// Apply maps v, which must lie inside Source.
func (e MapEntry) Apply(v uint64) uint64 {
	return e.dest + (v - e.source.Start())
}

// mapPiece maps a sub-interval of Source onto the destination.
func (e MapEntry) mapPiece(piece interval.Interval) interval.Interval {
	start := e.Apply(piece.Start())
	return interval.MustNew(start, piece.Count())
}

// String renders the entry as source->destination.
func (e MapEntry) String() string {
	return fmt.Sprintf("%s->%s", e.source, e.Destination())
}
