package remap

import (
	"slices"
	"sort"

	"github.com/helixml/rangemap/domain/interval"
)

// Stage is one remapping table. Values not covered by any entry pass through
// unchanged.
//
// Entries must not overlap in source space. This is assumed, not checked;
// callers loading untrusted tables validate upstream.
type Stage struct {
	name    string
	entries []MapEntry
}

// NewStage creates a Stage. Entries are sorted by source start once here so
// lookups can binary search.
func NewStage(name string, entries ...MapEntry) Stage {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b MapEntry) int {
		switch {
		case a.source.Start() < b.source.Start():
			return -1
		case a.source.Start() > b.source.Start():
			return 1
		default:
			return 0
		}
	})
	return Stage{name: name, entries: sorted}
}

// Name returns the stage label, e.g. "seed-to-soil".
func (s Stage) Name() string { return s.name }

// Entries returns the entries in source order.
func (s Stage) Entries() []MapEntry { return slices.Clone(s.entries) }

// Len returns the number of entries.
func (s Stage) Len() int { return len(s.entries) }

// Lookup maps a single value.
func (s Stage) Lookup(v uint64) uint64 {
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].source.Start() > v
	}) - 1
	if i >= 0 && s.entries[i].source.ContainsValue(v) {
		return s.entries[i].Apply(v)
	}
	return v
}

// MapRange splits r at every entry boundary inside it and maps each piece.
// Pieces are returned in ascending order of their source position; unmapped
// gaps come through unchanged. Neighbouring pieces are never merged, and the
// counts of the result always sum to r.Count().
func (s Stage) MapRange(r interval.Interval) []interval.Interval {
	if r.IsZero() {
		return nil
	}

	// First entry that ends after r starts.
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].source.End() > r.Start()
	})

	var out []interval.Interval
	cursor := r.Start()
	for ; i < len(s.entries) && s.entries[i].source.Start() < r.End(); i++ {
		e := s.entries[i]
		piece, ok := r.Intersect(e.source)
		if !ok {
			continue
		}
		if gap, ok := r.Sub(cursor, piece.Start()); ok {
			out = append(out, gap)
		}
		out = append(out, e.mapPiece(piece))
		cursor = piece.End()
	}
	if tail, ok := r.Sub(cursor, r.End()); ok {
		out = append(out, tail)
	}
	return out
}
