// Package coverage tracks which parts of a numeric domain have already been
// resolved, as a set of disjoint intervals.
package coverage

import (
	"slices"
	"sync"

	"github.com/helixml/rangemap/domain/interval"
)

// Set is a collection of pairwise disjoint, non-adjacent intervals. Any two
// members that would overlap or touch are coalesced on insertion, so the set
// is always maximally merged.
//
// Set is safe for concurrent use. Claim performs the trim-then-insert pair as
// a single update.
type Set struct {
	mu      sync.Mutex
	members []interval.Interval // sorted by start
}

// New creates a Set seeded with rs.
func New(rs ...interval.Interval) *Set {
	s := &Set{}
	for _, r := range rs {
		s.insert(r)
	}
	return s
}

// Contains reports whether a single member covers all of r.
func (s *Set) Contains(r interval.Interval) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.IsZero() {
		return false
	}
	for _, m := range s.members {
		if m.Contains(r) {
			return true
		}
	}
	return false
}

// Insert adds r, merging it with every member it overlaps or touches.
func (s *Set) Insert(r interval.Interval) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(r)
}

// Trim returns the parts of r not covered by any member, in ascending order.
func (s *Set) Trim(r interval.Interval) []interval.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return trim(r, s.members)
}

// Claim returns the parts of r not yet covered and marks all of r as covered.
func (s *Set) Claim(r interval.Interval) []interval.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()

	pieces := trim(r, s.members)
	for _, p := range pieces {
		s.insert(p)
	}
	return pieces
}

// Members returns the members in ascending order.
func (s *Set) Members() []interval.Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.members)
}

// Len returns the number of members.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

// Total returns how many values the set covers.
func (s *Set) Total() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return interval.Total(s.members)
}

// insert absorbs members into r until r touches none of them, then places r
// at its sorted position. A range bridging two members absorbs both.
func (s *Set) insert(r interval.Interval) {
	if r.IsZero() {
		return
	}
	for {
		i, covered := s.absorbOne(r)
		if covered {
			return
		}
		if i < 0 {
			break
		}
		r = r.Hull(s.members[i])
		s.members = slices.Delete(s.members, i, i+1)
	}

	at, _ := slices.BinarySearchFunc(s.members, r, func(m, target interval.Interval) int {
		switch {
		case m.Start() < target.Start():
			return -1
		case m.Start() > target.Start():
			return 1
		default:
			return 0
		}
	})
	s.members = slices.Insert(s.members, at, r)
}

// absorbOne finds the first member r can merge with. covered is true when r
// already lies inside a member; idx is -1 when r touches no member.
func (s *Set) absorbOne(r interval.Interval) (idx int, covered bool) {
	for i, m := range s.members {
		switch r.Relate(m) {
		case interval.DisjointLeft, interval.DisjointRight:
			continue
		case interval.Equal, interval.Within:
			return i, true
		case interval.AdjacentLeft, interval.OverlapsLeftEdge, interval.Encloses,
			interval.OverlapsRightEdge, interval.AdjacentRight:
			return i, false
		}
	}
	return -1, false
}

// trim subtracts members from r. A member strictly inside r splits it, and
// each side is trimmed against the members that follow.
func trim(r interval.Interval, members []interval.Interval) []interval.Interval {
	if r.IsZero() {
		return nil
	}
	for i, m := range members {
		switch r.Relate(m) {
		case interval.DisjointLeft, interval.AdjacentLeft,
			interval.AdjacentRight, interval.DisjointRight:
			continue
		case interval.Equal, interval.Within:
			return nil
		case interval.OverlapsLeftEdge:
			r, _ = r.Sub(r.Start(), m.Start())
		case interval.OverlapsRightEdge:
			r, _ = r.Sub(m.End(), r.End())
		case interval.Encloses:
			rest := members[i+1:]
			var out []interval.Interval
			if left, ok := r.Sub(r.Start(), m.Start()); ok {
				out = append(out, trim(left, rest)...)
			}
			if right, ok := r.Sub(m.End(), r.End()); ok {
				out = append(out, trim(right, rest)...)
			}
			return out
		}
	}
	return []interval.Interval{r}
}
