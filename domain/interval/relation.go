package interval

//go:generate go tool stringer -type=Relation

// Relation classifies where one interval sits relative to another.
type Relation int

// Relation values, read as "the receiver is ... the argument".
const (
	// DisjointLeft: receiver ends before the argument starts, with a gap.
	DisjointLeft Relation = iota
	// AdjacentLeft: receiver ends exactly where the argument starts.
	AdjacentLeft
	// OverlapsLeftEdge: receiver starts first and ends inside the argument.
	OverlapsLeftEdge
	// Equal: same start and end.
	Equal
	// Within: receiver lies inside the argument.
	Within
	// Encloses: receiver covers the argument entirely.
	Encloses
	// OverlapsRightEdge: receiver starts inside the argument and ends after it.
	OverlapsRightEdge
	// AdjacentRight: receiver starts exactly where the argument ends.
	AdjacentRight
	// DisjointRight: receiver starts after the argument ends, with a gap.
	DisjointRight
)

// Relate classifies i against o. Every pair of non-zero intervals maps to
// exactly one Relation.
func (i Interval) Relate(o Interval) Relation {
	switch {
	case i.End() < o.start:
		return DisjointLeft
	case i.End() == o.start:
		return AdjacentLeft
	case i.start > o.End():
		return DisjointRight
	case i.start == o.End():
		return AdjacentRight
	case i.start == o.start && i.End() == o.End():
		return Equal
	case o.start <= i.start && i.End() <= o.End():
		return Within
	case i.start <= o.start && o.End() <= i.End():
		return Encloses
	case i.start < o.start:
		return OverlapsLeftEdge
	default:
		return OverlapsRightEdge
	}
}

// Touches reports whether the relation means the two intervals share a value
// or meet end-to-start, i.e. they can be merged into one interval.
func (r Relation) Touches() bool {
	return r != DisjointLeft && r != DisjointRight
}
