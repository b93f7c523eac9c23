package remap

import (
	"errors"
	"slices"

	"github.com/helixml/rangemap/domain/interval"
)

// ErrNoInput is returned when a minimum is requested over no values.
var ErrNoInput = errors.New("remap: no input values")

// Pipeline is an ordered chain of stages. Read-only after construction and
// safe for concurrent use.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a Pipeline that applies stages in the given order.
func NewPipeline(stages ...Stage) Pipeline {
	return Pipeline{stages: slices.Clone(stages)}
}

// Stages returns the stages in order.
func (p Pipeline) Stages() []Stage { return slices.Clone(p.stages) }

// Len returns the number of stages.
func (p Pipeline) Len() int { return len(p.stages) }

// MapValue threads v through every stage.
func (p Pipeline) MapValue(v uint64) uint64 {
	for _, s := range p.stages {
		v = s.Lookup(v)
	}
	return v
}

// Trace returns the value observed after each stage.
func (p Pipeline) Trace(v uint64) []uint64 {
	out := make([]uint64, len(p.stages))
	for i, s := range p.stages {
		v = s.Lookup(v)
		out[i] = v
	}
	return out
}

// MapRanges threads a set of ranges through every stage. At each stage all
// pieces are pooled before moving on; no per-range isolation is kept.
func (p Pipeline) MapRanges(rs []interval.Interval) []interval.Interval {
	current := slices.Clone(rs)
	for _, s := range p.stages {
		next := make([]interval.Interval, 0, len(current))
		for _, r := range current {
			next = append(next, s.MapRange(r)...)
		}
		current = next
	}
	return current
}

// LowestValue returns the smallest output of MapValue over vs.
func (p Pipeline) LowestValue(vs []uint64) (uint64, error) {
	if len(vs) == 0 {
		return 0, ErrNoInput
	}
	lowest := p.MapValue(vs[0])
	for _, v := range vs[1:] {
		lowest = min(lowest, p.MapValue(v))
	}
	return lowest, nil
}

// LowestInRanges returns the smallest value reachable from any value in rs.
func (p Pipeline) LowestInRanges(rs []interval.Interval) (uint64, error) {
	return LowestStart(p.MapRanges(rs))
}

// LowestStart returns the smallest start among rs.
func LowestStart(rs []interval.Interval) (uint64, error) {
	if len(rs) == 0 {
		return 0, ErrNoInput
	}
	lowest := rs[0].Start()
	for _, r := range rs[1:] {
		lowest = min(lowest, r.Start())
	}
	return lowest, nil
}
