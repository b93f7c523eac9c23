// Package almanac holds a parsed puzzle input: the seeds and the pipeline of
// stages they are resolved through.
package almanac

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/helixml/rangemap/domain/interval"
	"github.com/helixml/rangemap/domain/remap"
)

// Errors returned when reading seeds.
var (
	ErrNoSeeds      = errors.New("almanac: no seeds")
	ErrOddSeedCount = errors.New("almanac: range mode needs seed pairs")
	ErrInvalidSeed  = errors.New("almanac: invalid seed range")
	ErrUnknownMode  = errors.New("almanac: unknown mode")
)

// Almanac is an immutable parsed input.
type Almanac struct {
	seeds    []uint64
	pipeline remap.Pipeline
}

// New creates an Almanac.
func New(seeds []uint64, pipeline remap.Pipeline) Almanac {
	return Almanac{
		seeds:    slices.Clone(seeds),
		pipeline: pipeline,
	}
}

// Seeds returns the raw seed numbers as listed.
func (a Almanac) Seeds() []uint64 { return slices.Clone(a.seeds) }

// Pipeline returns the stage chain.
func (a Almanac) Pipeline() remap.Pipeline { return a.pipeline }

// SeedRanges reads the seed list as (start, count) pairs.
func (a Almanac) SeedRanges() ([]interval.Interval, error) {
	if len(a.seeds)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d numbers", ErrOddSeedCount, len(a.seeds))
	}
	out := make([]interval.Interval, 0, len(a.seeds)/2)
	for i := 0; i < len(a.seeds); i += 2 {
		r, err := interval.New(a.seeds[i], a.seeds[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: pair %d: %w", ErrInvalidSeed, i/2, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Validate checks that the almanac can be solved in the given mode.
func (a Almanac) Validate(mode Mode) error {
	if len(a.seeds) == 0 {
		return ErrNoSeeds
	}
	if mode == ModeRange {
		if _, err := a.SeedRanges(); err != nil {
			return err
		}
	}
	return nil
}

// Checksum returns a stable hex digest of the seeds and the stage tables.
// Entry order inside a stage does not affect the result.
func (a Almanac) Checksum() string {
	h := sha256.New()
	buf := make([]byte, 0, 64)

	buf = append(buf, "seeds"...)
	for _, s := range a.seeds {
		buf = append(buf, ' ')
		buf = strconv.AppendUint(buf, s, 10)
	}
	buf = append(buf, '\n')
	_, _ = h.Write(buf)

	for _, stage := range a.pipeline.Stages() {
		buf = append(buf[:0], stage.Name()...)
		buf = append(buf, '\n')
		for _, e := range stage.Entries() {
			buf = strconv.AppendUint(buf, e.Destination().Start(), 10)
			buf = append(buf, ' ')
			buf = strconv.AppendUint(buf, e.Source().Start(), 10)
			buf = append(buf, ' ')
			buf = strconv.AppendUint(buf, e.Source().Count(), 10)
			buf = append(buf, '\n')
		}
		_, _ = h.Write(buf)
	}
	return hex.EncodeToString(h.Sum(nil))
}
