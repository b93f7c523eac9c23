// Package solution models a computed answer for one almanac.
package solution

import (
	"time"

	"github.com/helixml/rangemap/domain/almanac"
)

// Solution records the lowest final value found for an almanac in one mode.
// The almanac itself is identified by its checksum only.
type Solution struct {
	id         int64
	checksum   string
	mode       almanac.Mode
	lowest     uint64
	seedCount  int
	stageCount int
	duration   time.Duration
	createdAt  time.Time
}

// NewSolution creates a Solution that has not been stored yet.
func NewSolution(checksum string, mode almanac.Mode, lowest uint64, seedCount, stageCount int, duration time.Duration) Solution {
	return Solution{
		checksum:   checksum,
		mode:       mode,
		lowest:     lowest,
		seedCount:  seedCount,
		stageCount: stageCount,
		duration:   duration,
		createdAt:  time.Now().UTC(),
	}
}

// ReconstructSolution recreates a Solution from persistence.
func ReconstructSolution(
	id int64,
	checksum string,
	mode almanac.Mode,
	lowest uint64,
	seedCount, stageCount int,
	duration time.Duration,
	createdAt time.Time,
) Solution {
	return Solution{
		id:         id,
		checksum:   checksum,
		mode:       mode,
		lowest:     lowest,
		seedCount:  seedCount,
		stageCount: stageCount,
		duration:   duration,
		createdAt:  createdAt,
	}
}

// ID returns the store identifier, zero before the first save.
func (s Solution) ID() int64 { return s.id }

// Checksum returns the almanac checksum.
func (s Solution) Checksum() string { return s.checksum }

// Mode returns how the seeds were read.
func (s Solution) Mode() almanac.Mode { return s.mode }

// Lowest returns the answer.
func (s Solution) Lowest() uint64 { return s.lowest }

// SeedCount returns the number of seed values (point mode) or seed ranges
// (range mode) that were resolved.
func (s Solution) SeedCount() int { return s.seedCount }

// StageCount returns the pipeline length.
func (s Solution) StageCount() int { return s.stageCount }

// Duration returns how long the computation took.
func (s Solution) Duration() time.Duration { return s.duration }

// CreatedAt returns when the solution was computed.
func (s Solution) CreatedAt() time.Time { return s.createdAt }

// WithID returns a copy with the given ID.
func (s Solution) WithID(id int64) Solution {
	s.id = id
	return s
}
