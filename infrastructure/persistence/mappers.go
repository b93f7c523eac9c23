package persistence

import (
	"time"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/domain/solution"
)

// SolutionMapper maps between solution.Solution and SolutionModel.
type SolutionMapper struct{}

// ToDomain converts a SolutionModel to a domain Solution.
func (SolutionMapper) ToDomain(m SolutionModel) solution.Solution {
	return solution.ReconstructSolution(
		m.ID,
		m.Checksum,
		almanac.Mode(m.Mode),
		uint64(m.Lowest),
		m.SeedCount,
		m.StageCount,
		time.Duration(m.DurationNS),
		m.CreatedAt,
	)
}

// ToModel converts a domain Solution to a SolutionModel.
func (SolutionMapper) ToModel(s solution.Solution) SolutionModel {
	return SolutionModel{
		ID:         s.ID(),
		Checksum:   s.Checksum(),
		Mode:       string(s.Mode()),
		Lowest:     int64(s.Lowest()),
		SeedCount:  s.SeedCount(),
		StageCount: s.StageCount(),
		DurationNS: int64(s.Duration()),
		CreatedAt:  s.CreatedAt(),
	}
}
