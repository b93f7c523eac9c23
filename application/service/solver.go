// Package service holds the application services behind every surface.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/domain/coverage"
	"github.com/helixml/rangemap/domain/interval"
	"github.com/helixml/rangemap/domain/remap"
	"github.com/helixml/rangemap/domain/solution"
	"github.com/helixml/rangemap/internal/database"
	"golang.org/x/sync/errgroup"
)

// Defaults for a Solver.
const (
	DefaultWorkers         = 1
	DefaultEnumerateBudget = 10_000_000
)

// contextCheckInterval is how many values Verify maps between context checks.
const contextCheckInterval = 1 << 16

// Result is the outcome of Solve.
type Result struct {
	solution solution.Solution
	cached   bool
}

// Solution returns the computed or stored solution.
func (r Result) Solution() solution.Solution { return r.solution }

// Lowest returns the answer.
func (r Result) Lowest() uint64 { return r.solution.Lowest() }

// Cached reports whether the answer came from the store.
func (r Result) Cached() bool { return r.cached }

// Step is one stage of a traced value.
type Step struct {
	Stage  string
	Input  uint64
	Output uint64
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithWorkers sets how many range shards are mapped concurrently.
func WithWorkers(n int) SolverOption {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithEnumerateBudget caps how many seeds Verify may visit.
func WithEnumerateBudget(n uint64) SolverOption {
	return func(s *Solver) {
		if n > 0 {
			s.budget = n
		}
	}
}

// Solver finds the lowest final value reachable from an almanac's seeds.
type Solver struct {
	solutions solution.Store
	logger    *slog.Logger
	workers   int
	budget    uint64
}

// NewSolver creates a Solver. A nil store disables caching and persistence.
func NewSolver(solutions solution.Store, logger *slog.Logger, opts ...SolverOption) *Solver {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Solver{
		solutions: solutions,
		logger:    logger,
		workers:   DefaultWorkers,
		budget:    DefaultEnumerateBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve returns the lowest final value for the almanac read in the given
// mode. Stored answers for the same almanac and mode are returned without
// recomputing.
func (s *Solver) Solve(ctx context.Context, a almanac.Almanac, mode almanac.Mode) (Result, error) {
	if err := a.Validate(mode); err != nil {
		return Result{}, err
	}
	checksum := a.Checksum()

	if s.solutions != nil {
		stored, err := s.solutions.FindOne(ctx, solution.WithChecksum(checksum), solution.WithMode(mode))
		switch {
		case err == nil:
			s.logger.DebugContext(ctx, "solution cache hit",
				slog.String("checksum", checksum), slog.String("mode", mode.String()))
			return Result{solution: stored, cached: true}, nil
		case !errors.Is(err, database.ErrNotFound):
			return Result{}, fmt.Errorf("lookup solution: %w", err)
		}
	}

	start := time.Now()
	var (
		lowest    uint64
		seedCount int
		err       error
	)
	switch mode {
	case almanac.ModeRange:
		var ranges []interval.Interval
		ranges, err = a.SeedRanges()
		if err != nil {
			return Result{}, err
		}
		seedCount = len(ranges)
		lowest, err = s.lowestInRanges(ctx, a.Pipeline(), ranges)
	default:
		seeds := a.Seeds()
		seedCount = len(seeds)
		lowest, err = a.Pipeline().LowestValue(seeds)
	}
	if err != nil {
		return Result{}, fmt.Errorf("solve %s: %w", mode, err)
	}
	elapsed := time.Since(start)

	sol := solution.NewSolution(checksum, mode, lowest, seedCount, a.Pipeline().Len(), elapsed)
	if s.solutions != nil {
		sol, err = s.solutions.Save(ctx, sol)
		if err != nil {
			return Result{}, fmt.Errorf("store solution: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "solved",
		slog.String("mode", mode.String()),
		slog.Uint64("lowest", lowest),
		slog.Int("seeds", seedCount),
		slog.Int("stages", a.Pipeline().Len()),
		slog.Duration("duration", elapsed),
	)
	return Result{solution: sol}, nil
}

// lowestInRanges maps each distinct part of the seed ranges once.
// Overlapping seed ranges are reduced to their unclaimed remainders before
// being mapped in parallel.
func (s *Solver) lowestInRanges(ctx context.Context, p remap.Pipeline, seeds []interval.Interval) (uint64, error) {
	shards := claimAll(seeds)
	if len(shards) == 0 {
		return 0, remap.ErrNoInput
	}

	minima := make([]uint64, len(shards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, shard := range shards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			low, err := p.LowestInRanges([]interval.Interval{shard})
			if err != nil {
				return err
			}
			minima[i] = low
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	s.logger.DebugContext(ctx, "mapped range shards",
		slog.Int("seed_ranges", len(seeds)),
		slog.Int("shards", len(shards)),
		slog.Uint64("seed_values", interval.Total(shards)),
	)
	return slices.Min(minima), nil
}

// Verify finds the range-mode answer by mapping every seed value one at a
// time. Overlapping seed ranges are only enumerated once. It refuses to
// start when the distinct seed values exceed the enumeration budget.
func (s *Solver) Verify(ctx context.Context, a almanac.Almanac) (uint64, error) {
	if err := a.Validate(almanac.ModeRange); err != nil {
		return 0, err
	}
	ranges, err := a.SeedRanges()
	if err != nil {
		return 0, err
	}

	pieces := claimAll(ranges)
	total := interval.Total(pieces)
	if total > s.budget {
		return 0, fmt.Errorf("%w: %d seeds to visit, budget %d", ErrEnumerationBudget, total, s.budget)
	}

	minima := make([]uint64, len(pieces))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, piece := range pieces {
		g.Go(func() error {
			low, err := enumerate(gctx, a.Pipeline(), piece)
			minima[i] = low
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("verify: %w", err)
	}

	lowest := slices.Min(minima)
	s.logger.InfoContext(ctx, "verified by enumeration",
		slog.Uint64("lowest", lowest),
		slog.Uint64("seed_values", total),
	)
	return lowest, nil
}

// Trace reports the value after each stage for one seed.
func (s *Solver) Trace(a almanac.Almanac, seed uint64) []Step {
	stages := a.Pipeline().Stages()
	outputs := a.Pipeline().Trace(seed)

	steps := make([]Step, len(stages))
	in := seed
	for i, stage := range stages {
		steps[i] = Step{Stage: stage.Name(), Input: in, Output: outputs[i]}
		in = outputs[i]
	}
	return steps
}

// claimAll returns the parts of rs not already claimed by an earlier range.
func claimAll(rs []interval.Interval) []interval.Interval {
	covered := coverage.New()
	var out []interval.Interval
	for _, r := range rs {
		out = append(out, covered.Claim(r)...)
	}
	return out
}

func enumerate(ctx context.Context, p remap.Pipeline, r interval.Interval) (uint64, error) {
	lowest := p.MapValue(r.Start())
	for v := r.Start() + 1; v < r.End(); v++ {
		if (v-r.Start())%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		lowest = min(lowest, p.MapValue(v))
	}
	return lowest, nil
}
