package service

import (
	"context"
	"strings"
	"testing"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/infrastructure/almanacfile"
	"github.com/helixml/rangemap/infrastructure/persistence"
	"github.com/helixml/rangemap/internal/log"
	"github.com/helixml/rangemap/internal/testalmanac"
	"github.com/helixml/rangemap/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, text string) almanac.Almanac {
	t.Helper()
	a, err := almanacfile.ParseText(strings.NewReader(text))
	require.NoError(t, err)
	return a
}

func TestSolver_Solve_Example(t *testing.T) {
	ctx := context.Background()
	solver := NewSolver(nil, log.Discard())
	a := testalmanac.Example(t)

	point, err := solver.Solve(ctx, a, almanac.ModePoint)
	require.NoError(t, err)
	assert.Equal(t, uint64(testalmanac.LowestPoint), point.Lowest())
	assert.Equal(t, 4, point.Solution().SeedCount())
	assert.Equal(t, 7, point.Solution().StageCount())
	assert.False(t, point.Cached())

	ranged, err := solver.Solve(ctx, a, almanac.ModeRange)
	require.NoError(t, err)
	assert.Equal(t, uint64(testalmanac.LowestRange), ranged.Lowest())
	assert.Equal(t, 2, ranged.Solution().SeedCount())
}

func TestSolver_Solve_CachesInStore(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewSolutionStore(testdb.New(t))
	solver := NewSolver(store, log.Discard())
	a := testalmanac.Example(t)

	first, err := solver.Solve(ctx, a, almanac.ModeRange)
	require.NoError(t, err)
	assert.False(t, first.Cached())
	assert.NotZero(t, first.Solution().ID())

	second, err := solver.Solve(ctx, a, almanac.ModeRange)
	require.NoError(t, err)
	assert.True(t, second.Cached())
	assert.Equal(t, first.Solution().ID(), second.Solution().ID())
	assert.Equal(t, uint64(testalmanac.LowestRange), second.Lowest())

	// A different mode is a different answer.
	point, err := solver.Solve(ctx, a, almanac.ModePoint)
	require.NoError(t, err)
	assert.False(t, point.Cached())

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSolver_Solve_InvalidInput(t *testing.T) {
	ctx := context.Background()
	solver := NewSolver(nil, log.Discard())

	_, err := solver.Solve(ctx, parse(t, "seeds: 1 2 3\n"), almanac.ModeRange)
	assert.ErrorIs(t, err, almanac.ErrOddSeedCount)

	_, err = solver.Solve(ctx, parse(t, "seeds:\n"), almanac.ModePoint)
	assert.ErrorIs(t, err, almanac.ErrNoSeeds)

	_, err = solver.Solve(ctx, parse(t, "seeds: 5 0\n"), almanac.ModeRange)
	assert.ErrorIs(t, err, almanac.ErrInvalidSeed)
}

func TestSolver_Solve_OverlappingSeedRanges(t *testing.T) {
	ctx := context.Background()
	// The second and third ranges overlap the first.
	a := parse(t, strings.Replace(testalmanac.Text, "seeds: 79 14 55 13", "seeds: 79 14 55 13 80 20 50 10", 1))

	for _, workers := range []int{1, 4} {
		solver := NewSolver(nil, log.Discard(), WithWorkers(workers))

		got, err := solver.Solve(ctx, a, almanac.ModeRange)
		require.NoError(t, err)
		want, err := solver.Verify(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, want, got.Lowest(), "workers=%d", workers)
	}
}

func TestSolver_Solve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSolver(nil, log.Discard()).Solve(ctx, testalmanac.Example(t), almanac.ModeRange)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_Verify(t *testing.T) {
	ctx := context.Background()
	a := testalmanac.Example(t)

	got, err := NewSolver(nil, log.Discard(), WithWorkers(2)).Verify(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(testalmanac.LowestRange), got)

	_, err = NewSolver(nil, log.Discard(), WithEnumerateBudget(26)).Verify(ctx, a)
	assert.ErrorIs(t, err, ErrEnumerationBudget)

	_, err = NewSolver(nil, log.Discard(), WithEnumerateBudget(27)).Verify(ctx, a)
	assert.NoError(t, err)
}

func TestSolver_Trace(t *testing.T) {
	steps := NewSolver(nil, log.Discard()).Trace(testalmanac.Example(t), 79)

	require.Len(t, steps, 7)
	assert.Equal(t, Step{Stage: "seed-to-soil", Input: 79, Output: 81}, steps[0])
	assert.Equal(t, Step{Stage: "water-to-light", Input: 81, Output: 74}, steps[3])
	assert.Equal(t, Step{Stage: "humidity-to-location", Input: 78, Output: 82}, steps[6])
}
