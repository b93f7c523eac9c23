package service

import (
	"context"
	"testing"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/infrastructure/persistence"
	"github.com/helixml/rangemap/internal/database"
	"github.com/helixml/rangemap/internal/log"
	"github.com/helixml/rangemap/internal/testalmanac"
	"github.com/helixml/rangemap/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolutions_ListGetDelete(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewSolutionStore(testdb.New(t))
	solver := NewSolver(store, log.Discard())
	svc := NewSolutions(store)

	a := testalmanac.Example(t)
	point, err := solver.Solve(ctx, a, almanac.ModePoint)
	require.NoError(t, err)
	ranged, err := solver.Solve(ctx, a, almanac.ModeRange)
	require.NoError(t, err)

	all, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ranged.Solution().ID(), all[0].ID())

	one, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	got, err := svc.Get(ctx, point.Solution().ID())
	require.NoError(t, err)
	assert.Equal(t, uint64(testalmanac.LowestPoint), got.Lowest())

	require.NoError(t, svc.Delete(ctx, point.Solution().ID()))
	_, err = svc.Get(ctx, point.Solution().ID())
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, point.Solution().ID()), database.ErrNotFound)
}

func TestSolutions_Forget(t *testing.T) {
	ctx := context.Background()
	store := persistence.NewSolutionStore(testdb.New(t))
	solver := NewSolver(store, log.Discard())
	svc := NewSolutions(store)

	a := testalmanac.Example(t)
	_, err := solver.Solve(ctx, a, almanac.ModePoint)
	require.NoError(t, err)
	_, err = solver.Solve(ctx, a, almanac.ModeRange)
	require.NoError(t, err)

	other := almanac.New([]uint64{1, 2}, a.Pipeline())
	kept, err := solver.Solve(ctx, other, almanac.ModePoint)
	require.NoError(t, err)

	require.NoError(t, svc.Forget(ctx, a.Checksum()))

	all, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.Solution().ID(), all[0].ID())

	assert.NoError(t, svc.Forget(ctx, a.Checksum()))
	assert.Error(t, svc.Forget(ctx, ""))
}

func TestSolutions_Disabled(t *testing.T) {
	ctx := context.Background()
	svc := NewSolutions(nil)

	_, err := svc.List(ctx, 10)
	assert.ErrorIs(t, err, ErrPersistenceDisabled)
	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrPersistenceDisabled)
	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrPersistenceDisabled)
	assert.ErrorIs(t, svc.Forget(ctx, "abc"), ErrPersistenceDisabled)
}
