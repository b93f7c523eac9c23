package solution

import (
	"testing"
	"time"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSolution(t *testing.T) {
	before := time.Now().UTC()
	s := NewSolution("abc", almanac.ModeRange, 46, 2, 7, time.Millisecond)

	assert.Zero(t, s.ID())
	assert.Equal(t, "abc", s.Checksum())
	assert.Equal(t, almanac.ModeRange, s.Mode())
	assert.Equal(t, uint64(46), s.Lowest())
	assert.Equal(t, 2, s.SeedCount())
	assert.Equal(t, 7, s.StageCount())
	assert.Equal(t, time.Millisecond, s.Duration())
	assert.False(t, s.CreatedAt().Before(before))
}

func TestReconstructSolution(t *testing.T) {
	at := time.Date(2023, 12, 5, 0, 0, 0, 0, time.UTC)
	s := ReconstructSolution(9, "abc", almanac.ModePoint, 35, 4, 7, time.Second, at)

	assert.Equal(t, int64(9), s.ID())
	assert.Equal(t, at, s.CreatedAt())

	moved := s.WithID(10)
	assert.Equal(t, int64(10), moved.ID())
	assert.Equal(t, int64(9), s.ID())
}

func TestOptions(t *testing.T) {
	q := store.Build(WithChecksum("abc"), WithMode(almanac.ModeRange), Newest())

	conds := q.Conditions()
	require.Len(t, conds, 2)
	assert.Equal(t, "checksum", conds[0].Field())
	assert.Equal(t, "range", conds[1].Value())
	require.Len(t, q.Orders(), 1)
	assert.Equal(t, "created_at", q.Orders()[0].Field())
}
