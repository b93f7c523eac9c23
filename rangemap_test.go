package rangemap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/helixml/rangemap"
	"github.com/helixml/rangemap/application/service"
	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/internal/log"
	"github.com/helixml/rangemap/internal/testalmanac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresDatabaseChoice(t *testing.T) {
	_, err := rangemap.New()
	assert.ErrorIs(t, err, rangemap.ErrNoDatabase)
}

func TestNew_WithoutPersistence(t *testing.T) {
	ctx := context.Background()
	client, err := rangemap.New(rangemap.WithoutPersistence(), rangemap.WithLogger(log.Discard()))
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	assert.False(t, client.Persistent())

	result, err := client.Solver.Solve(ctx, testalmanac.Example(t), almanac.ModeRange)
	require.NoError(t, err)
	assert.Equal(t, uint64(testalmanac.LowestRange), result.Lowest())

	_, err = client.Solutions.List(ctx, 10)
	assert.ErrorIs(t, err, service.ErrPersistenceDisabled)
}

func TestNew_WithSQLiteInDataDir(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")

	client, err := rangemap.New(
		rangemap.WithDataDir(dir),
		rangemap.WithSQLite(""),
		rangemap.WithWorkerCount(2),
		rangemap.WithLogger(log.Discard()),
	)
	require.NoError(t, err)

	assert.True(t, client.Persistent())
	_, err = client.Solver.Solve(ctx, testalmanac.Example(t), almanac.ModePoint)
	require.NoError(t, err)

	stored, err := client.Solutions.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, uint64(testalmanac.LowestPoint), stored[0].Lowest())

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), rangemap.ErrClientClosed)

	_, err = os.Stat(filepath.Join(dir, "rangemap.db"))
	assert.NoError(t, err)
}

func TestNew_WithDatabaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solutions.db")

	client, err := rangemap.New(rangemap.WithDatabaseURL("sqlite:///"+path), rangemap.WithLogger(log.Discard()))
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNew_UnsupportedDatabaseURL(t *testing.T) {
	_, err := rangemap.New(rangemap.WithDatabaseURL("mysql://localhost/db"), rangemap.WithLogger(log.Discard()))
	assert.Error(t, err)
}
