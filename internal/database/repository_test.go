package database

import (
	"context"
	"testing"

	"github.com/helixml/rangemap/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   int64
	name string
	rank int
}

type itemModel struct {
	ID   int64 `gorm:"primaryKey;autoIncrement"`
	Name string
	Rank int
}

func (itemModel) TableName() string { return "items" }

type itemMapper struct{}

func (itemMapper) ToDomain(e itemModel) item { return item{id: e.ID, name: e.Name, rank: e.Rank} }
func (itemMapper) ToModel(d item) itemModel  { return itemModel{ID: d.id, Name: d.name, Rank: d.rank} }

func newItemRepository(t *testing.T) Repository[item, itemModel] {
	t.Helper()
	db, _ := openFile(t)
	require.NoError(t, db.Session(context.Background()).AutoMigrate(&itemModel{}))
	return NewRepository[item, itemModel](db, itemMapper{}, "item")
}

func TestRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newItemRepository(t)

	for i, name := range []string{"a", "b", "c"} {
		saved, err := repo.Save(ctx, item{name: name, rank: i})
		require.NoError(t, err)
		assert.NotZero(t, saved.id)
	}

	all, err := repo.Find(ctx, store.WithOrderDesc("rank"))
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].name)

	page, err := repo.Find(ctx, store.WithOrderAsc("rank"), store.WithLimit(1), store.WithOffset(1))
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].name)

	n, err := repo.Count(ctx, store.WithCondition("name", "a"), store.WithLimit(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRepository_SaveUpdates(t *testing.T) {
	ctx := context.Background()
	repo := newItemRepository(t)

	saved, err := repo.Save(ctx, item{name: "a"})
	require.NoError(t, err)
	saved.name = "renamed"
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	got, err := repo.FindOne(ctx, store.WithID(saved.id))
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.name)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRepository_FindOne_NotFound(t *testing.T) {
	repo := newItemRepository(t)

	_, err := repo.FindOne(context.Background(), store.WithID(42))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newItemRepository(t)

	saved, err := repo.Save(ctx, item{name: "a"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved))
	assert.ErrorIs(t, repo.Delete(ctx, saved), ErrNotFound)
}

func TestRepository_DeleteBy(t *testing.T) {
	ctx := context.Background()
	repo := newItemRepository(t)

	for _, name := range []string{"a", "a", "b"} {
		_, err := repo.Save(ctx, item{name: name})
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteBy(ctx, store.WithCondition("name", "a")))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
