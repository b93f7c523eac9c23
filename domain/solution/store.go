package solution

import (
	"context"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/domain/store"
)

// Store persists solutions. Saving a solution whose (checksum, mode) is
// already stored replaces the previous record.
type Store interface {
	store.Store[Solution]
	DeleteBy(ctx context.Context, options ...store.Option) error
}

// WithChecksum filters by the "checksum" column.
func WithChecksum(checksum string) store.Option {
	return store.WithCondition("checksum", checksum)
}

// WithMode filters by the "mode" column.
func WithMode(mode almanac.Mode) store.Option {
	return store.WithCondition("mode", string(mode))
}

// Newest orders by creation time, most recent first.
func Newest() store.Option {
	return store.WithOrderDesc("created_at")
}
