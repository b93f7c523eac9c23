// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/helixml/rangemap/infrastructure/persistence"
	"github.com/helixml/rangemap/internal/database"
)

// New creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test finishes.
func New(t testing.TB) database.Database {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), "sqlite:///:memory:", nil)
	if err != nil {
		t.Fatalf("testdb.New: open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("testdb.New: %v", err)
	}
	return db
}
