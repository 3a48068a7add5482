package services

import (
	"context"
	"database/sql"
	"ravvio_server/config"
	"ravvio_server/database"
	"ravvio_server/storage"
	"ravvio_server/structs"
	"ravvio_server/structs/tables"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// Foreign keys are switched on so the cascade behavior matches Postgres.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := &database.DB{DB: bun.NewDB(sqldb, sqlitedialect.New())}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := database.CreateSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestStore(t *testing.T) storage.ObjectStore {
	t.Helper()

	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create disk store: %v", err)
	}
	return store
}

func newTestServices(t *testing.T) (*ServiceManager, *database.DB, storage.ObjectStore) {
	t.Helper()

	db := setupTestDB(t)
	store := setupTestStore(t)
	logger := gecho.NewDefaultLogger()
	cfg := config.GetConfig()

	return NewServiceManager(logger, cfg, db, store), db, store
}

func createTestCategory(t *testing.T, sm *ServiceManager, name string) *tables.Category {
	t.Helper()

	category, err := sm.CategoryService.Create(context.Background(), &structs.CategoryWriteRequest{Name: &name})
	if err != nil {
		t.Fatalf("failed to create category %q: %v", name, err)
	}
	return category
}
