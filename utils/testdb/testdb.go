// Package testdb hands out migrated in-memory SQLite databases to tests.
package testdb

import (
	pgconfig "LoveForTennis/config/postgres"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New returns a fresh migrated database private to the calling test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := pgconfig.OpenSQLite(dsn, false)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := pgconfig.MigrateDatabase(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
