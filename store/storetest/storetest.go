// Package storetest opens throwaway stores for tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"clinical-trials-api/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLite returns a migrated gorm store backed by a file in a temp dir.
// The store is closed when the test ends.
func NewSQLite(tb testing.TB) *store.GormStore {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "applications.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	st := store.NewGormStore(db)
	if err := st.AutoMigrate(); err != nil {
		tb.Fatalf("%v", err)
	}
	tb.Cleanup(func() {
		_ = st.Close(context.Background())
	})
	return st
}
