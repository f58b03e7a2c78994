// Package testutil provides a throwaway SQL database for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/Eursukkul/experience-booking/pkg/database"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated sqlite database in t's temp dir. The pool holds a
// single connection, so transactions run one at a time the way row locks
// would serialize them on Postgres.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	// Foreign keys stay off so tests can stage rows with dangling references.
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(0)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
