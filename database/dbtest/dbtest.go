// Package dbtest opens throwaway in-memory SQLite databases for tests.
package dbtest

import (
	"strings"
	"testing"

	"portfolio/database"

	"gorm.io/gorm"
)

// New returns a migrated database private to the calling test. It is closed
// when the test finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite://file:"+name+"?mode=memory&cache=shared", "silent")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
