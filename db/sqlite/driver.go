package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a GORM *DB backed by a SQLite file.
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// OpenMemory creates a private in-memory database. The DSN is named and
// shared-cache so every pooled connection sees the same store, while
// each call still returns an independent database.
func OpenMemory() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:mem_%s?mode=memory&cache=shared", uuid.NewString())
	return Open(dsn)
}
