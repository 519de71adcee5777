package db

import (
	"fmt"

	"github.com/John-Hatton/Inventory/config"
	dbmysql "github.com/John-Hatton/Inventory/db/mysql"
	dbsqlite "github.com/John-Hatton/Inventory/db/sqlite"
	"gorm.io/gorm"
)

const (
	ModeSQLite = "sqlite"
	ModeMemory = "memory"
	ModeMySQL  = "mysql"
)

// Open returns a *gorm.DB for the configured database mode.
// The handle is created once at startup and injected into every consumer;
// nothing in this package holds global state.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Mode {
	case ModeSQLite:
		return dbsqlite.Open(cfg.SQLitePath)
	case ModeMemory:
		return dbsqlite.OpenMemory()
	case ModeMySQL:
		return dbmysql.Open(cfg.MySQLDSN, cfg.MySQLMaxOpen, cfg.MySQLMaxIdle, cfg.MySQLMaxLife)
	default:
		return nil, fmt.Errorf("db: unknown mode %q", cfg.Mode)
	}
}
