package testutil

import (
	"testing"

	"github.com/John-Hatton/Inventory/cache"
	"github.com/John-Hatton/Inventory/config"
	dbadapter "github.com/John-Hatton/Inventory/db"
	"github.com/John-Hatton/Inventory/model"
	"github.com/John-Hatton/Inventory/worker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupTestDB creates an in-memory database and runs AutoMigrate.
// It requires no external services and is safe to use in parallel tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbadapter.Open(config.DatabaseConfig{
		Mode: dbadapter.ModeMemory,
	})
	require.NoError(t, err, "SetupTestDB: Open")
	require.NoError(t, model.AutoMigrate(db), "SetupTestDB: AutoMigrate")
	return db
}

// SetupTestCache creates a local Cache and PubSub (no Redis required).
func SetupTestCache(t *testing.T) (cache.Cache, cache.PubSub) {
	t.Helper()
	cfg := config.CacheConfig{} // empty RedisAddr → in-process implementations
	c, err := cache.NewCache(cfg)
	require.NoError(t, err, "SetupTestCache: NewCache")
	ps, err := cache.NewPubSub(cfg)
	require.NoError(t, err, "SetupTestCache: NewPubSub")
	return c, ps
}

// SetupTestQueue creates a worker queue that is stopped (and drained)
// when the test finishes.
func SetupTestQueue(t *testing.T) *worker.Queue {
	t.Helper()
	q := worker.New(16, zap.NewNop())
	t.Cleanup(q.Stop)
	return q
}
