package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/John-Hatton/Inventory/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsFillUnsetFields(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Mode)
	assert.Equal(t, 15*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 64, cfg.Cache.LocalPubSubBuf)
	assert.NotEmpty(t, cfg.Media.Dir)
}

func TestLoad_ReadsNestedSections(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8100
  debug: true
database:
  mode: memory
cache:
  redis_addr: "127.0.0.1:6379"
remote:
  server_url: "https://inv.example.com"
  timeout: 5s
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "memory", cfg.Database.Mode)
	assert.Equal(t, "127.0.0.1:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, "https://inv.example.com", cfg.Remote.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
