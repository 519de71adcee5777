package settings_test

import (
	"context"
	"testing"

	"github.com/John-Hatton/Inventory/settings"
	"github.com/John-Hatton/Inventory/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerURL_DefaultUntilSet(t *testing.T) {
	c, _ := testutil.SetupTestCache(t)
	s := settings.NewStore(c, "https://fallback.example.com")
	ctx := context.Background()

	assert.Equal(t, "https://fallback.example.com/", s.ServerURL(ctx))

	require.NoError(t, s.SetServerURL(ctx, "https://inv.example.com"))
	assert.Equal(t, "https://inv.example.com/", s.ServerURL(ctx))
}

func TestServerURL_NormalizesTrailingSlashAndSpace(t *testing.T) {
	c, _ := testutil.SetupTestCache(t)
	s := settings.NewStore(c, "")
	ctx := context.Background()

	require.NoError(t, s.SetServerURL(ctx, "  https://inv.example.com/  "))
	assert.Equal(t, "https://inv.example.com/", s.ServerURL(ctx))
}

func TestServerURL_EmptyWhenNothingConfigured(t *testing.T) {
	c, _ := testutil.SetupTestCache(t)
	s := settings.NewStore(c, "")
	assert.Equal(t, "", s.ServerURL(context.Background()))
}
