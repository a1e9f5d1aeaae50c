package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "products", cfg.Catalog.ProductDir)
	assert.Equal(t, 30, cfg.Catalog.RecencyDays)
	assert.False(t, cfg.Catalog.DryRun)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, uint(3), cfg.Storage.RetryAttempts)
	assert.Equal(t, "warning", cfg.Alerts.OutputName)
	assert.Equal(t, "0 */6 * * *", cfg.Schedule.Spec)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("CATALOG_PRODUCT_DIR", "/srv/products")
	t.Setenv("CATALOG_RECENCY_DAYS", "7")
	t.Setenv("ALERTS_TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("DATABASE_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/srv/products", cfg.Catalog.ProductDir)
	assert.Equal(t, 7, cfg.Catalog.RecencyDays)
	assert.Equal(t, int64(-100123), cfg.Alerts.TelegramChatID)
	assert.True(t, cfg.Database.Enabled)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CATALOG_FEED_DIR=s3://release-data/feeds\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CATALOG_FEED_DIR") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "s3://release-data/feeds", cfg.Catalog.FeedDir)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Catalog.ProductDir = ""
	assert.ErrorContains(t, cfg.Validate(), "product directory")

	cfg.Catalog.ProductDir = "p"
	cfg.Catalog.FeedDir = ""
	assert.ErrorContains(t, cfg.Validate(), "data directory")

	cfg.Catalog.FeedDir = "d"
	cfg.Catalog.RecencyDays = -1
	assert.Error(t, cfg.Validate())
}
