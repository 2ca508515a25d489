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

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/app.sqlite", cfg.Database.Name)
	assert.Equal(t, "mana-vault", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "data/AllPrintings.sqlite", cfg.Index.UpstreamPath)
	assert.Equal(t, 200, cfg.Index.QueryLimitMax)
	assert.False(t, cfg.Index.Publish)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("INDEX_UPSTREAM_PATH", "/srv/mtg/AllPrintings.sqlite")
	t.Setenv("INDEX_PUBLISH", "true")
	t.Setenv("DATABASE_PORT", "5432")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/srv/mtg/AllPrintings.sqlite", cfg.Index.UpstreamPath)
	assert.True(t, cfg.Index.Publish)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("INDEX_SCHEDULE=@every 6h\nSERVER_API_KEY=secret\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("INDEX_SCHEDULE")
		os.Unsetenv("SERVER_API_KEY")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "@every 6h", cfg.Index.Schedule)
	assert.Equal(t, "secret", cfg.Server.ApiKey)
}

func TestSetDefaults_RegistersEveryLeaf(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	// Keys with an empty default still resolve from the environment.
	assert.Empty(t, cfg.Index.Schedule)
	assert.Empty(t, cfg.Storage.Region)
}
