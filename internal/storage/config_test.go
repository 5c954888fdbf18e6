package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/nexus/internal/storage"
	"gotest.tools/v3/assert"
)

func TestLoadConfig_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := storage.LoadConfig(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, *cfg, storage.DefaultConfig())

	_, err = os.Stat(path)
	assert.NilError(t, err, "expected config file to be created")
}

func TestLoadConfig_FillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{"backend":"sqlite","faviconSize":64}`), 0644))

	cfg, err := storage.LoadConfig(path)
	assert.NilError(t, err)

	defaults := storage.DefaultConfig()
	assert.Equal(t, cfg.Backend, storage.BackendSQLite)
	assert.Equal(t, cfg.FaviconSize, 64)
	assert.Equal(t, cfg.FaviconTemplate, defaults.FaviconTemplate)
	assert.Equal(t, cfg.IconConcurrency, defaults.IconConcurrency)
	assert.Equal(t, cfg.LogLevel, "warn")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := storage.LoadConfig(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv("NEXUS_BACKEND", "memory")
	t.Setenv("NEXUS_DISABLE_ICONS", "true")
	t.Setenv("NEXUS_FAVICON_SIZE", "32")

	cfg := storage.DefaultConfig()
	cfg.LogLevel = "debug"
	assert.NilError(t, cfg.ApplyEnv())

	assert.Equal(t, cfg.Backend, storage.BackendMemory)
	assert.Equal(t, cfg.DisableIcons, true)
	assert.Equal(t, cfg.FaviconSize, 32)
	assert.Equal(t, cfg.LogLevel, "debug", "unset variables must keep file values")
}

func TestConfig_ApplyEnv_BadValue(t *testing.T) {
	t.Setenv("NEXUS_FAVICON_SIZE", "large")

	cfg := storage.DefaultConfig()
	assert.ErrorContains(t, cfg.ApplyEnv(), "parse env")
}
