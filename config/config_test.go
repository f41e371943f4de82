package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rdftab.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultConfig(t *testing.T) {
	cfg := LoadDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "snappy", cfg.Storage.Compression)
	assert.Equal(t, 10000, cfg.Storage.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
storage:
  compression: zstd
  batch_size: 500
  strict_literals: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "zstd", cfg.Storage.Compression)
	assert.Equal(t, 500, cfg.Storage.BatchSize)
	assert.True(t, cfg.Storage.StrictLiterals)
}

func TestLoadConfigKeepsDefaultsForOmittedFields(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "snappy", cfg.Storage.Compression)
	assert.Equal(t, 10000, cfg.Storage.BatchSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Defaults", func(c *Config) {}, false},
		{"BadCompression", func(c *Config) { c.Storage.Compression = "bzip9" }, true},
		{"ZeroBatchSize", func(c *Config) { c.Storage.BatchSize = 0 }, true},
		{"BadLogFormat", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadDefaultConfig()
			tt.mutate(cfg)
			if tt.expectError {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "log: ["))
	require.Error(t, err)
}
