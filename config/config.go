// Package config holds the file configuration used by the rdftab CLI.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rdftab/rdftab/pkg/errors"
	"github.com/rdftab/rdftab/store/parquet"
)

// Package-specific error codes.
var (
	ConfigReadFailed       = errors.MustNewCode("config.read_failed")
	ConfigParseFailed      = errors.MustNewCode("config.parse_failed")
	ConfigValidationFailed = errors.MustNewCode("config.validation_failed")
)

// Config is the root configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// StorageConfig controls serialization defaults.
type StorageConfig struct {
	Compression    string `yaml:"compression"`
	BatchSize      int    `yaml:"batch_size"`
	StrictLiterals bool   `yaml:"strict_literals"`
}

// LoadDefaultConfig returns the defaults used when no file is given.
func LoadDefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Compression: "snappy",
			BatchSize:   10000,
		},
	}
}

// LoadConfig loads and validates configuration from a yaml file. Fields
// left empty keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(ConfigReadFailed, "failed to read config file", err).AddContext("path", path)
	}

	config := LoadDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.New(ConfigParseFailed, "failed to parse config file", err).AddContext("path", path)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if _, err := parquet.GetCompressionCodec(c.Storage.Compression); err != nil {
		return errors.New(ConfigValidationFailed, "invalid compression", err)
	}
	if c.Storage.BatchSize < 1 {
		return errors.Newf(ConfigValidationFailed, "batch_size must be >= 1, got %d", c.Storage.BatchSize)
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return errors.Newf(ConfigValidationFailed, "log format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
