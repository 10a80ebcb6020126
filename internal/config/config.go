// Package config loads the Hearth configuration file. Every field has a
// working default, so a missing file is not an error and a minimal install
// needs no configuration at all.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration, YAML with strict field validation.
type Config struct {
	// DatabasePath locates the SQLite file. Default: hearth.db in the
	// working directory.
	DatabasePath string `yaml:"database_path"`

	// BackupDir is where timestamped exports are written.
	BackupDir string `yaml:"backup_dir"`

	// MaxImportBytes caps the size of import documents.
	MaxImportBytes int64 `yaml:"max_import_bytes"`

	// SeedOnOpen populates illustrative data into empty collections when
	// the store opens.
	SeedOnOpen bool `yaml:"seed_on_open"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DatabasePath:   "hearth.db",
		BackupDir:      "backups",
		MaxImportBytes: 50 << 20,
		SeedOnOpen:     true,
	}
}

// Load reads a config file and merges it over the defaults. A missing file
// yields the defaults; a malformed file or one with unknown fields (typos)
// is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return Default(), fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if cfg.MaxImportBytes <= 0 {
		return fmt.Errorf("max_import_bytes must be positive, got %d", cfg.MaxImportBytes)
	}
	return nil
}

// DefaultPath is the conventional config location relative to a base
// directory, typically the user's home.
func DefaultPath(base string) string {
	return filepath.Join(base, ".hearth", "config.yaml")
}
