package config

import (
	"encoding/json" // For JSON encoding and decoding of the stored defaults
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"wp-starter/internal/logger"
)

// Hard-coded values written for any field the user left empty.
const (
	DefaultAuthorName = "theREDspace"
	DefaultAuthorURI  = "http://www.redspace.com"
	DefaultTheme      = "https://github.com/theREDspace/wp_starter"
)

const (
	dirName  = ".wp-starter"
	fileName = "config.json"

	// HomeEnv overrides the directory holding the stored defaults.
	HomeEnv = "WP_STARTER_HOME"
)

var (
	// ErrNotFound is returned by Load when no usable config file exists.
	ErrNotFound = errors.New("stored config not found")
	// ErrExists is returned by Save when a config file is already present.
	ErrExists = errors.New("stored config already exists")
)

// Dir returns the per-user directory holding the stored defaults (~/.wp-starter/).
func Dir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", dirName)
	}
	return filepath.Join(home, dirName)
}

// Store reads and writes the stored defaults file inside a directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. An empty dir uses Dir().
func NewStore(dir string) *Store {
	if dir == "" {
		dir = Dir()
	}
	return &Store{dir: dir}
}

// Path returns the full path of the config file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Load reads the stored defaults.
// Any read or parse failure is reported as ErrNotFound so callers fall back to defaults.
func (s *Store) Load() (StoredConfig, error) {
	// Read entire config JSON file into memory
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		logger.Debug("[DEBUG] Reading %s: %v\n", s.Path(), err)
		return StoredConfig{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	// Parse JSON data into a StoredConfig; a corrupt file counts as absent
	var cfg StoredConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		logger.Debug("[DEBUG] Parsing %s: %v\n", s.Path(), err)
		return StoredConfig{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return cfg, nil
}

// Save writes values, with hard-coded defaults for empty fields, as the stored config.
// The file is written once: if it already exists Save returns ErrExists and leaves it untouched.
// An exclusive file lock makes the existence check and the write atomic across processes.
func (s *Store) Save(values StoredConfig) error {
	// Ensure the config directory exists; MkdirAll is a no-op when it does
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", s.dir, err)
	}

	lock := flock.New(s.Path() + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug("[DEBUG] Unlocking %s: %v\n", lock.Path(), err)
		}
	}()

	if _, err := os.Stat(s.Path()); err == nil {
		return ErrExists
	}

	cfg := values.merged()
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	logger.Debug("[DEBUG] Writing config to %s:\n%s\n", s.Path(), string(raw))

	// Write the JSON bytes to the file with mode 0644 (read/write owner, read others)
	if err := os.WriteFile(s.Path(), raw, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", s.Path(), err)
	}
	return nil
}

// merged fills empty fields with the values persisted by default.
func (c StoredConfig) merged() StoredConfig {
	if c.AuthorName == "" {
		c.AuthorName = DefaultAuthorName
	}
	if c.AuthorURI == "" {
		c.AuthorURI = DefaultAuthorURI
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	return c
}

// WithDefaults returns the values offered as prompt defaults.
// Author fields stay empty when unknown; the starter theme falls back to DefaultTheme.
func (c StoredConfig) WithDefaults() StoredConfig {
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	return c
}
