package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"wp-starter/internal/logger"
)

// Strategies accepted in versions.strategy.
const (
	StrategyLast   = "last"
	StrategySemver = "semver"
)

// DefaultSettings returns the built-in settings used when no settings file is given.
func DefaultSettings() Settings {
	return Settings{
		GitHub: GitHub{
			APIURL:     "https://api.github.com",
			ArchiveURL: "https://github.com",
		},
		Versions: Versions{
			Strategy:    StrategyLast,
			WordPress:   Project{Repo: "WordPress/WordPress", Fallback: "3.5.1"},
			Bootstrap:   Project{Repo: "twbs/bootstrap", Fallback: "2.3.1"},
			FontAwesome: Project{Repo: "FortAwesome/Font-Awesome", Fallback: "3.0.2"},
		},
		Tools: Tools{
			NPM:   "npm",
			Grunt: "grunt",
			WP:    "wp",
		},
	}
}

// LoadSettings reads the settings YAML file at path and overlays it on DefaultSettings.
// An empty path or a missing file yields the defaults; a file that exists but cannot be
// parsed is an error, since the user asked for it explicitly.
func LoadSettings(path string) (Settings, error) {
	st := DefaultSettings()
	if path == "" {
		return st, nil
	}

	// Read and parse the settings file; yaml.v3 leaves absent keys at their default values
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("[DEBUG] Settings file %s not found, using defaults\n", path)
		return st, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &st); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}

	switch st.Versions.Strategy {
	case "":
		st.Versions.Strategy = StrategyLast
	case StrategyLast, StrategySemver:
	default:
		return Settings{}, fmt.Errorf("invalid versions.strategy %q (want %q or %q)",
			st.Versions.Strategy, StrategyLast, StrategySemver)
	}
	if err := st.validate(); err != nil {
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}

	logger.Debug("[DEBUG] Loaded settings from %s\n", path)
	return st, nil
}

// validate rejects settings that would leave a download URL without a host or a version.
func (st Settings) validate() error {
	required := []struct {
		key, value string
	}{
		{"github.api_url", st.GitHub.APIURL},
		{"github.archive_url", st.GitHub.ArchiveURL},
		{"versions.wordpress.repo", st.Versions.WordPress.Repo},
		{"versions.wordpress.fallback", st.Versions.WordPress.Fallback},
		{"versions.bootstrap.repo", st.Versions.Bootstrap.Repo},
		{"versions.bootstrap.fallback", st.Versions.Bootstrap.Fallback},
		{"versions.font_awesome.repo", st.Versions.FontAwesome.Repo},
		{"versions.font_awesome.fallback", st.Versions.FontAwesome.Fallback},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s must not be empty", r.key)
		}
	}
	return nil
}
