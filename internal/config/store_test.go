package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsNotFound(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadCorruptFileIsNotFound(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewStore(dir).Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for corrupt file, got %v", err)
	}
}

func TestSaveFillsDefaultsAndCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".wp-starter")
	s := NewStore(dir)

	if err := s.Save(StoredConfig{AuthorName: "Jane"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("config is not JSON: %v", err)
	}
	want := map[string]string{
		"authorName": "Jane",
		"authorURI":  DefaultAuthorURI,
		"theme":      DefaultTheme,
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}

func TestSaveIsWriteOnceAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	// Run 1: nothing stored yet, so the collected values are persisted.
	first := NewStore(dir)
	if _, err := first.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("run 1: expected ErrNotFound, got %v", err)
	}
	if err := first.Save(StoredConfig{AuthorName: "Jane", AuthorURI: "https://jane.dev", Theme: "https://github.com/jane/starter"}); err != nil {
		t.Fatalf("run 1: Save failed: %v", err)
	}

	// Run 2: Load returns the saved values, and a second Save changes nothing.
	second := NewStore(dir)
	cfg, err := second.Load()
	if err != nil {
		t.Fatalf("run 2: Load failed: %v", err)
	}
	if cfg.AuthorName != "Jane" || cfg.AuthorURI != "https://jane.dev" || cfg.Theme != "https://github.com/jane/starter" {
		t.Fatalf("run 2: unexpected config %+v", cfg)
	}

	if err := second.Save(StoredConfig{AuthorName: "Someone Else"}); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists on second save, got %v", err)
	}
	cfg, _ = second.Load()
	if cfg.AuthorName != "Jane" {
		t.Fatalf("existing config was overwritten: %+v", cfg)
	}
}

func TestWithDefaults(t *testing.T) {
	got := StoredConfig{}.WithDefaults()
	if got.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", got.Theme, DefaultTheme)
	}
	if got.AuthorName != "" || got.AuthorURI != "" {
		t.Errorf("author defaults should stay empty, got %+v", got)
	}
}
