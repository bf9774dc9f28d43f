package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("config file should not exist")
	}
	if resolved != path {
		t.Errorf("resolved = %q, want %q", resolved, path)
	}
	if len(cfg.Paths.SourceDirs) == 0 {
		t.Error("default source dirs missing")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if len(cfg.Parser.Editions) == 0 {
		t.Error("default edition table missing")
	}
	if cfg.Transfer.ForceOverwrite || cfg.Transfer.AllowUpgrade || cfg.Transfer.SafeCopy {
		t.Errorf("transfer policy must default off, got %+v", cfg.Transfer)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
source_dirs = ["` + filepath.Join(dir, "in") + `"]
library_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[parser]
strip_prefixes = ["[TGx]"]
keep_periods = ["S.W.A.T"]

[[parser.editions]]
search = "unrated"
replace = "Unrated"

[transfer]
safe_copy = true

[scan]
extensions = ["MKV", ".mp4", ".mp4"]
min_size_mb = 50

[logging]
level = "DEBUG"
format = "fancy"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("config file should exist")
	}
	if !cfg.Transfer.SafeCopy {
		t.Error("safe_copy not applied")
	}
	if len(cfg.Parser.Editions) != 1 || cfg.Parser.Editions[0].Replace != "Unrated" {
		t.Errorf("editions = %+v", cfg.Parser.Editions)
	}
	if cfg.Scan.MinSizeMB != 50 || cfg.MinSizeBytes() != 50*1024*1024 {
		t.Errorf("min size = %d", cfg.Scan.MinSizeMB)
	}
	wantExts := []string{".mkv", ".mp4"}
	if len(cfg.Scan.Extensions) != len(wantExts) {
		t.Fatalf("extensions = %v", cfg.Scan.Extensions)
	}
	for i, ext := range wantExts {
		if cfg.Scan.Extensions[i] != ext {
			t.Errorf("extensions[%d] = %q, want %q", i, cfg.Scan.Extensions[i], ext)
		}
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("unknown format should fall back, got %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadEditionPattern(t *testing.T) {
	cfg := Default()
	cfg.Parser.Editions = []EditionRule{{Search: `([`, Replace: "x"}}
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "parser.editions[0].search") {
		t.Errorf("err = %v", err)
	}
}

func TestValidateRejectsLibraryAsSource(t *testing.T) {
	cfg := Default()
	cfg.Paths.SourceDirs = []string{"~/library/movies"}
	cfg.Paths.LibraryDir = "~/library/movies"
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected overlap rejection")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/downloads")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "downloads") {
		t.Errorf("expanded = %q", got)
	}
}

func TestCreateSampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatal(err)
	}
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("sample config should exist")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample config invalid: %v", err)
	}
}
