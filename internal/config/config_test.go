package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize default config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false for missing file at %s", path)
	}
	if cfg.Watcher.DebounceSeconds != defaultDebounceSeconds {
		t.Fatalf("expected default debounce, got %d", cfg.Watcher.DebounceSeconds)
	}
	if len(cfg.Paths.SourceDirs) == 0 {
		t.Fatalf("expected default source dirs")
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
source_dirs = ["` + dir + `/incoming"]
tax_dir = "` + dir + `/taxes"
media_dir = "` + dir + `/media"
log_dir = "` + dir + `/logs"
state_dir = "` + dir + `/state"

[watcher]
debounce_seconds = 2
rescan_seconds = 30

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatalf("expected config file to be found")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowercased logging values, got %+v", cfg.Logging)
	}
	if cfg.Watcher.MinRunSeconds != defaultMinRunSeconds {
		t.Fatalf("expected defaulted min_run_seconds, got %d", cfg.Watcher.MinRunSeconds)
	}
	if !strings.HasSuffix(cfg.LockFilePath(), "organizer.lock") {
		t.Fatalf("unexpected lock path %s", cfg.LockFilePath())
	}
}

func TestValidateRejectsOverlappingDirs(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Paths.SourceDirs = []string{cfg.Paths.TaxDir}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for source overlapping destination")
	}
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for bad log format")
	}
}

func TestValidateRejectsDebounceBeyondRescan(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatal(err)
	}
	cfg.Watcher.DebounceSeconds = 120
	cfg.Watcher.RescanSeconds = 60
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error when debounce exceeds rescan")
	}
}
