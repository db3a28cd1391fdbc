package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains source and destination directory configuration.
type Paths struct {
	SourceDirs []string `toml:"source_dirs"`
	TaxDir     string   `toml:"tax_dir"`
	MediaDir   string   `toml:"media_dir"`
	LogDir     string   `toml:"log_dir"`
	StateDir   string   `toml:"state_dir"`
}

// Tools contains external tool binaries and invocation timeouts.
type Tools struct {
	PdftotextBinary string `toml:"pdftotext_binary"`
	ExiftoolBinary  string `toml:"exiftool_binary"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

// Media contains configuration specific to media organization.
type Media struct {
	// ArchiveIndexPath points at an optional Facebook export index.html used
	// as the highest-priority date source for exported photos.
	ArchiveIndexPath string `toml:"archive_index_path"`
}

// Watcher contains timing configuration for the source folder watcher.
type Watcher struct {
	DebounceSeconds     int `toml:"debounce_seconds"`
	RescanSeconds       int `toml:"rescan_seconds"`
	MinRunSeconds       int `toml:"min_run_seconds"`
	LockTimeoutSeconds  int `toml:"lock_timeout_seconds"`
	StabilityIntervalMS int `toml:"stability_interval_ms"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	RunSummaries   bool   `toml:"run_summaries"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the organizer.
//
// Configuration sections by subsystem:
//   - Paths: watched source folders and archive destinations
//   - Tools: pdftotext/exiftool binaries and timeouts
//   - Media: archive-specific date index input
//   - Watcher: debounce, rescan, and throttle timing
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Tools         Tools         `toml:"tools"`
	Media         Media         `toml:"media"`
	Watcher       Watcher       `toml:"watcher"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/downloads-organizer/config.toml")
}

// SampleConfig returns the embedded sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the organizer needs to run.
// Destination trees are created best-effort so a temporarily unmounted cloud
// drive does not block config loading.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	for _, dir := range []string{c.Paths.TaxDir, c.Paths.MediaDir} {
		if strings.TrimSpace(dir) != "" {
			_ = os.MkdirAll(dir, 0o755)
		}
	}
	return nil
}

// LockFilePath returns the well-known cross-process lock file location.
func (c *Config) LockFilePath() string {
	return filepath.Join(c.Paths.StateDir, "organizer.lock")
}

// HistoryDBPath returns the relocation ledger database location.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// ToolTimeout returns the external tool invocation timeout.
func (c *Config) ToolTimeout() time.Duration {
	if c.Tools.TimeoutSeconds <= 0 {
		return time.Duration(defaultToolTimeoutSeconds) * time.Second
	}
	return time.Duration(c.Tools.TimeoutSeconds) * time.Second
}

// Debounce returns the watcher debounce delay.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watcher.DebounceSeconds) * time.Second
}

// RescanInterval returns the periodic sweep interval.
func (c *Config) RescanInterval() time.Duration {
	return time.Duration(c.Watcher.RescanSeconds) * time.Second
}

// MinRunInterval returns the per-kind throttle window.
func (c *Config) MinRunInterval() time.Duration {
	return time.Duration(c.Watcher.MinRunSeconds) * time.Second
}

// LockTimeout returns the bounded wait for the cross-process lock.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.Watcher.LockTimeoutSeconds) * time.Second
}

// StabilityInterval returns the delay between the two size samples of the
// download stability check.
func (c *Config) StabilityInterval() time.Duration {
	if c.Watcher.StabilityIntervalMS <= 0 {
		return time.Second
	}
	return time.Duration(c.Watcher.StabilityIntervalMS) * time.Millisecond
}

// ExpandPath expands a leading tilde and returns a cleaned absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
