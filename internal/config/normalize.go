package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeWatcher()
	c.normalizeLogging()
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	sources := make([]string, 0, len(c.Paths.SourceDirs))
	for _, dir := range c.Paths.SourceDirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		expanded, expandErr := expandPath(dir)
		if expandErr != nil {
			return fmt.Errorf("paths.source_dirs: %w", expandErr)
		}
		sources = append(sources, expanded)
	}
	c.Paths.SourceDirs = sources

	if c.Paths.TaxDir, err = expandPath(c.Paths.TaxDir); err != nil {
		return fmt.Errorf("paths.tax_dir: %w", err)
	}
	if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Media.ArchiveIndexPath) != "" {
		if c.Media.ArchiveIndexPath, err = expandPath(c.Media.ArchiveIndexPath); err != nil {
			return fmt.Errorf("media.archive_index_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.PdftotextBinary = strings.TrimSpace(c.Tools.PdftotextBinary)
	if c.Tools.PdftotextBinary == "" {
		c.Tools.PdftotextBinary = defaultPdftotextBinary
	}
	c.Tools.ExiftoolBinary = strings.TrimSpace(c.Tools.ExiftoolBinary)
	if c.Tools.ExiftoolBinary == "" {
		c.Tools.ExiftoolBinary = defaultExiftoolBinary
	}
	if c.Tools.TimeoutSeconds <= 0 {
		c.Tools.TimeoutSeconds = defaultToolTimeoutSeconds
	}
}

func (c *Config) normalizeWatcher() {
	if c.Watcher.DebounceSeconds <= 0 {
		c.Watcher.DebounceSeconds = defaultDebounceSeconds
	}
	if c.Watcher.RescanSeconds <= 0 {
		c.Watcher.RescanSeconds = defaultRescanSeconds
	}
	if c.Watcher.MinRunSeconds <= 0 {
		c.Watcher.MinRunSeconds = defaultMinRunSeconds
	}
	if c.Watcher.LockTimeoutSeconds <= 0 {
		c.Watcher.LockTimeoutSeconds = defaultLockTimeoutSecs
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
