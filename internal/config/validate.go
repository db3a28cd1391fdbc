package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWatcher(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if len(c.Paths.SourceDirs) == 0 {
		return errors.New("paths.source_dirs must list at least one folder to watch")
	}
	if c.Paths.TaxDir == "" {
		return errors.New("paths.tax_dir must be set")
	}
	if c.Paths.MediaDir == "" {
		return errors.New("paths.media_dir must be set")
	}
	for _, src := range c.Paths.SourceDirs {
		if src == c.Paths.TaxDir || src == c.Paths.MediaDir {
			return fmt.Errorf("source folder %q overlaps a destination tree", src)
		}
	}
	return nil
}

func (c *Config) validateWatcher() error {
	if c.Watcher.DebounceSeconds > c.Watcher.RescanSeconds {
		return errors.New("watcher.debounce_seconds must not exceed watcher.rescan_seconds")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
