package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pqsoccerboy17/downloads-organizer/internal/config"
	"github.com/pqsoccerboy17/downloads-organizer/internal/logging"
)

// commandContext lazily shares config and logger across subcommands.
type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	logger  *slog.Logger
	logErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, verboseFlag: verboseFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.logOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logErr = err
			return
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			tuned := *cfg
			tuned.Logging.Level = "debug"
			cfg = &tuned
		}
		c.logger, c.logErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.logErr
}
