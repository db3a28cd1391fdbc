package config

const (
	defaultTaxDir             = "~/Drive/Personal/Taxes"
	defaultMediaDir           = "~/Drive/Personal/Media"
	defaultLogDir             = "~/.local/share/downloads-organizer/logs"
	defaultStateDir           = "~/.local/share/downloads-organizer"
	defaultPdftotextBinary    = "pdftotext"
	defaultExiftoolBinary     = "exiftool"
	defaultToolTimeoutSeconds = 30
	defaultDebounceSeconds    = 5
	defaultRescanSeconds      = 60
	defaultMinRunSeconds      = 10
	defaultLockTimeoutSecs    = 30
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultNotifyTimeout      = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SourceDirs: []string{"~/Downloads", "~/Desktop"},
			TaxDir:     defaultTaxDir,
			MediaDir:   defaultMediaDir,
			LogDir:     defaultLogDir,
			StateDir:   defaultStateDir,
		},
		Tools: Tools{
			PdftotextBinary: defaultPdftotextBinary,
			ExiftoolBinary:  defaultExiftoolBinary,
			TimeoutSeconds:  defaultToolTimeoutSeconds,
		},
		Watcher: Watcher{
			DebounceSeconds:    defaultDebounceSeconds,
			RescanSeconds:      defaultRescanSeconds,
			MinRunSeconds:      defaultMinRunSeconds,
			LockTimeoutSeconds: defaultLockTimeoutSecs,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			RunSummaries:   true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
