package applog

// Builder provides a fluent API for building logger configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger with the configuration and opens its file.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	logger := NewLogger()

	// ApplyConfig handles validation and opening the file
	if err := logger.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return logger, nil
}

// Config returns a copy of the configuration built so far.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.cfg.Clone(), nil
}

// Directory sets the log directory.
func (b *Builder) Directory(dir string) *Builder {
	b.cfg.Directory = dir
	return b
}

// AppName sets the application name used to resolve the default directory.
func (b *Builder) AppName(name string) *Builder {
	b.cfg.AppName = name
	return b
}

// FileName sets the log file name.
func (b *Builder) FileName(name string) *Builder {
	b.cfg.FileName = name
	return b
}

// Truncate makes the logger truncate instead of append on open.
func (b *Builder) Truncate(truncate bool) *Builder {
	b.cfg.Truncate = truncate
	return b
}

// MaxEntryCount sets the ring buffer capacity.
func (b *Builder) MaxEntryCount(count int64) *Builder {
	b.cfg.MaxEntryCount = count
	return b
}

// MaxFlushIntervalS sets the maximum seconds between durable flushes.
func (b *Builder) MaxFlushIntervalS(seconds int64) *Builder {
	b.cfg.MaxFlushIntervalS = seconds
	return b
}

// MaxFlushIntervalMessages sets the buffered entry count that forces a flush.
func (b *Builder) MaxFlushIntervalMessages(count int64) *Builder {
	b.cfg.MaxFlushIntervalMessages = count
	return b
}

// ShowMilliseconds adds milliseconds to rendered timestamps.
func (b *Builder) ShowMilliseconds(show bool) *Builder {
	b.cfg.ShowMilliseconds = show
	return b
}

// EnableConsole enables mirroring entries to stdout/stderr.
func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// ConsoleTarget sets the console stream, "stdout" or "stderr".
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// InternalErrorsToStderr toggles internal diagnostics on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Override applies "key=value" strings, deferring any parse error to Build.
func (b *Builder) Override(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			b.err = err
			return b
		}
		if err := applyConfigField(b.cfg, key, value); err != nil {
			b.err = err
			return b
		}
	}
	return b
}

// Example usage:
// logger, err := applog.NewBuilder().
//
//	AppName("editor").
//	ShowMilliseconds(true).
//	EnableConsole(false).
//	Build()
//
// if err == nil {
//
//	 defer logger.Shutdown()
//	 logger.Notification("Logger initialized successfully")
//
// }
