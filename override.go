package applog

import (
	"fmt"
	"strconv"
	"strings"
)

// ApplyOverride applies string key-value overrides to the logger's current configuration.
// Each override should be in the format "key=value".
// The configuration is cloned before modification, and the whole
// read-modify-apply runs under the same lock as ApplyConfig.
//
// Example:
//
//	logger := applog.NewLogger()
//	err := logger.ApplyOverride(
//	    "directory=/var/log/app",
//	    "max_flush_interval_messages=50",
//	    "show_milliseconds=true",
//	)
func (l *Logger) ApplyOverride(overrides ...string) error {
	// Held across read-modify-apply so concurrent overrides compose
	l.initMu.Lock()
	defer l.initMu.Unlock()

	cfg := l.getConfig().Clone()

	var errors []error

	for _, override := range overrides {
		key, value, err := parseKeyValue(override)
		if err != nil {
			errors = append(errors, err)
			continue
		}

		if err := applyConfigField(cfg, key, value); err != nil {
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return combineConfigErrors(errors)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("log: invalid configuration: %w", err)
	}

	return l.applyConfig(cfg)
}

// combineConfigErrors combines multiple configuration errors into a single error.
func combineConfigErrors(errors []error) error {
	if len(errors) == 0 {
		return nil
	}
	if len(errors) == 1 {
		return errors[0]
	}

	var sb strings.Builder
	sb.WriteString("log: multiple configuration errors:")
	for i, err := range errors {
		// Strip per-error prefix to avoid duplication
		errMsg := strings.TrimPrefix(err.Error(), "log: ")
		sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, errMsg))
	}
	return fmt.Errorf("%s", sb.String())
}

// applyConfigField applies a single key-value override to a Config.
func applyConfigField(cfg *Config, key, value string) error {
	switch key {
	// Destination
	case "directory":
		cfg.Directory = value
	case "app_name":
		cfg.AppName = value
	case "file_name":
		cfg.FileName = value
	case "truncate":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for truncate '%s': %w", value, err)
		}
		cfg.Truncate = boolVal

	// Buffer and flush policy
	case "max_entry_count":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_entry_count '%s': %w", value, err)
		}
		cfg.MaxEntryCount = intVal
	case "max_flush_interval_s":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_flush_interval_s '%s': %w", value, err)
		}
		cfg.MaxFlushIntervalS = intVal
	case "max_flush_interval_messages":
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmtErrorf("invalid integer value for max_flush_interval_messages '%s': %w", value, err)
		}
		cfg.MaxFlushIntervalMessages = intVal

	// Formatting
	case "show_milliseconds":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for show_milliseconds '%s': %w", value, err)
		}
		cfg.ShowMilliseconds = boolVal

	// Console echo
	case "enable_console":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for enable_console '%s': %w", value, err)
		}
		cfg.EnableConsole = boolVal
	case "console_target":
		cfg.ConsoleTarget = value

	// Internal error handling
	case "internal_errors_to_stderr":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmtErrorf("invalid boolean value for internal_errors_to_stderr '%s': %w", value, err)
		}
		cfg.InternalErrorsToStderr = boolVal
	case "internal_error_rate":
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmtErrorf("invalid float value for internal_error_rate '%s': %w", value, err)
		}
		cfg.InternalErrorRate = floatVal

	default:
		return fmtErrorf("unknown config key in override: '%s'", key)
	}

	return nil
}
