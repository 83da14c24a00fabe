package applog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Destination
	Directory string `toml:"directory"` // Empty resolves to the user data directory for AppName
	AppName   string `toml:"app_name"`
	FileName  string `toml:"file_name"`
	Truncate  bool   `toml:"truncate"` // Truncate instead of append when opening a file

	// Buffer and flush policy
	MaxEntryCount            int64 `toml:"max_entry_count"`             // Ring buffer capacity
	MaxFlushIntervalS        int64 `toml:"max_flush_interval_s"`        // Max seconds between durable flushes
	MaxFlushIntervalMessages int64 `toml:"max_flush_interval_messages"` // Buffered entries that force a flush

	// Formatting
	ShowMilliseconds bool `toml:"show_milliseconds"`

	// Console echo
	EnableConsole bool   `toml:"enable_console"`
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr"

	// Internal error handling
	InternalErrorsToStderr bool    `toml:"internal_errors_to_stderr"`
	InternalErrorRate      float64 `toml:"internal_error_rate"` // Reports per second
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Destination
	Directory: "",
	AppName:   DefaultAppName,
	FileName:  DefaultFileName,
	Truncate:  false,

	// Buffer and flush policy
	MaxEntryCount:            DefaultMaxEntryCount,
	MaxFlushIntervalS:        DefaultMaxFlushIntervalS,
	MaxFlushIntervalMessages: DefaultMaxFlushIntervalMessages,

	// Formatting
	ShowMilliseconds: false,

	// Console echo
	EnableConsole: true,
	ConsoleTarget: "stdout",

	// Internal error handling
	InternalErrorsToStderr: true,
	InternalErrorRate:      1.0,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config.
// Keys live under the [applog] table.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("applog.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, "applog.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Keep default
		}

		if err := setFieldValue(v.Field(i), val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides keyed by toml tag
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		if tomlTag := t.Field(i).Tag.Get("toml"); tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Float64:
		switch v := value.(type) {
		case float64:
			field.SetFloat(v)
		case int64:
			field.SetFloat(float64(v))
		case int:
			field.SetFloat(float64(v))
		default:
			return fmt.Errorf("expected float64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FileName) == "" {
		return fmtErrorf("file_name cannot be empty")
	}

	if c.Directory == "" && strings.TrimSpace(c.AppName) == "" {
		return fmtErrorf("app_name cannot be empty when directory is not set")
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if c.MaxEntryCount <= 0 {
		return fmtErrorf("max_entry_count must be positive: %d", c.MaxEntryCount)
	}

	if c.MaxFlushIntervalS <= 0 {
		return fmtErrorf("max_flush_interval_s must be positive: %d", c.MaxFlushIntervalS)
	}

	if c.MaxFlushIntervalMessages <= 0 {
		return fmtErrorf("max_flush_interval_messages must be positive: %d", c.MaxFlushIntervalMessages)
	}

	if c.InternalErrorRate <= 0 {
		return fmtErrorf("internal_error_rate must be positive: %f", c.InternalErrorRate)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}
