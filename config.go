package logward

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/GoCodeAlone/logward/feeders"
)

// Config is the declarative configuration for a logger. It is the file- and
// environment-facing counterpart of the functional options: a Config loaded
// from YAML, TOML or JSON is turned into options with FromConfig.
//
// A Config is immutable once a logger has been constructed from it;
// reconfiguration happens by building a new Config and swapping it in
// (see Logger.Reconfigure and Watcher).
type Config struct {
	// Level is the minimum severity an entry needs to be dispatched.
	Level Level `yaml:"level" json:"level" toml:"level" env:"LEVEL" default:"INFO" desc:"Minimum severity for dispatch"`

	// Format selects the formatter (text, json, structured).
	Format string `yaml:"format" json:"format" toml:"format" env:"FORMAT" default:"text" desc:"Entry format"`

	// Chaining forwards entries to the logger of the enclosing scope after
	// local dispatch.
	Chaining bool `yaml:"chaining" json:"chaining" toml:"chaining" env:"CHAINING" default:"false" desc:"Forward entries to the parent logger"`

	// Appenders lists the default appenders, in dispatch order.
	Appenders []AppenderConfig `yaml:"appenders" json:"appenders" toml:"appenders" desc:"Default appenders in dispatch order"`
}

// AppenderConfig configures a single appender.
type AppenderConfig struct {
	// Type selects the appender (console, file, cloudevents).
	Type string `yaml:"type" json:"type" toml:"type" default:"console" desc:"Appender type"`

	// Configuration specific to the appender type
	Console     *ConsoleAppenderConfig     `yaml:"console,omitempty" json:"console,omitempty" toml:"console,omitempty" desc:"Console appender configuration"`
	File        *FileAppenderConfig        `yaml:"file,omitempty" json:"file,omitempty" toml:"file,omitempty" desc:"File appender configuration"`
	CloudEvents *CloudEventsAppenderConfig `yaml:"cloudevents,omitempty" json:"cloudevents,omitempty" toml:"cloudevents,omitempty" desc:"CloudEvents appender configuration"`
}

// ConsoleAppenderConfig configures console output.
type ConsoleAppenderConfig struct {
	// UseColor enables ANSI color codes for level names.
	UseColor bool `yaml:"useColor" json:"useColor" toml:"useColor" default:"false" desc:"Colorize level names"`
}

// FileAppenderConfig configures file output.
type FileAppenderConfig struct {
	// Path is the log file path. Parent directories are created on open.
	Path string `yaml:"path" json:"path" toml:"path" required:"true" desc:"Path to log file"`
}

// CloudEventsAppenderConfig configures the CloudEvents network appender.
type CloudEventsAppenderConfig struct {
	// Target is the HTTP endpoint log entry events are sent to.
	Target string `yaml:"target" json:"target" toml:"target" required:"true" desc:"CloudEvents HTTP target"`

	// Source is the CloudEvents source attribute for published entries.
	Source string `yaml:"source" json:"source" toml:"source" default:"logward" desc:"CloudEvents source attribute"`
}

// DefaultConfig returns the configuration a logger gets when nothing is
// overridden: INFO threshold, text format, one console appender, no chaining.
func DefaultConfig() Config {
	return Config{
		Level:     LevelInfo,
		Format:    "text",
		Chaining:  false,
		Appenders: []AppenderConfig{{Type: "console"}},
	}
}

// Validate implements config validation for Config.
func (c *Config) Validate() error {
	if c.Level < LevelDebug || c.Level > LevelError {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int(c.Level))
	}
	if _, err := formatterForName(c.Format); err != nil {
		return err
	}
	for i, appender := range c.Appenders {
		if err := appender.Validate(); err != nil {
			return NewAppenderConfigError(i, err)
		}
	}
	return nil
}

// Validate validates an AppenderConfig.
func (a *AppenderConfig) Validate() error {
	switch a.Type {
	case "console":
	case "file":
		if a.File == nil {
			return ErrMissingFileConfig
		}
		if a.File.Path == "" {
			return ErrMissingFilePath
		}
	case "cloudevents":
		if a.CloudEvents == nil {
			return ErrMissingCloudEvents
		}
		if a.CloudEvents.Target == "" {
			return ErrMissingTarget
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidAppenderType, a.Type)
	}
	return nil
}

// AppenderConfigError wraps validation errors with the index of the failing
// appender entry.
type AppenderConfigError struct {
	Index int
	Err   error
}

func (e *AppenderConfigError) Error() string {
	return fmt.Sprintf("appender %d: %v", e.Index, e.Err)
}

func (e *AppenderConfigError) Unwrap() error {
	return e.Err
}

// NewAppenderConfigError creates a new AppenderConfigError.
func NewAppenderConfigError(index int, err error) *AppenderConfigError {
	return &AppenderConfigError{Index: index, Err: err}
}

// LoadConfigFile loads a Config from a YAML, TOML or JSON file, selected by
// extension, on top of the defaults. Environment variables prefixed with
// envPrefix override file values field-by-field; pass an empty prefix to
// skip the environment. The result is validated before it is returned.
func LoadConfigFile(path, envPrefix string) (Config, error) {
	cfg := DefaultConfig()

	var feeder interface{ Feed(any) error }
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		feeder = feeders.NewYamlFeeder(path)
	case ".toml":
		feeder = feeders.NewTomlFeeder(path)
	case ".json":
		feeder = feeders.NewJSONFeeder(path)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedConfigExt, filepath.Ext(path))
	}

	if err := feeder.Feed(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	if envPrefix != "" {
		if err := feeders.NewEnvFeeder(envPrefix).Feed(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to apply environment overrides: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfigFile marshals cfg to path in the format selected by the file
// extension. Used by tooling and tests that round-trip configuration.
func WriteConfigFile(path string, cfg Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		var builder strings.Builder
		err = toml.NewEncoder(&builder).Encode(cfg)
		data = []byte(builder.String())
	case ".json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedConfigExt, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
