package logward

import (
	"fmt"
)

// Option represents a configuration option for a logger. Options are applied
// over the defaults in order, so later options win field-by-field: supplying
// only WithLevel leaves the default formatter, appenders and chaining flag
// untouched. This is the shallow configuration merge of the provider surface.
type Option func(*settings) error

// settings is the fully merged construction state of a logger. It starts as
// a copy of the defaults and is mutated by options and feature application.
type settings struct {
	level      Level
	formatter  Formatter
	appenders  []Appender
	chaining   bool
	categories map[string]Appender
	features   []Feature
	parent     *Logger
}

func defaultSettings() *settings {
	return &settings{
		level:      LevelInfo,
		formatter:  TextFormatter{},
		appenders:  []Appender{NewConsoleAppender()},
		categories: make(map[string]Appender),
	}
}

// WithLevel sets the minimum severity for dispatch.
func WithLevel(level Level) Option {
	return func(s *settings) error {
		if level < LevelDebug || level > LevelError {
			return fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
		}
		s.level = level
		return nil
	}
}

// WithFormatter sets the formatter. A FormatterFunc works anywhere a
// Formatter does.
func WithFormatter(formatter Formatter) Option {
	return func(s *settings) error {
		if formatter == nil {
			return ErrNilFormatter
		}
		s.formatter = formatter
		return nil
	}
}

// WithAppenders replaces the default appender list. Appenders are invoked in
// the order given here.
func WithAppenders(appenders ...Appender) Option {
	return func(s *settings) error {
		for _, appender := range appenders {
			if appender == nil {
				return ErrNilAppender
			}
		}
		s.appenders = appenders
		return nil
	}
}

// WithChaining enables or disables forwarding to the parent logger.
func WithChaining(enabled bool) Option {
	return func(s *settings) error {
		s.chaining = enabled
		return nil
	}
}

// WithCategoryAppender registers an appender for a category at construction
// time. Categories can also be registered after construction, see
// Logger.RegisterCategoryAppender and ProvideCategory.
func WithCategoryAppender(category string, appender Appender) Option {
	return func(s *settings) error {
		if category == "" {
			return ErrEmptyCategory
		}
		if appender == nil {
			return ErrNilAppender
		}
		if _, exists := s.categories[category]; exists {
			return fmt.Errorf("%w: %s", ErrCategoryAlreadyRegistered, category)
		}
		s.categories[category] = appender
		return nil
	}
}

// WithFeatures supplies optional feature descriptors. Feature conflicts are
// detected when the options are merged, before any logger exists.
func WithFeatures(features ...Feature) Option {
	return func(s *settings) error {
		s.features = append(s.features, features...)
		return nil
	}
}

// WithParent sets the parent logger explicitly. Normally the parent is
// resolved from the enclosing scope by Scope.Apply; this option exists for
// callers composing loggers without scopes. Forwarding still only happens
// when chaining is enabled.
func WithParent(parent *Logger) Option {
	return func(s *settings) error {
		s.parent = parent
		return nil
	}
}

// FromConfig converts a declarative Config into options. Invalid config is
// reported when the options are applied.
func FromConfig(config Config) Option {
	return func(s *settings) error {
		if err := config.Validate(); err != nil {
			return err
		}
		formatter, err := formatterForName(config.Format)
		if err != nil {
			return err
		}
		appenders := make([]Appender, 0, len(config.Appenders))
		for i, appenderConfig := range config.Appenders {
			appender, err := NewAppender(appenderConfig)
			if err != nil {
				return NewAppenderConfigError(i, err)
			}
			appenders = append(appenders, appender)
		}
		s.level = config.Level
		s.formatter = formatter
		s.appenders = appenders
		s.chaining = config.Chaining
		return nil
	}
}

// mergeOptions applies options over the defaults and validates and applies
// features. This is the single path every construction surface goes through,
// so feature conflicts always fail before a logger exists.
func mergeOptions(opts []Option) (*settings, error) {
	s := defaultSettings()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if err := validateFeatures(s.features); err != nil {
		return nil, err
	}
	for _, feature := range s.features {
		if feature.apply == nil {
			continue
		}
		if err := feature.apply(s); err != nil {
			return nil, fmt.Errorf("failed to apply feature %s: %w", feature.Name, err)
		}
	}
	return s, nil
}
