// Package logward provides a small, hierarchical, configurable logging
// facility together with the composition surface to wire it into an
// application: provider bundles, feature descriptors, nested scopes and a
// legacy configuration bridge.
//
// A logger filters by severity, formats each entry exactly once, and fans
// the formatted entry out to an ordered list of appenders, plus an optional
// per-category appender. A logger may chain to the logger of an enclosing
// scope, which applies its own filtering and formatting independently.
//
// Basic usage:
//
//	logger, err := logward.New(
//	    logward.WithLevel(logward.LevelDebug),
//	    logward.WithAppenders(logward.NewConsoleAppender()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger.Info("startup", "listening on :8080")
//
// Composition-root usage goes through scopes and provider bundles instead:
//
//	scope := logward.NewScope()
//	bundle, err := logward.Provide(logward.WithLevel(logward.LevelInfo))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := scope.Apply(bundle); err != nil {
//	    log.Fatal(err)
//	}
//	scope.Logger().Error("boot", "something went wrong")
package logward

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"
)

// Logger dispatches log entries to appenders. It holds a minimum severity,
// one formatter, an ordered default appender list, an optional mapping from
// category to a dedicated appender, and an optional parent reference.
//
// The logger itself performs no I/O and holds no resources; all side effects
// are delegated to appenders. Log and the level wrappers are safe for
// concurrent use.
type Logger struct {
	mu         sync.RWMutex
	level      Level
	formatter  Formatter
	appenders  []Appender
	chaining   bool
	categories map[string]Appender

	// parent is a non-owning reference to the logger of the enclosing
	// scope. Set once at construction, never mutated afterwards.
	parent *Logger
}

// New constructs a logger by merging the supplied options over the defaults
// (INFO threshold, text formatter, one console appender, chaining off).
// Feature conflicts and invalid option values are reported here, before the
// logger exists.
func New(opts ...Option) (*Logger, error) {
	s, err := mergeOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Logger{
		level:      s.level,
		formatter:  s.formatter,
		appenders:  s.appenders,
		chaining:   s.chaining,
		categories: s.categories,
		parent:     s.parent,
	}, nil
}

// Log dispatches one entry. Entries below the minimum level return
// immediately with no side effects of any kind, including forwarding;
// otherwise the entry is formatted exactly once and handed to the category
// appender (if one is registered for category) and then to every default
// appender in configuration order.
//
// When chaining is enabled and a parent logger is present, the original
// unformatted call of a dispatched entry is forwarded to the parent, which
// applies its own filtering and formatting independently.
//
// A failing appender does not stop dispatch to the remaining appenders.
func (l *Logger) Log(level Level, category, message string) {
	l.mu.RLock()
	minimum := l.level
	formatter := l.formatter
	appenders := l.appenders
	chaining := l.chaining
	categoryAppender := l.categories[category]
	l.mu.RUnlock()

	if level < minimum {
		return
	}

	formatted := formatter.Format(level, category, message)
	if categoryAppender != nil {
		_ = categoryAppender.Append(level, category, formatted)
	}
	for _, appender := range appenders {
		_ = appender.Append(level, category, formatted)
	}

	if chaining && l.parent != nil {
		l.parent.Log(level, category, message)
	}
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(category, message string) {
	l.Log(LevelDebug, category, message)
}

// Info logs a message at INFO level.
func (l *Logger) Info(category, message string) {
	l.Log(LevelInfo, category, message)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(category, message string) {
	l.Log(LevelWarn, category, message)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(category, message string) {
	l.Log(LevelError, category, message)
}

// RegisterCategoryAppender registers a dedicated appender for a category on
// an already-constructed logger. Registration is additive: the category
// appender is invoked in addition to the default list, and entries are never
// removed. Registering the same category twice is a configuration error.
func (l *Logger) RegisterCategoryAppender(category string, appender Appender) error {
	if category == "" {
		return ErrEmptyCategory
	}
	if appender == nil {
		return ErrNilAppender
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.categories[category]; exists {
		return fmt.Errorf("%w: %s", ErrCategoryAlreadyRegistered, category)
	}
	l.categories[category] = appender
	return nil
}

// CategoryAppender returns the appender registered for category, or nil.
func (l *Logger) CategoryAppender(category string) Appender {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.categories[category]
}

// Parent returns the parent logger, or nil when the logger is not chained to
// an enclosing scope.
func (l *Logger) Parent() *Logger {
	return l.parent
}

// Level returns the current minimum severity.
func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// Reconfigure rebuilds the logger's threshold, formatter, appender list and
// chaining flag from the supplied options and swaps them in atomically.
// Category registrations and the parent reference survive reconfiguration.
//
// Appenders dropped by the swap are flushed and, where they implement
// io.Closer, closed, so a config reload does not leak the previous file
// handles. An appender instance carried into the new list is left alone.
//
// This is the mutable configuration-provider extension used by the config
// watcher; loggers that are never reconfigured behave as immutable.
func (l *Logger) Reconfigure(opts ...Option) error {
	s, err := mergeOptions(opts)
	if err != nil {
		return err
	}

	l.mu.Lock()
	replaced := l.appenders
	l.level = s.level
	l.formatter = s.formatter
	l.appenders = s.appenders
	l.chaining = s.chaining
	l.mu.Unlock()

	for _, appender := range replaced {
		if appenderRetained(s.appenders, appender) {
			continue
		}
		_ = appender.Flush()
		if closer, ok := appender.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	return nil
}

// appenderRetained reports whether appender also appears in current.
// Comparing interface values with uncomparable dynamic types (AppenderFunc)
// panics, so equality is gated on comparability.
func appenderRetained(current []Appender, appender Appender) bool {
	if appender == nil || !reflect.TypeOf(appender).Comparable() {
		return false
	}
	for _, candidate := range current {
		if candidate == nil || !reflect.TypeOf(candidate).Comparable() {
			continue
		}
		if candidate == appender {
			return true
		}
	}
	return false
}

// Flush flushes every default appender and every category appender. A
// failing appender does not stop the remaining ones from flushing; the
// collected errors are returned joined.
func (l *Logger) Flush() error {
	l.mu.RLock()
	appenders := make([]Appender, 0, len(l.appenders)+len(l.categories))
	appenders = append(appenders, l.appenders...)
	for _, appender := range l.categories {
		appenders = append(appenders, appender)
	}
	l.mu.RUnlock()

	var errs []error
	for _, appender := range appenders {
		if err := appender.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
