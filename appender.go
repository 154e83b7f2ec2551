package logward

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Appender is a side-effecting consumer of formatted log entries. The logger
// itself performs no I/O; every write goes through an appender. Appenders
// must tolerate concurrent Append calls when the owning logger is shared
// between goroutines.
type Appender interface {
	// Append writes one formatted entry to the appender's destination.
	Append(level Level, category, formatted string) error

	// Flush ensures all buffered entries are written.
	Flush() error
}

// AppenderFunc adapts a plain function to the Appender interface. Flush is a
// no-op for function appenders.
type AppenderFunc func(level Level, category, formatted string) error

// Append calls f.
func (f AppenderFunc) Append(level Level, category, formatted string) error {
	return f(level, category, formatted)
}

// Flush is a no-op.
func (AppenderFunc) Flush() error { return nil }

// NewAppender creates an appender from configuration.
func NewAppender(config AppenderConfig) (Appender, error) {
	switch config.Type {
	case "console":
		appender := NewConsoleAppender()
		if config.Console != nil {
			appender.UseColor = config.Console.UseColor
		}
		return appender, nil
	case "file":
		return NewFileAppender(config)
	case "cloudevents":
		return NewCloudEventsAppender(config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidAppenderType, config.Type)
	}
}

// ConsoleAppender writes entries to standard output, optionally colorizing
// the severity name with ANSI escape codes.
type ConsoleAppender struct {
	// UseColor enables ANSI color codes for the level name.
	UseColor bool

	writer io.Writer
	mu     sync.Mutex
}

// NewConsoleAppender creates a console appender writing to stdout.
func NewConsoleAppender() *ConsoleAppender {
	return &ConsoleAppender{writer: os.Stdout}
}

// Append writes one entry to the console.
func (c *ConsoleAppender) Append(level Level, category, formatted string) error {
	if c.UseColor {
		formatted = colorizeLevel(level) + " " + formatted
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintln(c.writer, formatted); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

// Flush is a no-op for console output.
func (c *ConsoleAppender) Flush() error { return nil }

// colorizeLevel adds ANSI color codes to log levels.
func colorizeLevel(level Level) string {
	switch level {
	case LevelDebug:
		return "\033[36mDEBUG\033[0m" // Cyan
	case LevelInfo:
		return "\033[32mINFO\033[0m" // Green
	case LevelWarn:
		return "\033[33mWARN\033[0m" // Yellow
	case LevelError:
		return "\033[31mERROR\033[0m" // Red
	default:
		return level.String()
	}
}

// WriterAppender writes entries to an arbitrary io.Writer, one line per
// entry. Useful for tests and for plugging in buffers or network streams.
type WriterAppender struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewWriterAppender creates an appender writing to w.
func NewWriterAppender(w io.Writer) *WriterAppender {
	return &WriterAppender{writer: w}
}

// Append writes one entry to the underlying writer.
func (a *WriterAppender) Append(level Level, category, formatted string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := fmt.Fprintln(a.writer, formatted); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// Flush is a no-op; writes are unbuffered.
func (a *WriterAppender) Flush() error { return nil }

// FileAppender writes entries to a file, creating parent directories as
// needed. Entries are appended; rotation is left to external tooling.
type FileAppender struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewFileAppender creates a file appender from configuration and opens the
// target file.
func NewFileAppender(config AppenderConfig) (*FileAppender, error) {
	if config.File == nil {
		return nil, ErrMissingFileConfig
	}
	if config.File.Path == "" {
		return nil, ErrMissingFilePath
	}

	if err := os.MkdirAll(filepath.Dir(config.File.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", filepath.Dir(config.File.Path), err)
	}
	file, err := os.OpenFile(config.File.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", config.File.Path, err)
	}

	return &FileAppender{path: config.File.Path, file: file}, nil
}

// Path returns the path of the underlying log file.
func (f *FileAppender) Path() string { return f.path }

// Append writes one entry to the file.
func (f *FileAppender) Append(level Level, category, formatted string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return ErrFileNotOpen
	}
	if _, err := fmt.Fprintln(f.file, formatted); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", f.path, err)
	}
	return nil
}

// Flush syncs the file to disk.
func (f *FileAppender) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return ErrFileNotOpen
	}
	if err := f.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync file %s: %w", f.path, err)
	}
	return nil
}

// Close flushes and closes the underlying file. Append calls after Close
// return ErrFileNotOpen.
func (f *FileAppender) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	if err != nil {
		return fmt.Errorf("failed to close file %s: %w", f.path, err)
	}
	return nil
}
