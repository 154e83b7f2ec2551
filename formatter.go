package logward

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Formatter converts a log call into the single string handed to every
// appender. Formatters must be pure: the same (level, category, message)
// input always produces the same output, and formatting has no side effects.
type Formatter interface {
	Format(level Level, category, message string) string
}

// FormatterFunc adapts a plain function to the Formatter interface, so a
// callable and an object-shaped formatter satisfy the same contract.
type FormatterFunc func(level Level, category, message string) string

// Format calls f.
func (f FormatterFunc) Format(level Level, category, message string) string {
	return f(level, category, message)
}

// TextFormatter renders entries as a single human-readable line:
//
//	INFO [category] message
type TextFormatter struct{}

// Format renders the entry as text.
func (TextFormatter) Format(level Level, category, message string) string {
	return fmt.Sprintf("%s [%s] %s", level, category, message)
}

// JSONFormatter renders entries as a compact JSON object with level,
// category and message fields.
type JSONFormatter struct{}

// Format renders the entry as JSON.
func (JSONFormatter) Format(level Level, category, message string) string {
	data, err := json.Marshal(struct {
		Level    string `json:"level"`
		Category string `json:"category"`
		Message  string `json:"message"`
	}{level.String(), category, message})
	if err != nil {
		// Marshaling three strings cannot fail; fall back to text just in case.
		return TextFormatter{}.Format(level, category, message)
	}
	return string(data)
}

// StructuredFormatter renders entries in an indented multi-line format.
type StructuredFormatter struct{}

// Format renders the entry in structured form.
func (StructuredFormatter) Format(level Level, category, message string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s %s\n", level, category)
	fmt.Fprintf(&builder, "  Message: %s", message)
	return builder.String()
}

// formatterForName maps a config format name to its formatter.
func formatterForName(name string) (Formatter, error) {
	switch name {
	case "text":
		return TextFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "structured":
		return StructuredFormatter{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, name)
	}
}
