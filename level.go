package logward

import (
	"fmt"
	"strings"
)

// Level represents the severity of a log entry. Levels are totally ordered:
// LevelDebug < LevelInfo < LevelWarn < LevelError. A logger only dispatches
// entries whose level is at or above its configured minimum.
type Level int

const (
	// LevelDebug is for verbose diagnostic information.
	LevelDebug Level = iota
	// LevelInfo is for normal operational events.
	LevelInfo
	// LevelWarn is for unexpected conditions that don't prevent operation.
	LevelWarn
	// LevelError is for failures that affect functionality.
	LevelError
)

// String returns the uppercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel parses a level name (case-insensitive). It accepts the common
// aliases "warning" and "err".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// MarshalText implements encoding.TextMarshaler so levels serialize as their
// names in YAML, TOML and JSON configuration files.
func (l Level) MarshalText() ([]byte, error) {
	if l < LevelDebug || l > LevelError {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler. yaml.v3 ignores encoding.TextMarshaler,
// so levels need their own hook to serialize as names rather than ints.
func (l Level) MarshalYAML() (interface{}, error) {
	if l < LevelDebug || l > LevelError {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}
	return l.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Level) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	return l.UnmarshalText([]byte(name))
}
