package logward

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatter(t *testing.T) {
	formatted := TextFormatter{}.Format(LevelWarn, "http", "slow response")
	assert.Equal(t, "WARN [http] slow response", formatted)
}

func TestJSONFormatter(t *testing.T) {
	formatted := JSONFormatter{}.Format(LevelInfo, "db", "connected")
	assert.JSONEq(t, `{"level":"INFO","category":"db","message":"connected"}`, formatted)
}

func TestStructuredFormatter(t *testing.T) {
	formatted := StructuredFormatter{}.Format(LevelError, "auth", "denied")
	lines := strings.Split(formatted, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ERROR auth", lines[0])
	assert.Equal(t, "  Message: denied", lines[1])
}

func TestFormatterFuncSatisfiesFormatter(t *testing.T) {
	var formatter Formatter = FormatterFunc(func(level Level, category, message string) string {
		return category + "/" + message
	})
	assert.Equal(t, "db/ping", formatter.Format(LevelDebug, "db", "ping"))
}

func TestFormatterForName(t *testing.T) {
	for name, expected := range map[string]Formatter{
		"text":       TextFormatter{},
		"json":       JSONFormatter{},
		"structured": StructuredFormatter{},
	} {
		formatter, err := formatterForName(name)
		require.NoError(t, err)
		assert.Equal(t, expected, formatter)
	}

	_, err := formatterForName("xml")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
