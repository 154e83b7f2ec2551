package logward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLevelOrdering(t *testing.T) {
	assert.True(t, LevelDebug < LevelInfo)
	assert.True(t, LevelInfo < LevelWarn)
	assert.True(t, LevelWarn < LevelError)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "LEVEL(42)", Level(42).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"err", LevelError},
		{" Error ", LevelError},
	}
	for _, tt := range tests {
		level, err := ParseLevel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, level, tt.input)
	}

	_, err := ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestLevelTextRoundTrip(t *testing.T) {
	for _, level := range []Level{LevelDebug, LevelInfo, LevelWarn, LevelError} {
		text, err := level.MarshalText()
		require.NoError(t, err)

		var parsed Level
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, level, parsed)
	}

	_, err := Level(42).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestLevelYAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(LevelWarn)
	require.NoError(t, err)
	assert.Equal(t, "WARN\n", string(data))

	var level Level
	require.NoError(t, yaml.Unmarshal([]byte("error"), &level))
	assert.Equal(t, LevelError, level)

	assert.Error(t, yaml.Unmarshal([]byte("loud"), &level))
}
