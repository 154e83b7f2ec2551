package feeders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envTestConfig struct {
	Name    string `env:"NAME"`
	Port    int    `env:"PORT"`
	Verbose bool   `env:"VERBOSE"`
	Skipped string
	Nested  envNested
}

type envNested struct {
	Timeout int `env:"TIMEOUT"`
}

func TestEnvFeederFeedsTaggedFields(t *testing.T) {
	t.Setenv("APP_NAME", "logward")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_VERBOSE", "true")
	t.Setenv("APP_TIMEOUT", "30")

	cfg := envTestConfig{}
	require.NoError(t, NewEnvFeeder("app").Feed(&cfg))

	assert.Equal(t, "logward", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 30, cfg.Nested.Timeout)
	assert.Empty(t, cfg.Skipped, "untagged fields are left alone")
}

func TestEnvFeederUnsetVariablesLeaveValues(t *testing.T) {
	cfg := envTestConfig{Name: "existing", Port: 42}
	require.NoError(t, NewEnvFeeder("UNSET_PREFIX").Feed(&cfg))
	assert.Equal(t, "existing", cfg.Name)
	assert.Equal(t, 42, cfg.Port)
}

func TestEnvFeederBadValue(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-number")
	cfg := envTestConfig{}
	err := NewEnvFeeder("app").Feed(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Port")
}

func TestEnvFeederValidation(t *testing.T) {
	assert.ErrorIs(t, NewEnvFeeder("").Feed(&envTestConfig{}), ErrEmptyPrefix)
	assert.ErrorIs(t, NewEnvFeeder("app").Feed(envTestConfig{}), ErrInvalidStructure)
	assert.ErrorIs(t, NewEnvFeeder("app").Feed(nil), ErrInvalidStructure)
}
