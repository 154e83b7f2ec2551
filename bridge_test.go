package logward

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureRootBuildsFromDeclarativeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = LevelWarn

	bundle, err := ConfigureRoot(cfg)
	require.NoError(t, err)

	scope := NewScope()
	require.NoError(t, scope.Apply(bundle))
	assert.Equal(t, LevelWarn, scope.Logger().Level())
}

func TestConfigureRootValidatesFeatures(t *testing.T) {
	_, err := ConfigureRoot(DefaultConfig(), ColorFeature(), MonochromeFeature())
	assert.ErrorIs(t, err, ErrConflictingFeatures)
}

func TestConfigureRootRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "xml"
	_, err := ConfigureRoot(cfg)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestBridgeAndModernSurfaceMix(t *testing.T) {
	// Root configured through the legacy bridge, category through the
	// modern surface, applied together.
	dbAppender := NewTestAppender()
	defaultAppender := NewTestAppender()

	cfg := DefaultConfig()
	cfg.Level = LevelDebug
	root, err := ConfigureRoot(cfg)
	require.NoError(t, err)

	scope := NewScope()
	require.NoError(t, scope.Apply(root))

	logger := scope.Logger()
	require.NoError(t, logger.Reconfigure(WithLevel(LevelDebug), WithAppenders(defaultAppender)))

	child := scope.NewChild()
	require.NoError(t, child.Apply(ConfigureCategory("db", dbAppender)))

	logger.Debug("db", "nested registration works")
	assert.Len(t, dbAppender.Entries(), 1)
	assert.Len(t, defaultAppender.Entries(), 1)
}
