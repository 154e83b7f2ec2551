package logward

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWatchedConfig(t *testing.T, path string, level Level) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Level = level
	require.NoError(t, WriteConfigFile(path, cfg))
}

func TestWatcherReloadAppliesNewConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	writeWatchedConfig(t, path, LevelInfo)

	logger, err := New(WithLevel(LevelInfo))
	require.NoError(t, err)

	watcher, err := WatchConfig(path, "", logger, nil)
	require.NoError(t, err)
	defer watcher.Close()

	writeWatchedConfig(t, path, LevelError)
	require.NoError(t, watcher.Reload())
	assert.Equal(t, LevelError, logger.Level())
}

func TestWatcherPicksUpFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	writeWatchedConfig(t, path, LevelInfo)

	logger, err := New(WithLevel(LevelInfo))
	require.NoError(t, err)

	watcher, err := WatchConfig(path, "", logger, nil)
	require.NoError(t, err)
	defer watcher.Close()

	writeWatchedConfig(t, path, LevelDebug)

	assert.Eventually(t, func() bool {
		return logger.Level() == LevelDebug
	}, 3*time.Second, 10*time.Millisecond, "watcher should apply the rewritten config")
}

func TestWatcherRejectsInvalidReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	writeWatchedConfig(t, path, LevelWarn)

	logger, err := New(WithLevel(LevelWarn))
	require.NoError(t, err)

	var mu sync.Mutex
	var reported []error
	watcher, err := WatchConfig(path, "", logger, func(err error) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, err)
	})
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o644))

	err = watcher.Reload()
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.Equal(t, LevelWarn, logger.Level(), "failed reload leaves the previous configuration in place")
}

func TestWatcherReloadClosesReplacedFileAppender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	writeWatchedConfig(t, path, LevelInfo)

	fileAppender, err := NewFileAppender(AppenderConfig{
		Type: "file",
		File: &FileAppenderConfig{Path: filepath.Join(dir, "app.log")},
	})
	require.NoError(t, err)

	logger, err := New(WithAppenders(fileAppender))
	require.NoError(t, err)

	watcher, err := WatchConfig(path, "", logger, nil)
	require.NoError(t, err)
	defer watcher.Close()

	// The reloaded config carries a console appender; the previous file
	// appender must not keep its handle open.
	require.NoError(t, watcher.Reload())
	assert.ErrorIs(t, fileAppender.Append(LevelInfo, "x", "late"), ErrFileNotOpen)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logging.yaml")
	writeWatchedConfig(t, path, LevelInfo)

	logger, err := New(WithLevel(LevelInfo))
	require.NoError(t, err)

	watcher, err := WatchConfig(path, "", logger, nil)
	require.NoError(t, err)
	defer watcher.Close()

	// A change to an unrelated file in the same directory is not a reload.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("level: ERROR\n"), 0o644))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, LevelInfo, logger.Level())
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logging.yaml")
	writeWatchedConfig(t, path, LevelInfo)

	logger, err := New()
	require.NoError(t, err)

	watcher, err := WatchConfig(path, "", logger, nil)
	require.NoError(t, err)

	require.NoError(t, watcher.Close())
	require.NoError(t, watcher.Close())
}

func TestWatchConfigMissingDirectory(t *testing.T) {
	logger, err := New()
	require.NoError(t, err)

	_, err = WatchConfig(filepath.Join(t.TempDir(), "missing", "logging.yaml"), "", logger, nil)
	assert.Error(t, err)
}
