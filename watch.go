package logward

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a logger's configuration whenever its config file changes
// on disk. On every write or create event for the watched path the file is
// re-read, validated, and swapped into the logger via Reconfigure; an entry
// that fails to load or validate leaves the previous configuration in place
// and is reported through the error callback.
type Watcher struct {
	path      string
	envPrefix string
	logger    *Logger
	watcher   *fsnotify.Watcher
	onError   func(error)

	done     chan struct{}
	wg       sync.WaitGroup
	closeMu  sync.Mutex
	closed   bool
	reloadMu sync.Mutex
}

// WatchConfig starts watching path and applies each successful reload to
// logger. The env prefix is passed through to LoadConfigFile. onError may be
// nil; reload failures are then dropped silently.
//
// The parent directory is watched rather than the file itself, so editors
// that replace the file on save (rename-over) keep triggering reloads.
func WatchConfig(path, envPrefix string, logger *Logger, onError func(error)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		path:      path,
		envPrefix: envPrefix,
		logger:    logger,
		watcher:   fsWatcher,
		onError:   onError,
		done:      make(chan struct{}),
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.matches(event) {
				continue
			}
			if err := w.Reload(); err != nil {
				w.reportError(err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(fmt.Errorf("watch error for %s: %w", w.path, err))
		}
	}
}

// matches reports whether an fs event refers to the watched config file.
func (w *Watcher) matches(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create)
}

// Reload re-reads the config file and swaps it into the logger. It can also
// be called directly, e.g. on SIGHUP.
func (w *Watcher) Reload() error {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	cfg, err := LoadConfigFile(w.path, w.envPrefix)
	if err != nil {
		return fmt.Errorf("config reload rejected: %w", err)
	}
	if err := w.logger.Reconfigure(FromConfig(cfg)); err != nil {
		return fmt.Errorf("config reload rejected: %w", err)
	}
	return nil
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// Close stops watching and waits for the event loop to exit. Close is
// idempotent.
func (w *Watcher) Close() error {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close fs watcher: %w", err)
	}
	return nil
}
