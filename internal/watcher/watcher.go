// Package watcher reports changes to an overrides file, coalescing bursts of
// writes into a single notification.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phoenixcorp/lightdesk/internal/log"
)

// DefaultDebounce is how long the file must stay quiet before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Config holds watcher configuration options.
type Config struct {
	// Path is the file to watch. Its directory must exist.
	Path     string
	Debounce time.Duration
}

// DefaultConfig returns a config for path with DefaultDebounce.
func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: DefaultDebounce,
	}
}

// Watcher monitors one file. The parent directory is watched rather than
// the file itself so editors that save by rename are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}
}

// New creates a watcher. Call Start to begin receiving changes.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(cfg.Path),
		debounce:  debounce,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The returned channel receives one value per
// settled burst of changes; notifications are dropped while one is pending.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching overrides file", "path", w.path, "debounce", w.debounce)

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			select {
			case w.onChange <- struct{}{}:
				log.Debug(log.CatWatcher, "Overrides file changed", "path", w.path)
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "File watcher error", err, "path", w.path)

		case <-w.done:
			timer.Stop()
			return
		}
	}
}

// isRelevantEvent accepts writes, creates and renames onto the watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
