package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and hands
// the new config to a callback. Only settings the server consults per
// request (upload limit, request logging) take effect without restart.
type Watcher struct {
	path         string
	onReload     func(*Config)
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	stopChan     chan struct{}
	debounceTime time.Duration
	lastReload   time.Time
}

// NewWatcher creates a watcher for the given config file.
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are seen.
	if err := fsWatcher.Add(filepath.Dir(path)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{
		path:         path,
		onReload:     onReload,
		watcher:      fsWatcher,
		stopChan:     make(chan struct{}),
		debounceTime: 500 * time.Millisecond,
	}, nil
}

// SetDebounceTime adjusts how long rapid successive writes are
// coalesced before a reload.
func (w *Watcher) SetDebounceTime(duration time.Duration) {
	w.debounceTime = duration
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop ends the watch loop and releases the notifier.
func (w *Watcher) Stop() {
	close(w.stopChan)
	if err := w.watcher.Close(); err != nil {
		log.Printf("Error closing config watcher: %v", err)
	}
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Config watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return
	}
	if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
		return
	}

	w.mu.Lock()
	recent := time.Since(w.lastReload) < w.debounceTime
	w.mu.Unlock()
	if recent {
		return
	}

	go func() {
		time.Sleep(w.debounceTime)
		w.reload()
	}()
}

func (w *Watcher) reload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if time.Since(w.lastReload) < w.debounceTime {
		return
	}

	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		log.Printf("Config file no longer exists: %s", w.path)
		return
	}

	log.Printf("Reloading configuration from: %s", w.path)
	config := Load()
	if err := config.Validate(); err != nil {
		log.Printf("Ignoring invalid configuration: %v", err)
		return
	}

	w.lastReload = time.Now()
	w.onReload(config)
}
