// Package watcher watches the chain registry directory and publishes a
// debounced event when a registry file changes.
package watcher

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/walletbridge/internal/log"
	"github.com/zjrosen/walletbridge/internal/pubsub"
	"github.com/zjrosen/walletbridge/internal/registry"
)

// EventType distinguishes watcher events.
type EventType int

const (
	// RegistryChanged means one or more registry files were written.
	RegistryChanged EventType = iota
	// WatcherError carries an fsnotify error.
	WatcherError
)

// Event is published on the watcher's broker.
type Event struct {
	Type EventType
	// Files holds the base names written since the last event.
	Files []string
	Error error
}

// Watcher monitors the registry files in one directory.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	files     []string
	debounce  time.Duration
	broker    *pubsub.Broker[Event]
	done      chan struct{}
	stopped   chan struct{}
	started   bool
	stopOnce  sync.Once
	stopErr   error
}

// Config holds watcher options.
type Config struct {
	Dir         string
	Files       []string
	DebounceDur time.Duration
}

// DefaultConfig watches the two registry files in dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:         dir,
		Files:       []string{registry.ChainsFile, registry.AssetListsFile},
		DebounceDur: 500 * time.Millisecond,
	}
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		dir:       cfg.Dir,
		files:     cfg.Files,
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[Event](),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}, nil
}

// Broker returns the broker events are published on.
func (w *Watcher) Broker() *pubsub.Broker[Event] {
	return w.broker
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	log.Debug(log.CatRegistry, "watching registry", "dir", w.dir)

	w.started = true
	go w.loop()
	return nil
}

// Stop terminates the watcher and closes its broker. It is safe to call
// more than once.
func (w *Watcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopErr = w.fsWatcher.Close()
		if w.started {
			<-w.stopped
		}
		w.broker.Close()
	})
	return w.stopErr
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		changed []string
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}

			base := filepath.Base(event.Name)
			if !slices.Contains(changed, base) {
				changed = append(changed, base)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			slices.Sort(changed)
			log.Debug(log.CatRegistry, "registry changed", "files", changed)
			w.broker.Publish(pubsub.RegistryEvent, Event{Type: RegistryChanged, Files: changed})
			changed = nil

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatRegistry, "watcher error", "error", err)
			w.broker.Publish(pubsub.RegistryEvent, Event{Type: WatcherError, Error: err})

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports writes, creates and renames of watched files.
// Editors that save by renaming a temp file show up as Create.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return slices.Contains(w.files, filepath.Base(event.Name))
}
