package catalog

import (
	"context"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Source holds the catalog handed to new sessions. Sessions keep the
// catalog they started with; a reload only affects later ones.
type Source struct {
	current atomic.Pointer[Catalog]
}

// NewSource creates a Source serving c.
func NewSource(c *Catalog) *Source {
	s := &Source{}
	s.current.Store(c)
	return s
}

// Current returns the latest catalog.
func (s *Source) Current() *Catalog { return s.current.Load() }

// Store replaces the catalog.
func (s *Source) Store(c *Catalog) { s.current.Store(c) }

// ReloadFunc re-reads the catalog from its origin.
type ReloadFunc func(ctx context.Context) (*Catalog, error)

// Watcher reloads a catalog file into a Source when it changes on disk.
type Watcher struct {
	File string

	source   *Source
	reload   ReloadFunc
	debounce time.Duration
	done     chan struct{}
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher for file. It watches the parent directory so
// editors that replace the file by rename are still seen.
func NewWatcher(file string, source *Source, reload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		File:     filepath.Clean(file),
		source:   source,
		reload:   reload,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the loop to exit.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.File) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.apply()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("catalog: watch error: %v", err)
		}
	}
}

func (w *Watcher) apply() {
	c, err := w.reload(context.Background())
	if err != nil {
		log.Printf("catalog: reload %s failed, keeping previous catalog: %v", w.File, err)
		return
	}
	w.source.Store(c)
	log.Printf("catalog: reloaded %s (%d projects)", w.File, c.Len())
}
