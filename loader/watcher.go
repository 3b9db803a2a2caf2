package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jonwraymond/detectorsearch/catalog"
)

// Event reports one applied change to the watched definitions directory.
type Event struct {
	Path    string
	Indexed int
	Removed int
	Error   error
}

// Watcher keeps a catalog in sync with a definitions directory.
type Watcher struct {
	loader   *Loader
	catalog  *catalog.Catalog
	watchDir string
	watcher  *fsnotify.Watcher
	events   chan Event
	debounce time.Duration

	mu      sync.Mutex
	fileIDs map[string][]string
}

// NewWatcher creates a watcher over the given definitions directory.
func NewWatcher(loader *Loader, cat *catalog.Catalog, watchDir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		loader:   loader,
		catalog:  cat,
		watchDir: watchDir,
		watcher:  fsWatcher,
		events:   make(chan Event, 10),
		debounce: 100 * time.Millisecond,
		fileIDs:  make(map[string][]string),
	}, nil
}

// Events returns the channel that receives applied change events. The
// channel is closed once the watch loop has exited, after Stop or context
// cancellation.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start loads the existing definition files, then begins watching the
// directory for changes until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.loadExisting(); err != nil {
		return fmt.Errorf("failed to load existing definitions: %w", err)
	}

	if err := w.watcher.Add(w.watchDir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.watchDir, err)
	}

	go w.run(ctx)
	return nil
}

// Stop closes the underlying filesystem watcher. Closing it ends the watch
// loop, which then closes the events channel; Stop never touches the channel
// itself, so in-flight updates cannot race with the close.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) loadExisting() error {
	entries, err := os.ReadDir(w.watchDir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !isDefinitionFile(e.Name()) {
			continue
		}

		path := filepath.Join(w.watchDir, e.Name())
		detectors, err := w.loader.LoadFile(path)
		if err != nil {
			return err
		}
		if err := w.catalog.IndexBatch(detectors); err != nil {
			return err
		}

		ids := make([]string, len(detectors))
		for i, d := range detectors {
			ids[i] = d.ID
		}
		w.mu.Lock()
		w.fileIDs[path] = ids
		w.mu.Unlock()
	}

	return nil
}

func (w *Watcher) run(ctx context.Context) {
	// The loop is the only sender on w.events, so it owns the close.
	defer close(w.events)

	// Debounce map to avoid multiple events for the same file.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isDefinitionFile(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				pending[event.Name] = time.Now()
			} else if event.Op&fsnotify.Remove != 0 {
				w.handleRemove(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.events <- Event{Error: err}

		case <-ticker.C:
			now := time.Now()
			for path, timestamp := range pending {
				if now.Sub(timestamp) >= w.debounce {
					w.handleUpdate(path)
					delete(pending, path)
				}
			}
		}
	}
}

func (w *Watcher) handleUpdate(path string) {
	detectors, err := w.loader.LoadFile(path)
	if err != nil {
		w.events <- Event{Path: path, Error: err}
		return
	}

	ids := make([]string, len(detectors))
	current := make(map[string]bool, len(detectors))
	for i, d := range detectors {
		ids[i] = d.ID
		current[d.ID] = true
	}

	// Detectors dropped from the file are removed from the catalog before
	// the survivors are re-indexed.
	w.mu.Lock()
	previous := w.fileIDs[path]
	w.fileIDs[path] = ids
	w.mu.Unlock()

	removed := 0
	for _, id := range previous {
		if !current[id] {
			if err := w.catalog.Delete(id); err == nil {
				removed++
			}
		}
	}

	if err := w.catalog.IndexBatch(detectors); err != nil {
		w.events <- Event{Path: path, Error: err}
		return
	}

	w.events <- Event{Path: path, Indexed: len(detectors), Removed: removed}
}

func (w *Watcher) handleRemove(path string) {
	w.mu.Lock()
	ids := w.fileIDs[path]
	delete(w.fileIDs, path)
	w.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if err := w.catalog.Delete(id); err == nil {
			removed++
		}
	}

	w.events <- Event{Path: path, Removed: removed}
}
