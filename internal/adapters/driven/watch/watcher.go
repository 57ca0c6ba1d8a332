package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/logger"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 200 * time.Millisecond

var errWatcherClosed = errors.New("watcher closed")

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher waits for changes to a set of files.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce means DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// WaitForChange blocks until one of paths is created, written, removed or
// renamed, and returns it. Further events within the debounce window are
// absorbed.
func (w *Watcher) WaitForChange(ctx context.Context, paths []domain.Path) (domain.Path, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("%w: nothing to watch", domain.ErrInvalidInput)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return "", fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	watched := make(map[string]domain.Path, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p.String())
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", p, err)
		}
		watched[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	added := make(map[string]bool, len(dirs))
	for dir := range dirs {
		if err := addDir(fsw, dir, added); err != nil {
			return "", err
		}
	}
	logger.Debug("Watching %d files in %d directories", len(watched), len(added))

	var (
		changed domain.Path
		found   bool
		timer   <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return "", errWatcherClosed
			}
			p, relevant := handleEvent(watched, event)
			if !relevant {
				continue
			}
			logger.Debug("Change detected: %s (%s)", p, event.Op)
			if !found {
				changed, found = p, true
			}
			timer = time.After(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return "", errWatcherClosed
			}
			return "", fmt.Errorf("watch: %w", err)

		case <-timer:
			return changed, nil
		}
	}
}

// handleEvent maps an event to a watched path. Chmod events are ignored.
// addDir watches dir, or its nearest existing ancestor when dir does not
// exist yet.
func addDir(fsw *fsnotify.Watcher, dir string, added map[string]bool) error {
	for {
		if added[dir] {
			return nil
		}
		err := fsw.Add(dir)
		if err == nil {
			added[dir] = true
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Warn("Directory %s does not exist, watching %s instead", dir, parent)
		dir = parent
	}
}

func handleEvent(watched map[string]domain.Path, event fsnotify.Event) (domain.Path, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return "", false
	}
	p, ok := watched[abs]
	return p, ok
}
