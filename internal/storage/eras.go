package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jwebster45206/chronicle/pkg/era"
)

// Era operations (filesystem-backed)

// reloadDebounce groups the bursts of events an editor save produces.
const reloadDebounce = 250 * time.Millisecond

// EraFiles serves the built-in eras overlaid by the files in a directory.
// Without a running watcher every call reads the directory; while WatchEras
// runs the result is cached and dropped whenever a file changes.
type EraFiles struct {
	dir     string
	builtin []era.Era
	logger  *slog.Logger

	mu       sync.RWMutex
	watching bool
	cached   []era.Era
	gen      uint64
}

func NewEraFiles(dataDir string, logger *slog.Logger) *EraFiles {
	return &EraFiles{
		dir:     filepath.Join(dataDir, "eras"),
		builtin: era.Default(),
		logger:  logger,
	}
}

// ListEras returns the built-in eras overlaid by the files in
// <dataDir>/eras. Unreadable or invalid files are logged and skipped.
func (f *EraFiles) ListEras(ctx context.Context) ([]era.Era, error) {
	f.mu.RLock()
	cached, gen := f.cached, f.gen
	f.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	eras, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	// A change seen while loading makes this result stale.
	f.mu.Lock()
	if f.watching && f.gen == gen {
		f.cached = eras
	}
	f.mu.Unlock()
	return eras, nil
}

func (f *EraFiles) GetEra(ctx context.Context, id string) (*era.Era, error) {
	eras, err := f.ListEras(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range eras {
		if e.ID == id {
			return &e, nil
		}
	}
	f.logger.Debug("Era not found", "era_id", id)
	return nil, nil
}

func (f *EraFiles) load(ctx context.Context) ([]era.Era, error) {
	loaded, err := era.LoadDir(ctx, f.dir, func(path string, err error) {
		f.logger.Warn("Skipping era file", "path", path, "error", err)
	})
	if err != nil {
		f.logger.Error("Failed to load era files", "dir", f.dir, "error", err)
		return nil, fmt.Errorf("failed to list eras: %w", err)
	}
	return era.Overlay(f.builtin, loaded), nil
}

func (f *EraFiles) invalidate() {
	f.mu.Lock()
	f.cached = nil
	f.gen++
	f.mu.Unlock()
}

// WatchEras caches the era list and reloads it when files in the eras
// directory change. It blocks until ctx is done. A missing directory is
// created so files added later are picked up.
func (f *EraFiles) WatchEras(ctx context.Context) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create eras directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close() // Ignore error in defer
	}()

	if err := watcher.Add(f.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", f.dir, err)
	}

	f.mu.Lock()
	f.watching = true
	f.mu.Unlock()
	f.invalidate()
	defer func() {
		f.mu.Lock()
		f.watching = false
		f.mu.Unlock()
		f.invalidate()
	}()

	f.logger.Info("Watching era files", "dir", f.dir)

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !era.IsDataFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			f.logger.Debug("Era file changed", "path", event.Name, "op", event.Op.String())
			reload = time.After(reloadDebounce)

		case <-reload:
			reload = nil
			f.invalidate()
			f.logger.Info("Era files reloaded", "dir", f.dir)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				f.invalidate()
			}
			f.logger.Warn("Era watcher error", "error", err)
		}
	}
}
