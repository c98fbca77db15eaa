package engine

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces editor save bursts into one reformat.
const debounceDelay = 100 * time.Millisecond

// Watch reformats chisel files under the given paths whenever they change,
// until the context is canceled. onResult is called after each reformat.
func (e *Engine) Watch(ctx context.Context, paths []string, onResult func(FileResult)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, p := range paths {
		if err := addRecursive(watcher, p); err != nil {
			return err
		}
	}

	pending := make(map[string]bool)
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	flush := func() {
		for path := range pending {
			delete(pending, path)
			res := e.FormatFile(path, true)
			// A self-inflicted write event follows; formatting is
			// idempotent so the second run is a no-op.
			if onResult != nil {
				onResult(res)
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-fire:
			flush()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Newly created directories need watching too.
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			if !strings.HasSuffix(event.Name, Extension) {
				continue
			}
			pending[event.Name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watch error", "error", err)
		}
	}
}

// addRecursive watches a path and, for directories, every non-hidden
// subdirectory.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The path may have vanished between event and walk.
			return nil //nolint:nilerr // best-effort watching
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); strings.HasPrefix(name, ".") && path != root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
