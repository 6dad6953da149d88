package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"golf-atlas/utils"
)

// Watch calls onChange whenever the local CSV at path is written or
// replaced, coalescing bursts of events within debounce. It blocks until ctx
// is done.
func Watch(ctx context.Context, path string, debounce time.Duration, logger *utils.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: resolve %q: %w", path, err)
	}
	// Editors often replace the file, so the directory is watched.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: add %q: %w", filepath.Dir(abs), err)
	}
	logger.Info("[watch] Watching %s for changes", abs)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			logger.Info("[watch] %s changed, reloading", filepath.Base(abs))
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("[watch] %v", err)
		}
	}
}
