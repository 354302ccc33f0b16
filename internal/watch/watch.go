// Package watch re-runs the layout whenever the items file changes on
// disk. Editors replace files by rename, so the watch is placed on the
// parent directory and events are debounced before triggering a
// recomputation.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when no debounce interval is configured.
const DefaultDebounce = 250 * time.Millisecond

// Watcher invokes OnChange after the watched file settles.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Logger   *slog.Logger

	// OnChange runs on the watcher goroutine after each debounced
	// change burst. It must not block for long.
	OnChange func()
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

// Run watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	dir := filepath.Dir(w.Path)
	if err := fsw.Add(dir); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w.logger().Info("watching items file", "path", w.Path, "debounce", debounce)

	target, _ := filepath.Abs(w.Path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(ev.Name)
			if abs != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Restart the quiet-period timer on every event in the
			// burst; recompute once it goes silent.
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.logger().Debug("items file changed", "path", w.Path)
			if w.OnChange != nil {
				w.OnChange()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger().Warn("watch error", "error", err)
		}
	}
}
