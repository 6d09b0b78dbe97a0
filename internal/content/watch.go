package content

import (
	"context"
	"os"
	"time"

	"github.com/lawnchairsociety/heroforge/internal/logger"
)

// Watcher polls file modification times and calls onChange when any watched
// file changes. It is used to reload content packs while a host runs.
type Watcher struct {
	paths     []string
	interval  time.Duration
	onChange  func(path string)
	lastMTime map[string]time.Time
}

// NewWatcher creates a watcher for the given paths and interval.
func NewWatcher(paths []string, interval time.Duration, onChange func(path string)) *Watcher {
	return &Watcher{
		paths:     append([]string(nil), paths...),
		interval:  interval,
		onChange:  onChange,
		lastMTime: make(map[string]time.Time),
	}
}

// WatchPack returns a watcher that reloads the pack when any of its files change.
func WatchPack(p *Pack, interval time.Duration) *Watcher {
	return NewWatcher(p.Paths(), interval, func(path string) {
		logger.Info("Class content changed, reloading", "path", path)
		_ = p.Reload()
	})
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.Scan(true)
	for {
		select {
		case <-ticker.C:
			w.Scan(false)
		case <-ctx.Done():
			return
		}
	}
}

// Scan checks mtimes once. With prime set it only records the current times.
// At most one onChange call is made per scan, for the first changed path.
func (w *Watcher) Scan(prime bool) {
	changed := ""
	for _, p := range w.paths {
		fi, err := os.Stat(p)
		if err != nil {
			// Missing files keep their last known mtime
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if ok && mt.After(last) && changed == "" {
			changed = p
		}
	}
	if !prime && changed != "" && w.onChange != nil {
		w.onChange(changed)
	}
}
