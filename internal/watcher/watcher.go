// Package watcher monitors a feed's backing file and notifies the TUI to
// reload it.
//
// The parent directory is watched rather than the file itself: most
// editors save by writing a temp file and renaming it over the original,
// which drops a watch placed on the old inode. Events are filtered down to
// the one file name, so busy directories only cost the filtering.
package watcher

import (
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watched file has changed.
type Event struct{}

// Watch monitors path for writes, creates, renames and removals and sends
// Event values on the returned channel. Rapid bursts are coalesced via the
// debounce window.
//
// Call the returned stop function to tear down the watcher.
func Watch(path string, debounce time.Duration, logger *log.Logger) (<-chan Event, func(), error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving watch path: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Jitter spreads reloads when several instances watch the same file.
	jitterRange := debounce / 2

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !relevant(ev, abs) {
					continue
				}
				logger.Debug("feed file changed", "path", ev.Name, "op", ev.Op.String())
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int63n(int64(jitterRange)))
				}
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// relevant reports whether ev concerns the watched file.
func relevant(ev fsnotify.Event, target string) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	if shouldIgnore(ev.Name) {
		return false
	}
	return filepath.Clean(ev.Name) == target
}

// shouldIgnore returns true for editor artefacts next to the file.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#") {
		return true
	}
	return strings.HasSuffix(base, ".lock") || strings.HasSuffix(base, ".tmp")
}
