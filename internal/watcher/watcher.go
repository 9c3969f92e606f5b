// Package watcher reports changes to the markdown files in the docs directory.
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a batch of
// changes is reported.
const DefaultDebounce = 200 * time.Millisecond

// ChangeCallback receives the sorted names (without .md) of the documents
// created, written, removed or renamed since the previous call.
type ChangeCallback func(names []string)

// Watch starts an fsnotify watcher on dir (non-recursive) and reports
// coalesced document changes to cb until ctx is cancelled. A missing
// directory is logged and nothing is watched.
func Watch(ctx context.Context, dir string, debounce time.Duration, logger *slog.Logger, cb ChangeCallback) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("watcher: docs directory does not exist, not watching", slog.String("root", dir))
			return nil
		}
		return err
	}
	if !info.IsDir() {
		logger.Warn("watcher: docs path is not a directory, not watching", slog.String("root", dir))
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", dir))

	pending := make(map[string]struct{})

	// flushTimer debounces bursts of events into a single callback.
	var flushTimer *time.Timer
	var flushCh <-chan time.Time

	scheduleFlush := func() {
		if flushTimer == nil {
			flushTimer = time.NewTimer(debounce)
			flushCh = flushTimer.C
		} else {
			flushTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if flushTimer != nil {
				flushTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-flushCh:
			flushTimer = nil
			flushCh = nil
			if len(pending) == 0 {
				continue
			}
			names := make([]string, 0, len(pending))
			for n := range pending {
				names = append(names, n)
			}
			sort.Strings(names)
			clear(pending)
			logger.Debug("watcher: documents changed", slog.Any("names", names))
			if cb != nil {
				cb(names)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, relevant := documentName(dir, ev)
			if !relevant {
				continue
			}
			pending[name] = struct{}{}
			scheduleFlush()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// documentName maps an event to a document name. Only markdown files directly
// inside dir are relevant; chmod-only events are ignored.
func documentName(dir string, ev fsnotify.Event) (string, bool) {
	if ev.Op == fsnotify.Chmod {
		return "", false
	}
	if filepath.Dir(ev.Name) != filepath.Clean(dir) {
		return "", false
	}
	base := filepath.Base(ev.Name)
	if !strings.HasSuffix(base, ".md") {
		return "", false
	}
	return strings.TrimSuffix(base, ".md"), true
}
