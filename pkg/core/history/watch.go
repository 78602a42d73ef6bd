package history

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the history file at path whenever it changes on disk.
//
// The parent directory is watched rather than the file itself so editors and
// capture tools that replace the file atomically are still picked up. Reloaded
// histories are delivered on the returned channel; a slow reader only ever
// sees the newest one. Reload errors go to onErr (if non-nil) and leave the
// channel untouched. The channel is closed when ctx is done.
func Watch(ctx context.Context, path string, onErr func(error)) (<-chan *History, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan *History, 1)
	report := func(err error) {
		if onErr != nil {
			onErr(err)
		}
	}

	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				report(err)
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				h, err := Load(abs)
				if err != nil {
					report(err)
					continue
				}
				// Drop a pending, older history so the reader gets the latest.
				select {
				case <-out:
				default:
				}
				out <- h
			}
		}
	}()

	return out, nil
}
