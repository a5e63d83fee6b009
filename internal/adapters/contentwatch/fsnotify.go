// Package contentwatch monitors the portfolio content directory so edits to
// the record files trigger a re-index without a restart.
// Clean Architecture: Adapter implementing ports.ContentWatcher.
package contentwatch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dwern/portfolio-chat/internal/domain/ports"
)

// FSNotifyWatcher implements ports.ContentWatcher using fsnotify.
type FSNotifyWatcher struct {
	watcher    *fsnotify.Watcher
	extensions []string
}

// NewFSNotifyWatcher creates a new content watcher.
func NewFSNotifyWatcher(extensions []string) (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		extensions = []string{".json"}
	}

	return &FSNotifyWatcher{
		watcher:    w,
		extensions: extensions,
	}, nil
}

// Watch starts monitoring the directory and emits events.
func (w *FSNotifyWatcher) Watch(ctx context.Context, dir string) (<-chan ports.ContentEvent, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	events := make(chan ports.ContentEvent, 100)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.isWatchedExtension(event.Name) {
					continue
				}

				var op ports.ContentOperation
				switch {
				case event.Op&fsnotify.Create == fsnotify.Create:
					op = ports.ContentCreated
				case event.Op&fsnotify.Write == fsnotify.Write:
					op = ports.ContentModified
				case event.Op&fsnotify.Remove == fsnotify.Remove:
					op = ports.ContentDeleted
				default:
					continue
				}

				select {
				case events <- ports.ContentEvent{Path: event.Name, Operation: op}:
				case <-ctx.Done():
					return
				}
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *FSNotifyWatcher) isWatchedExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
