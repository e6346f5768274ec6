// Package watch observes a project's data directory for out-of-process
// modifications.
//
// This is an interactive aid for an operator; the reload ledger remains the
// protocol by which the external editor detects changes. Filesystem watch
// APIs can drop rapid-fire events, which is exactly why the ledger exists.
package watch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Run watches dir and invokes fn for every event until ctx is done.
func Run(ctx context.Context, dir string, fn func(fsnotify.Event)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = w.Close()
	}()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			fn(event)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error on %s: %w", dir, err)
		}
	}
}
