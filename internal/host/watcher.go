package host

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a fixed set of files.
//
// It watches the parent directories rather than the files themselves, so
// files replaced by rename (atomic writes, most editors) stay watched.
type Watcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]bool
	onChange func(path string)
	logger   *log.Logger
}

// NewWatcher creates a watcher for paths. onChange is called with the
// absolute path for every write, create or rename that touches one of them.
func NewWatcher(paths []string, onChange func(path string), logger *log.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fsWatcher,
		files:    make(map[string]bool, len(paths)),
		onChange: onChange,
		logger:   logger,
	}

	dirs := make(map[string]bool)

	for _, path := range paths {
		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			_ = fsWatcher.Close()

			return nil, fmt.Errorf("resolving %s: %w", path, absErr)
		}

		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if addErr := fsWatcher.Add(dir); addErr != nil {
			_ = fsWatcher.Close()

			return nil, fmt.Errorf("watching %s: %w", dir, addErr)
		}

		logger.Debug("watching directory", "dir", dir)
	}

	return w, nil
}

// Run delivers change notifications until ctx is cancelled, then closes
// the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			name := filepath.Clean(event.Name)
			if !w.files[name] {
				continue
			}

			w.logger.Debug("file changed", "path", name, "op", event.Op.String())
			w.onChange(name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("watch error", "err", err)

		case <-ctx.Done():
			return nil
		}
	}
}
