package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"sift/internal/journal"
	"sift/internal/logging"
)

// Event is one normalized filesystem notification.
type Event struct {
	Kind journal.Kind
	Path string
}

// Watcher converts fsnotify notifications into pipeline events.
type Watcher struct {
	root      string
	recursive bool
	fsw       *fsnotify.Watcher
	events    chan Event
	logger    *slog.Logger
}

// New registers the watch root and, when recursive, every directory under it.
func New(root string, recursive bool, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat watch root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch root %s is not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		root:      root,
		recursive: recursive,
		fsw:       fsw,
		events:    make(chan Event, 64),
		logger:    logger.With(logging.String("component", "watcher")),
	}

	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Events returns the normalized event stream. The channel closes when Start's
// context is canceled or the underlying watcher shuts down.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start pumps fsnotify notifications until ctx is canceled. It blocks; run it
// on its own goroutine.
func (w *Watcher) Start(ctx context.Context) {
	defer close(w.events)
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ctx, ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch source error", logging.Error(err))
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	kind, ok := normalizeOp(ev.Op)
	if !ok {
		return
	}

	// New directories must join the watch before files land in them.
	if kind == journal.KindCreated && w.recursive {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warn("failed to watch new directory",
					logging.String("path", ev.Name),
					logging.Error(err),
				)
			}
			return
		}
	}

	select {
	case <-ctx.Done():
	case w.events <- Event{Kind: kind, Path: ev.Name}:
	}
}

func normalizeOp(op fsnotify.Op) (journal.Kind, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return journal.KindCreated, true
	case op.Has(fsnotify.Write):
		return journal.KindModified, true
	case op.Has(fsnotify.Rename), op.Has(fsnotify.Remove):
		// fsnotify reports a rename against the old name; from the pipeline's
		// view the old path is gone. The new name arrives as its own Create.
		return journal.KindDeleted, true
	default:
		return "", false
	}
}

func (w *Watcher) addTree(root string) error {
	if !w.recursive {
		return w.fsw.Add(root)
	}
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		return w.fsw.Add(path)
	})
}
