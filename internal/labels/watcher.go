package labels

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads and recompiles the labels config when the file changes on
// disk. Each successful reload delivers a fresh RuleSet on Updates; the
// previous RuleSet is never mutated.
type Watcher struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	updates chan *RuleSet
}

// NewWatcher starts watching the labels config file at path. Watching the
// parent directory rather than the file itself survives editors that replace
// the file on save.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		path:    path,
		logger:  logger,
		watcher: fsw,
		updates: make(chan *RuleSet, 1),
	}, nil
}

// Updates returns the channel on which recompiled rule sets are delivered.
func (w *Watcher) Updates() <-chan *RuleSet {
	return w.updates
}

// Run processes file events until ctx is cancelled. Reload errors are logged
// and skipped; the last good RuleSet stays in effect at the consumer.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.updates)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("labels config watcher error", "error", err)
		}
	}
}

// Close stops the underlying file watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) reload(ctx context.Context) {
	doc, err := LoadDocument(w.path)
	if err != nil {
		w.logger.Warn("labels config reload failed, keeping previous rules", "path", w.path, "error", err)
		return
	}
	rs, err := Compile(doc)
	if err != nil {
		w.logger.Warn("labels config recompile failed, keeping previous rules", "path", w.path, "error", err)
		return
	}

	// Drop a stale pending update so the consumer always sees the latest.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- rs:
		w.logger.Info("labels config reloaded", "path", w.path)
	case <-ctx.Done():
	}
}
