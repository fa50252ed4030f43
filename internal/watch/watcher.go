// Package watch reports Markdown file changes inside a vault.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/vaultgraph/internal/storage"
)

// Change kinds passed to a Callback.
const (
	Created = "created"
	Updated = "updated"
	Deleted = "deleted"
)

// Callback is called once per changed note after the debounce window.
// path is relative to the vault root and uses forward slashes.
type Callback func(kind string, path string)

// Watch starts an fsnotify watcher on the vault root and reports note changes
// until ctx is cancelled. Events for the same path arriving within debounce of
// each other are merged into one callback. A zero debounce reports every event
// immediately.
//
// Directories created at runtime are added to the watch list, and the notes
// they already contain are reported as created.
func Watch(ctx context.Context, root string, debounce time.Duration, logger *slog.Logger, cb Callback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	if err := addDirsRecursive(ctx, w, root); err != nil {
		return fmt.Errorf("watch: add %s: %w", root, err)
	}

	logger.Info("watcher: started", slog.String("root", root))

	p := &pending{kinds: make(map[string]string)}
	var timer *time.Timer
	var timerCh <-chan time.Time

	emit := func(kind, rel string) {
		if debounce <= 0 {
			cb(kind, rel)
			return
		}
		p.add(kind, rel)
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			p.flush(cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(ctx, w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", ev.Name))
					}
					notesIn(ctx, root, ev.Name, func(rel string) { emit(Created, rel) })
					continue
				}
			}

			if !storage.IsNote(filepath.Base(ev.Name)) {
				continue
			}
			rel, relErr := relPath(root, ev.Name)
			if relErr != nil {
				continue
			}

			kind := classify(ev.Op)
			if kind == "" {
				continue
			}
			logger.Debug("watcher: event", slog.String("path", rel), slog.String("op", kind))
			emit(kind, rel)

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// classify maps an fsnotify op onto a change kind. fsnotify reports a rename
// on the old path only; the new path arrives as a separate Create.
func classify(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create != 0:
		return Created
	case op&fsnotify.Write != 0:
		return Updated
	case op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return Deleted
	default:
		return ""
	}
}

// pending holds debounced changes keyed by path.
type pending struct {
	kinds map[string]string
}

// add merges kind into the pending change for rel. A note created and then
// written is still created; a note deleted and recreated is updated.
func (p *pending) add(kind, rel string) {
	prev, ok := p.kinds[rel]
	switch {
	case !ok:
		p.kinds[rel] = kind
	case prev == Created && kind == Updated:
	case prev == Created && kind == Deleted:
		delete(p.kinds, rel)
	case prev == Deleted && kind == Created:
		p.kinds[rel] = Updated
	default:
		p.kinds[rel] = kind
	}
}

func (p *pending) flush(cb Callback) {
	paths := make([]string, 0, len(p.kinds))
	for rel := range p.kinds {
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	for _, rel := range paths {
		cb(p.kinds[rel], rel)
	}
	clear(p.kinds)
}

// notesIn calls fn for every note already present under dir, following
// symbolic links like the vault scan does.
func notesIn(ctx context.Context, root, dir string, fn func(rel string)) {
	_ = storage.Walk(ctx, dir, nil, func(abs, _ string) {
		if rel, err := relPath(root, abs); err == nil {
			fn(rel)
		}
	})
}

func relPath(root, abs string) (string, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// addDirsRecursive adds root and every directory the vault scan would descend
// into, including symlinked ones, to the watcher.
func addDirsRecursive(ctx context.Context, w *fsnotify.Watcher, root string) error {
	return storage.Walk(ctx, root, w.Add, nil)
}
