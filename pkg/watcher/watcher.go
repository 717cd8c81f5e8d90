package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/toprak/run/pkg/utils/set"
)

// Event is a batch of paths that changed within one debounce window.
type Event struct {
	Reason string
	Paths  []string
}

// New watches every directory under roots, skipping directories whose base
// name is in skip.
func New(roots []string, skip []string, debounce time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher:  w,
		debounce: debounce,
		roots:    roots,
		skip:     skip,
		Events:   make(chan Event, 64),
		Errors:   make(chan error, 64),
	}, nil
}

type Watcher struct {
	Events chan Event
	Errors chan error

	watcher  *fsnotify.Watcher
	debounce time.Duration

	roots   []string
	skip    []string
	watched *set.Set[string]
}

func (w *Watcher) Start(ctx context.Context) error {
	w.watched = set.New[string]()
	for _, root := range w.roots {
		if err := w.addPath(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	go w.loop(ctx)

	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending = set.New[string]()
	)

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
	}

	flush := func(reason string) {
		if pending.Len() == 0 {
			return
		}
		paths := set.Sorted(pending, nil)
		pending.Clear()

		trySend(w.Events, Event{Reason: reason, Paths: paths})
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				w.addDirectoryIfNeeded(ev.Name)
			}
			pending.Add(ev.Name)
			resetTimer()

		case <-timerCh:
			timer = nil
			timerCh = nil
			flush(fmt.Sprintf("file change (%s quiet)", w.debounce))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			trySend(w.Errors, fmt.Errorf("watch error: %w", err))
		}
	}
}

func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

func (w *Watcher) addPath(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.addWatch(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && slices.Contains(w.skip, d.Name()) {
			return filepath.SkipDir
		}

		return w.addWatch(path)
	})
}

func (w *Watcher) addWatch(path string) error {
	normalized := filepath.Clean(path)
	if w.watched.Has(normalized) {
		return nil
	}
	if err := w.watcher.Add(normalized); err != nil {
		return err
	}
	w.watched.Add(normalized)
	return nil
}

func (w *Watcher) addDirectoryIfNeeded(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if slices.Contains(w.skip, filepath.Base(path)) {
		return
	}
	if err := w.addPath(path); err != nil {
		trySend(w.Errors, fmt.Errorf("failed to watch new directory: %w", err))
	}
}

// trySend drops value when ch is full.
func trySend[T any](ch chan<- T, value T) {
	select {
	case ch <- value:
	default:
	}
}
