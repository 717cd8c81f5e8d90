package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Render writes every entry's template body verbatim to its path under root.
// All bodies are fetched before anything is written, so a missing key fails
// the whole render without touching the tree.
func Render(ctx context.Context, store Store, entries []Entry, root string, workers int) ([]string, error) {
	return render(ctx, store, entries, root, workers, newPathLocks())
}

func render(ctx context.Context, store Store, entries []Entry, root string, workers int, locks *pathLocks) ([]string, error) {
	bodies := make([]string, len(entries))
	for i, e := range entries {
		body, err := store.Fetch(e.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrRender, e.Path, err)
		}
		bodies[i] = body
	}

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	var (
		mu      sync.Mutex
		written = make([]string, 0, len(entries))
	)

	for i, e := range entries {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			dest := filepath.Join(root, filepath.FromSlash(e.Path))

			unlock := locks.lock(dest)
			defer unlock()

			if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
				return fmt.Errorf("%w: creating parent directory for %s: %w", ErrRender, e.Path, err)
			}
			if err := os.WriteFile(dest, []byte(bodies[i]), 0644); err != nil {
				return fmt.Errorf("%w: writing %s: %w", ErrRender, e.Path, err)
			}

			mu.Lock()
			written = append(written, e.Path)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return written, err
	}

	slices.Sort(written)
	return written, nil
}
