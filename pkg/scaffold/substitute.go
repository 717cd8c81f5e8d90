package scaffold

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/toprak/run/pkg/events"
	"github.com/toprak/run/pkg/utils/fileutils"
	"github.com/toprak/run/pkg/utils/set"
	"golang.org/x/sync/errgroup"
)

// SkipDirs are never descended into by the substitution pass. They only
// exist when materializing over an existing project.
var SkipDirs = []string{"node_modules", ".git"}

// Substitute replaces placeholder tokens in every text file under root and
// returns the files that changed. A file that cannot be read or written is
// reported at debug level and skipped. Only a failure to walk root or a done
// ctx is returned.
func Substitute(ctx context.Context, root string, p Placeholders, workers int, handler events.Handler) ([]string, error) {
	return substitute(ctx, root, p.Replacer(), workers, newPathLocks(), events.Reporter{Stage: "substitute", Handler: handler})
}

func substitute(ctx context.Context, root string, replacer *strings.Replacer, workers int, locks *pathLocks, rep events.Reporter) ([]string, error) {
	files, err := fileutils.WalkFiles(root, SkipDirs...)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return rewriteAll(ctx, root, set.Sorted(files, IsTextFile), replacer, workers, locks, rep)
}

// rewriteAll rewrites each of rels, relative to root, in parallel. When ctx
// is done no further files are scheduled and ctx's error is returned along
// with the files already changed.
func rewriteAll(ctx context.Context, root string, rels []string, replacer *strings.Replacer, workers int, locks *pathLocks, rep events.Reporter) ([]string, error) {
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}

	var (
		mu      sync.Mutex
		changed = make([]string, 0, len(rels))
	)

	for _, rel := range rels {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			path := filepath.Join(root, rel)

			unlock := locks.lock(path)
			defer unlock()

			ok, err := rewriteFile(path, replacer)
			if err != nil {
				rep.Debugf(filepath.ToSlash(rel), "skipped: %v", err)
				return nil
			}
			if ok {
				mu.Lock()
				changed = append(changed, filepath.ToSlash(rel))
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	slices.Sort(changed)

	if err := ctx.Err(); err != nil {
		return changed, fmt.Errorf("substituting placeholders: %w", err)
	}
	return changed, nil
}

// rewriteFile applies replacer to one file. Files without tokens are not
// rewritten.
func rewriteFile(path string, replacer *strings.Replacer) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	content := string(data)
	replaced := replacer.Replace(content)
	if replaced == content {
		return false, nil
	}

	err = fileutils.AtomicWrite(path, info.Mode().Perm(), func(w io.Writer) error {
		_, err := io.WriteString(w, replaced)
		return err
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
