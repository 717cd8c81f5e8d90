package preview

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/toprak/run/pkg/events"
	"github.com/toprak/run/pkg/watcher"
)

const DefaultDebounce = 150 * time.Millisecond

// IgnorePatterns match editor and OS droppings that never trigger a rebuild.
var IgnorePatterns = []string{"**/*.swp", "**/*.swx", "**/*~", "**/.#*", "**/.DS_Store"}

// relevant reports whether any of paths is outside IgnorePatterns.
func relevant(root string, paths []string) bool {
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return true
		}
		rel = filepath.ToSlash(rel)

		ignored := false
		for _, pattern := range IgnorePatterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				ignored = true
				break
			}
		}
		if !ignored {
			return true
		}
	}
	return false
}

// Watch builds once, then rebuilds whenever files under src change, until
// ctx is done. Build failures are reported and do not stop the loop.
func Watch(ctx context.Context, root string, opts Options) error {
	rep := events.Reporter{Stage: "watch", Handler: opts.Handler}

	if res, err := Build(root, opts); err != nil {
		rep.Error(root, err, "initial build failed")
	} else if opts.OnBuild != nil {
		opts.OnBuild(res)
	}

	w, err := watcher.New([]string{filepath.Join(root, "src")}, nil, DefaultDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Start(ctx); err != nil {
		return err
	}
	rep.Infof(root, "watching src for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Events:
			if !relevant(root, ev.Paths) {
				continue
			}
			rep.Debugf(root, "%s: %d paths", ev.Reason, len(ev.Paths))
			if res, err := Build(root, opts); err != nil {
				rep.Error(root, err, "rebuild failed")
			} else {
				rep.Infof(res.Homepage, "rebuilt")
				if opts.OnBuild != nil {
					opts.OnBuild(res)
				}
			}
		case err := <-w.Errors:
			rep.Warn(root, err, "watcher")
		}
	}
}
