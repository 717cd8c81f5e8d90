package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/toprak/run/pkg/events"
)

// PackageDescriptor is the file whose presence marks a directory as an
// existing project.
const PackageDescriptor = "package.json"

// Result records what a materialization did to the tree.
type Result struct {
	Root             string
	Config           Config
	DirsCreated      []string
	FilesWritten     []string
	FilesSubstituted []string
	Removed          []string
	Renamed          []string
	Skipped          []string
	Warnings         []error
}

// Materializer turns a Config into a project tree on disk.
type Materializer struct {
	store   Store
	options *options
}

func New(store Store, opts ...Option) *Materializer {
	return &Materializer{
		store:   store,
		options: defaultOptions().apply(opts...),
	}
}

// Materialize builds the project for cfg under root: skeleton, render,
// substitute, prune. Skeleton and render failures are returned, as is a ctx
// that ends before substitution completes. Other substitution and pruning
// problems are reported through the handler and collected in the result.
func (m *Materializer) Materialize(ctx context.Context, cfg Config, root string) (*Result, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := m.validateTarget(root); err != nil {
		return nil, err
	}

	o := m.options
	locks := newPathLocks()
	result := &Result{Root: root, Config: cfg}

	skelRep := events.Reporter{Stage: "skeleton", Handler: o.handler}
	dirs, err := BuildSkeleton(root, cfg.Includes)
	if err != nil {
		skelRep.Error(root, err, "creating directories")
		return result, err
	}
	result.DirsCreated = dirs
	skelRep.Debugf(root, "created %d directories", len(dirs))

	renderRep := events.Reporter{Stage: "render", Handler: o.handler}
	written, err := m.render(ctx, cfg, root, locks)
	result.FilesWritten = written
	if err != nil {
		renderRep.Error(root, err, "rendering templates")
		return result, err
	}
	for _, p := range written {
		renderRep.Debugf(p, "wrote")
	}

	subRep := events.Reporter{Stage: "substitute", Handler: o.handler}
	replacer := NewPlaceholders(cfg, o.packageManager).Replacer()
	changed, err := substitute(ctx, root, replacer, o.workers, locks, subRep)
	result.FilesSubstituted = changed
	switch {
	case err != nil && ctx.Err() != nil:
		// tokens may remain, so the tree must not be reported as built
		subRep.Error(root, err, "substituting placeholders")
		return result, err
	case err != nil:
		// a walk failure leaves files unsubstituted but the tree usable
		subRep.Warn(root, err, "substituting placeholders")
		result.Warnings = append(result.Warnings, err)
	}

	pruneRep := events.Reporter{Stage: "prune", Handler: o.handler}
	report := Prune(root, cfg)
	for _, op := range report.Applied {
		switch op.Kind {
		case OpDelete:
			result.Removed = append(result.Removed, op.Path)
		case OpRename:
			result.Renamed = append(result.Renamed, op.To)
		}
		pruneRep.Debugf(op.Path, "%s", op)
	}
	for _, op := range report.Skipped {
		result.Skipped = append(result.Skipped, op.Path)
		pruneRep.Debugf(op.Path, "skipped %s: not present", op)
	}
	for _, w := range report.Warnings {
		result.Warnings = append(result.Warnings, w)
		pruneRep.Warn(w.Op.Path, w.Err, w.Op.String())
	}

	events.Reporter{Stage: "materialize", Handler: o.handler}.Infof(root, "materialized %s", cfg.ProjectName)

	return result, nil
}

func (m *Materializer) render(ctx context.Context, cfg Config, root string, locks *pathLocks) ([]string, error) {
	return render(ctx, m.store, m.options.manifest(cfg), root, m.options.workers, locks)
}

func (m *Materializer) validateTarget(root string) error {
	if m.options.force {
		return nil
	}

	if _, err := os.Stat(filepath.Join(root, PackageDescriptor)); err == nil {
		return fmt.Errorf("%w: %s already exists in %s (use --force to overwrite)", ErrTargetExists, PackageDescriptor, root)
	}

	return nil
}
