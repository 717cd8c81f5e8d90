package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type OpKind string

const (
	OpDelete OpKind = "delete"
	OpRename OpKind = "rename"
)

// Op is a single pruning step. To is set for renames.
type Op struct {
	Kind OpKind
	Path string
	To   string
}

func (o Op) String() string {
	if o.Kind == OpRename {
		return fmt.Sprintf("rename %s -> %s", o.Path, o.To)
	}
	return fmt.Sprintf("delete %s", o.Path)
}

// OpWarning records an op that failed for a reason other than its source
// being absent.
type OpWarning struct {
	Op  Op
	Err error
}

func (w OpWarning) Error() string {
	return fmt.Sprintf("%s: %v", w.Op, w.Err)
}

func (w OpWarning) Unwrap() error {
	return w.Err
}

// PruneReport separates ops that ran, ops whose source was already absent,
// and ops that failed.
type PruneReport struct {
	Applied  []Op
	Skipped  []Op
	Warnings []OpWarning
}

// Err joins every warning, or returns nil if there were none.
func (r *PruneReport) Err() error {
	if len(r.Warnings) == 0 {
		return nil
	}
	errs := make([]error, len(r.Warnings))
	for i, w := range r.Warnings {
		errs[i] = w
	}
	return errors.Join(errs...)
}

// PrunePlan returns the ops that resolve every axis to cfg's variant, followed
// by the README rename. For each axis the unselected variants' outputs are
// deleted before the selected variant is renamed into place.
func PrunePlan(cfg Config) []Op {
	ops := make([]Op, 0, 8)

	for _, axis := range Axes() {
		selected := cfg.Selected(axis[0].Axis)
		for _, v := range axis {
			if v.Name == selected.Name {
				continue
			}
			for _, p := range v.Owns {
				ops = append(ops, Op{Kind: OpDelete, Path: p})
			}
		}
		if selected.Rename != nil {
			ops = append(ops, Op{Kind: OpRename, Path: selected.Rename.From, To: selected.Rename.To})
		}
	}

	ops = append(ops, Op{Kind: OpRename, Path: ReadmeSource, To: ReadmeTarget})
	return ops
}

// Prune applies PrunePlan(cfg) under root. Every op is attempted regardless
// of earlier failures.
func Prune(root string, cfg Config) *PruneReport {
	report := &PruneReport{}

	for _, op := range PrunePlan(cfg) {
		err := applyOp(root, op)
		switch {
		case err == nil:
			report.Applied = append(report.Applied, op)
		case errors.Is(err, fs.ErrNotExist):
			report.Skipped = append(report.Skipped, op)
		default:
			report.Warnings = append(report.Warnings, OpWarning{Op: op, Err: err})
		}
	}

	return report
}

func applyOp(root string, op Op) error {
	src := filepath.Join(root, filepath.FromSlash(op.Path))

	switch op.Kind {
	case OpDelete:
		return os.Remove(src)
	case OpRename:
		// os.Rename on a missing source can report the destination's
		// directory error instead, so check the source first.
		if _, err := os.Lstat(src); err != nil {
			return err
		}
		return os.Rename(src, filepath.Join(root, filepath.FromSlash(op.To)))
	default:
		return fmt.Errorf("unknown op %q", op.Kind)
	}
}
