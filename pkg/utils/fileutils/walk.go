package fileutils

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/toprak/run/pkg/utils/set"
)

// WalkFiles walks a directory tree and returns a set of files relative to
// root. Directories whose name is in skip are left out with their contents.
func WalkFiles(root string, skip ...string) (files *set.Set[string], err error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	files = set.New[string]()

	err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}

		if d.IsDir() && rel != "." && slices.Contains(skip, d.Name()) {
			return filepath.SkipDir
		}
		if d.Type().IsRegular() {
			files.Add(rel)
		}

		return nil
	})

	return files, err
}
