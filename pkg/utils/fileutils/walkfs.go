package fileutils

import (
	"io/fs"
	"path"
	"strings"

	"github.com/toprak/run/pkg/utils/set"
)

// WalkFilesFS walks a filesystem tree and returns a set of file paths relative to root.
func WalkFilesFS(fsys fs.FS, root string) (*set.Set[string], error) {
	root = path.Clean(root)
	files := set.New[string]()

	err := fs.WalkDir(fsys, root, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if current == root || d.IsDir() {
			return nil
		}

		rel := current
		if root != "." {
			rel = strings.TrimPrefix(current, root+"/")
		}
		files.Add(rel)
		return nil
	})

	return files, err
}
