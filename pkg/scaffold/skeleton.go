package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// SkeletonDirs are created under every project root.
var SkeletonDirs = []string{
	"src/scripts",
	"src/styles",
	"config",
	"public",
	"dist",
}

const IncludesDir = "src/_includes"

// BuildSkeleton creates the fixed directory layout under root. Existing
// directories are left alone, so it is safe to call on a built tree.
func BuildSkeleton(root string, includes bool) ([]string, error) {
	dirs := SkeletonDirs
	if includes {
		dirs = append(dirs[:len(dirs):len(dirs)], IncludesDir)
	}

	created := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0755); err != nil {
			return created, fmt.Errorf("%w: %s: %w", ErrSkeleton, dir, err)
		}
		created = append(created, dir)
	}

	return created, nil
}
