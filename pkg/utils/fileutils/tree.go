package fileutils

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FSNode represents a file or directory within an FSTree.
// Path is always relative to the WalkTree root; the root node is ".".
type FSNode struct {
	Path  string
	Name  string
	IsDir bool

	Parent   *FSNode
	Children []*FSNode
}

// FSTree is a hierarchical representation of a directory tree.
type FSTree struct {
	Root  *FSNode
	Nodes map[string]*FSNode // keyed by relative Path (filepath.Clean), root is "."
}

type TraverseFunc func(node *FSNode, depth int)

func (t *FSTree) Traverse(enter, leave TraverseFunc) {
	if t == nil || t.Root == nil {
		return
	}
	t.traverseNode(t.Root, enter, leave, 0)
}

func (t *FSTree) traverseNode(node *FSNode, enter, leave TraverseFunc, depth int) {
	if node == nil {
		return
	}

	if enter != nil {
		enter(node, depth)
	}

	for _, child := range node.Children {
		t.traverseNode(child, enter, leave, depth+1)
	}

	if leave != nil {
		leave(node, depth)
	}
}

// WalkTree walks a directory tree and returns a hierarchical representation of files and directories.
// The returned tree always contains a root node with Path ".". Directories whose
// name is in skip are left out along with their contents. Children are sorted
// directories first, then by name.
func WalkTree(root string, skip ...string) (*FSTree, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	rootNode := &FSNode{
		Path:  ".",
		Name:  filepath.Base(abs),
		IsDir: true,
	}

	tree := &FSTree{
		Root:  rootNode,
		Nodes: map[string]*FSNode{".": rootNode},
	}

	var ensureDir func(rel string) *FSNode
	ensureDir = func(rel string) *FSNode {
		rel = filepath.Clean(rel)
		if rel == "." {
			return rootNode
		}

		if n, ok := tree.Nodes[rel]; ok {
			return n
		}

		parentRel := filepath.Dir(rel)
		parent := ensureDir(parentRel)

		n := &FSNode{
			Path:   rel,
			Name:   filepath.Base(rel),
			IsDir:  true,
			Parent: parent,
		}

		parent.Children = append(parent.Children, n)
		tree.Nodes[rel] = n
		return n
	}

	err = filepath.WalkDir(abs, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		rel = filepath.Clean(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() && slices.Contains(skip, d.Name()) {
			return filepath.SkipDir
		}

		parent := ensureDir(filepath.Dir(rel))

		if existing, ok := tree.Nodes[rel]; ok {
			existing.Name = d.Name()
			existing.IsDir = d.IsDir()
			if existing.Parent == nil {
				existing.Parent = parent
				parent.Children = append(parent.Children, existing)
			}
			return nil
		}

		n := &FSNode{
			Path:   rel,
			Name:   d.Name(),
			IsDir:  d.IsDir(),
			Parent: parent,
		}
		parent.Children = append(parent.Children, n)
		tree.Nodes[rel] = n
		return nil
	})

	if err != nil {
		return nil, err
	}

	tree.Traverse(func(node *FSNode, _ int) {
		slices.SortFunc(node.Children, func(a, b *FSNode) int {
			if a.IsDir != b.IsDir {
				if a.IsDir {
					return -1
				}
				return 1
			}
			return strings.Compare(a.Name, b.Name)
		})
	}, nil)

	return tree, nil
}
