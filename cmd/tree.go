package cmd

import (
	"strings"

	"github.com/toprak/run/pkg/utils/fileutils"
)

// renderTree draws tree with box-drawing connectors, one entry per line.
func renderTree(tree *fileutils.FSTree) string {
	var b strings.Builder
	var prefixes []string

	tree.Traverse(func(node *fileutils.FSNode, depth int) {
		name := node.Name
		if node.IsDir {
			name += "/"
		}

		if depth == 0 {
			b.WriteString(name + "\n")
			prefixes = append(prefixes, "")
			return
		}

		prefix := prefixes[len(prefixes)-1]
		siblings := node.Parent.Children
		last := siblings[len(siblings)-1] == node

		connector, indent := "├── ", "│   "
		if last {
			connector, indent = "└── ", "    "
		}

		b.WriteString(prefix + connector + name + "\n")
		prefixes = append(prefixes, prefix+indent)
	}, func(*fileutils.FSNode, int) {
		prefixes = prefixes[:len(prefixes)-1]
	})

	return b.String()
}
