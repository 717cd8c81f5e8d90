package scaffold

import (
	"path/filepath"
	"slices"
	"strings"
)

var textExtensions = []string{".html", ".js", ".ts", ".css", ".json", ".md", ".txt", ".njk"}

// IsTextFile reports whether the placeholder pass should rewrite the file.
func IsTextFile(name string) bool {
	base := filepath.Base(name)

	if slices.Contains(textExtensions, strings.ToLower(filepath.Ext(base))) {
		return true
	}

	return strings.HasSuffix(base, ".template") ||
		strings.Contains(base, ".gitignore") ||
		strings.Contains(base, ".eleventy")
}
