package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// maxIncludeDepth bounds nested includes so a cycle cannot recurse forever.
const maxIncludeDepth = 8

var (
	includeTag = regexp.MustCompile(`\{%-?\s*include\s+["']([^"']+)["']\s*-?%\}`)
	contentTag = regexp.MustCompile(`\{\{-?\s*content\s*(\|\s*safe\s*)?-?\}\}`)
	titleTag   = regexp.MustCompile(`\{\{-?\s*title(?:\s+or\s+"([^"]*)")?\s*-?\}\}`)
)

// resolveIncludes inlines {% include "name" %} tags with files from dir.
func resolveIncludes(src, dir string, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", fmt.Errorf("includes nested deeper than %d", maxIncludeDepth)
	}

	var firstErr error
	out := includeTag.ReplaceAllStringFunc(src, func(tag string) string {
		if firstErr != nil {
			return tag
		}

		name := includeTag.FindStringSubmatch(tag)[1]
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			firstErr = fmt.Errorf("include %q: %w", name, err)
			return tag
		}

		inner, err := resolveIncludes(string(data), dir, depth+1)
		if err != nil {
			firstErr = err
			return tag
		}
		return inner
	})

	return out, firstErr
}

// applyLayout places body into layout's content slot and fills title tags.
// An empty title falls back to the literal given with "or", then to
// fallback.
func applyLayout(layout, body, title, fallback string) string {
	out := titleTag.ReplaceAllStringFunc(layout, func(tag string) string {
		if title != "" {
			return title
		}
		if literal := titleTag.FindStringSubmatch(tag)[1]; literal != "" {
			return literal
		}
		return fallback
	})

	// ReplaceAllLiteralString keeps $ in body from being expanded
	return contentTag.ReplaceAllLiteralString(out, strings.TrimSpace(body))
}
