package preview

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the keys the preview understands. Unknown keys are
// ignored.
type Frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Layout      string `yaml:"layout"`
}

var ErrFailedToParseFrontmatter = errors.New("failed to parse frontmatter")

// ExtractFrontmatter splits a leading "---" fenced YAML block from doc. A
// document without one yields an empty Frontmatter and the whole document.
func ExtractFrontmatter(doc []byte) (Frontmatter, []byte, error) {
	b := trimBOM(doc)

	start, end, bodyStart, ok := scanFencedBlock(b, []byte("---"))
	if !ok {
		return Frontmatter{}, b, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal(b[start:end], &fm); err != nil {
		return Frontmatter{}, doc, fmt.Errorf("%w: %w", ErrFailedToParseFrontmatter, err)
	}
	return fm, b[bodyStart:], nil
}

// scanFencedBlock returns the payload bounds and body start of a block
// opened and closed by fence lines.
func scanFencedBlock(b []byte, fence []byte) (int, int, int, bool) {
	if !bytes.HasPrefix(b, fence) {
		return 0, 0, 0, false
	}

	openLineEnd := lineEnd(b, 0)
	if !bytes.Equal(bytes.TrimRight(b[:openLineEnd], " \t\r\n"), fence) {
		return 0, 0, 0, false
	}

	for i := openLineEnd; i < len(b); {
		next := lineEnd(b, i)
		if bytes.Equal(bytes.TrimRight(b[i:next], " \t\r\n"), fence) {
			return openLineEnd, i, next, true
		}
		i = next
	}
	return 0, 0, 0, false
}

// lineEnd returns the index of the next line end
func lineEnd(b []byte, start int) int {
	i := start
	for i < len(b) && b[i] != '\n' {
		i++
	}
	if i < len(b) && b[i] == '\n' {
		return i + 1
	}
	return i
}

func trimBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}
