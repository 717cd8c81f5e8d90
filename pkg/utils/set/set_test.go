package set

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("b", "a", "b")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))

	s.Add("c")
	s.Delete("b")
	assert.False(t, s.Has("b"))
	assert.ElementsMatch(t, []string{"a", "c"}, s.Values())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestSorted(t *testing.T) {
	s := New("src/main.ts", "README.md", "logo.png", "src/index.html")

	assert.Equal(t, []string{"README.md", "logo.png", "src/index.html", "src/main.ts"}, Sorted(s, nil))
	assert.Equal(t, []string{"src/index.html", "src/main.ts"}, Sorted(s, func(p string) bool {
		return strings.HasPrefix(p, "src/")
	}))
}
