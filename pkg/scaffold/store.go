package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/toprak/run/pkg/utils/fileutils"
)

//go:embed templates
var templatesFS embed.FS

const templatesRoot = "templates"

// Store looks up template bodies by key.
type Store interface {
	Fetch(key string) (string, error)
}

// FSStore serves templates from a filesystem. A file's key is its path
// relative to the root with the final extension removed.
type FSStore struct {
	fsys  fs.FS
	root  string
	index map[string]string
}

// NewEmbeddedStore returns the templates bundled with the binary.
func NewEmbeddedStore() (*FSStore, error) {
	return NewFSStore(templatesFS, templatesRoot)
}

func NewFSStore(fsys fs.FS, root string) (*FSStore, error) {
	files, err := fileutils.WalkFilesFS(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("indexing templates: %w", err)
	}

	index := make(map[string]string, files.Len())
	for _, rel := range files.Values() {
		key := strings.TrimSuffix(rel, path.Ext(rel))
		if prev, ok := index[key]; ok {
			return nil, fmt.Errorf("indexing templates: %s and %s share key %q", prev, rel, key)
		}
		index[key] = rel
	}

	return &FSStore{
		fsys:  fsys,
		root:  root,
		index: index,
	}, nil
}

func (s *FSStore) Fetch(key string) (string, error) {
	rel, ok := s.index[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
	}

	data, err := fs.ReadFile(s.fsys, path.Join(s.root, rel))
	if err != nil {
		return "", fmt.Errorf("reading template %q: %w", key, err)
	}

	return string(data), nil
}

// Keys returns every key in the store, sorted.
func (s *FSStore) Keys() []string {
	keys := make([]string, 0, len(s.index))
	for key := range s.index {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// MapStore is an in-memory Store.
type MapStore map[string]string

func (m MapStore) Fetch(key string) (string, error) {
	body, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, key)
	}
	return body, nil
}
