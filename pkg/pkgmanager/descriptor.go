package pkgmanager

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/toprak/run/pkg/scaffold"
)

const (
	DescriptorFile = "package.json"
	NpmrcFile      = ".npmrc"

	descriptorPerm = 0o644
)

// pnpm hoists and allows lifecycle scripts so eleventy and esbuild resolve
// the same way they do under npm.
const pnpmNpmrc = `unsafe-perm=true
enable-pre-post-scripts=true
auto-install-peers=true
shamefully-hoist=true
`

// Descriptor is the package.json written for a new project.
type Descriptor struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Main        string            `json:"main"`
	Scripts     map[string]string `json:"scripts"`
	Keywords    []string          `json:"keywords"`
	Author      string            `json:"author"`
	License     string            `json:"license"`
}

func NewDescriptor(cfg scaffold.Config, m Manager) Descriptor {
	cfg = cfg.Normalize()

	main := "index.js"
	if cfg.TypeScript {
		main = "index.ts"
	}

	style := "css"
	if cfg.CSS.IsFramework() {
		style = "tailwindcss"
	}

	return Descriptor{
		Name:        scaffold.PackageName(cfg.ProjectName),
		Version:     "1.0.0",
		Description: cfg.Description,
		Main:        main,
		Scripts:     Scripts(cfg, m),
		Keywords:    []string{"eleventy", style, "modern-web"},
		Author:      "",
		License:     "ISC",
	}
}

// WriteDescriptor writes package.json, and .npmrc for pnpm, into dir. It
// returns the files written.
func WriteDescriptor(dir string, cfg scaffold.Config, m Manager) ([]string, error) {
	data, err := json.MarshalIndent(NewDescriptor(cfg, m), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", DescriptorFile, err)
	}
	data = append(data, '\n')

	if err := writeFile(filepath.Join(dir, DescriptorFile), data); err != nil {
		return nil, fmt.Errorf("writing %s: %w", DescriptorFile, err)
	}
	written := []string{DescriptorFile}

	if m.Name == PNPM.Name {
		if err := writeFile(filepath.Join(dir, NpmrcFile), []byte(pnpmNpmrc)); err != nil {
			return written, fmt.Errorf("writing %s: %w", NpmrcFile, err)
		}
		written = append(written, NpmrcFile)
	}

	return written, nil
}

// writeFile replaces path atomically. The temp file behind the rename is
// created 0600, so the mode is reset afterwards.
func writeFile(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}
	return os.Chmod(path, descriptorPerm)
}
