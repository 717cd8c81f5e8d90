// Package preview renders the homepage of a generated project without
// node tooling. It understands only the tags the generated templates use:
// {% include "name" %}, {{ content | safe }} and {{ title or "literal" }}.
// Any other template syntax is copied through untouched.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/toprak/run/pkg/events"
	"github.com/toprak/run/pkg/scaffold"
	"github.com/toprak/run/pkg/utils/fileutils"
	gm "github.com/yuin/goldmark"
	gmext "github.com/yuin/goldmark/extension"
	gmparse "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const (
	DefaultOutDir = "dist"
	defaultLayout = "base.njk"
	indexFile     = "index.html"
	styleFile     = "style.css"
)

var ErrNoHomepage = errors.New("no homepage found")

// Options controls a preview build.
type Options struct {
	OutDir  string // relative to the project root
	Minify  bool
	Handler events.Handler
	// OnBuild is called after every successful build in watch mode.
	OnBuild func(*Result)
}

// Result lists the files a build wrote, relative to the project root.
type Result struct {
	Homepage string
	Written  []string
}

func (o Options) outDir() string {
	if o.OutDir == "" {
		return DefaultOutDir
	}
	return o.OutDir
}

func newMarkdown() gm.Markdown {
	return gm.New(
		gm.WithExtensions(gmext.GFM, gmext.Typographer),
		gm.WithParserOptions(gmparse.WithAutoHeadingID()),
		gm.WithRendererOptions(gmhtml.WithUnsafe()),
	)
}

// Build renders the homepage of the project at root into the output
// directory. It stands in for the real eleventy build and only understands
// the layout and include tags the generated templates use.
func Build(root string, opts Options) (*Result, error) {
	rep := events.Reporter{Stage: "preview", Handler: opts.Handler}
	minifier := newMinifier(opts.Minify)
	includes := filepath.Join(root, filepath.FromSlash(scaffold.IncludesDir))
	outDir := filepath.Join(root, filepath.FromSlash(opts.outDir()))

	page, homepage, err := renderHomepage(root, includes, siteTitle(root))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", opts.outDir(), err)
	}

	result := &Result{Homepage: homepage}

	target := filepath.Join(outDir, indexFile)
	if err := writeFile(target, minifier(target, func(w io.Writer) error {
		_, err := io.WriteString(w, page)
		return err
	})); err != nil {
		return result, fmt.Errorf("writing %s: %w", indexFile, err)
	}
	result.Written = append(result.Written, filepath.ToSlash(filepath.Join(opts.outDir(), indexFile)))
	rep.Debugf(homepage, "rendered to %s", filepath.ToSlash(filepath.Join(opts.outDir(), indexFile)))

	style := filepath.Join(root, filepath.FromSlash(scaffold.StyleEntry))
	css, err := os.ReadFile(style)
	switch {
	case errors.Is(err, os.ErrNotExist):
		rep.Debugf(scaffold.StyleEntry, "no stylesheet")
	case err != nil:
		rep.Warn(scaffold.StyleEntry, err, "reading stylesheet")
	case bytes.Contains(css, []byte("@tailwind")):
		rep.Infof(scaffold.StyleEntry, "framework stylesheet needs the build:css script")
	default:
		target := filepath.Join(outDir, styleFile)
		if err := writeFile(target, minifier(target, func(w io.Writer) error {
			_, err := w.Write(css)
			return err
		})); err != nil {
			return result, fmt.Errorf("writing %s: %w", styleFile, err)
		}
		result.Written = append(result.Written, filepath.ToSlash(filepath.Join(opts.outDir(), styleFile)))
	}

	return result, nil
}

// siteTitle is the title used when neither the page nor the layout names
// one: the project directory as a display name.
func siteTitle(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return scaffold.DisplayName(filepath.Base(abs))
}

func renderHomepage(root, includes, title string) (string, string, error) {
	md := filepath.Join(root, filepath.FromSlash(scaffold.HomeMarkdown.Entry))
	if data, err := os.ReadFile(md); err == nil {
		page, err := renderMarkdown(data, includes, title)
		if err != nil {
			return "", "", fmt.Errorf("%s: %w", scaffold.HomeMarkdown.Entry, err)
		}
		return page, scaffold.HomeMarkdown.Entry, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", "", err
	}

	html := filepath.Join(root, filepath.FromSlash(scaffold.HomeHTML.Entry))
	data, err := os.ReadFile(html)
	if errors.Is(err, os.ErrNotExist) {
		return "", "", fmt.Errorf("%w in %s", ErrNoHomepage, root)
	} else if err != nil {
		return "", "", err
	}

	page, err := resolveIncludes(string(data), includes, 0)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", scaffold.HomeHTML.Entry, err)
	}
	return page, scaffold.HomeHTML.Entry, nil
}

func renderMarkdown(doc []byte, includes, fallbackTitle string) (string, error) {
	fm, body, err := ExtractFrontmatter(doc)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := newMarkdown().Convert(body, &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	name := fm.Layout
	if name == "" {
		name = defaultLayout
	}
	layout, err := os.ReadFile(filepath.Join(includes, filepath.FromSlash(name)))
	if errors.Is(err, os.ErrNotExist) && fm.Layout == "" {
		return buf.String(), nil
	} else if err != nil {
		return "", fmt.Errorf("layout %q: %w", name, err)
	}

	resolved, err := resolveIncludes(string(layout), includes, 0)
	if err != nil {
		return "", err
	}

	return applyLayout(resolved, buf.String(), strings.TrimSpace(fm.Title), fallbackTitle), nil
}

func writeFile(path string, gen writerFunc) error {
	return fileutils.AtomicWrite(path, 0644, gen)
}
