package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toprak/run/pkg/events"
	"github.com/toprak/run/pkg/utils/fileutils"
)

func materialize(t *testing.T, cfg Config, opts ...Option) (string, *Result) {
	t.Helper()

	store, err := NewEmbeddedStore()
	require.NoError(t, err)

	root := filepath.Join(t.TempDir(), cfg.ProjectName)
	res, err := New(store, opts...).Materialize(context.Background(), cfg, root)
	require.NoError(t, err)
	return root, res
}

func exists(t *testing.T, root, rel string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	if err == nil {
		return true
	}
	require.True(t, errors.Is(err, os.ErrNotExist), "stat %s: %v", rel, err)
	return false
}

func read(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestMaterialize_DemoProject(t *testing.T) {
	cfg := Config{
		ProjectName: "demo",
		TypeScript:  true,
		CSS:         CSSTailwind,
		Markdown:    false,
		Includes:    true,
		Git:         GitConfig{Init: false},
	}

	root, res := materialize(t, cfg)

	for _, want := range []string{
		"src/scripts/main.ts",
		"tsconfig.json",
		"src/styles/input.css",
		"config/tailwind.config.js",
		"config/postcss.config.js",
		"README.md",
		"src/index.html",
	} {
		assert.True(t, exists(t, root, want), "expected %s", want)
	}
	for _, absent := range []string{
		"src/scripts/main.js",
		"src/styles/plain.css",
		"src/styles/tailwind.css",
		"src/index.md",
		"README.md.template",
	} {
		assert.False(t, exists(t, root, absent), "unexpected %s", absent)
	}

	store, err := NewEmbeddedStore()
	require.NoError(t, err)
	framework, err := store.Fetch(StyleFramework.Key)
	require.NoError(t, err)

	css := read(t, root, StyleEntry)
	assert.Equal(t, framework, css)
	assert.NotContains(t, css, "{{")

	index := read(t, root, "src/index.html")
	assert.Contains(t, index, "<title>demo</title>")

	readme := read(t, root, ReadmeTarget)
	assert.Contains(t, readme, "# demo")
	assert.Contains(t, readme, "**TypeScript**: ✅")
	assert.Contains(t, readme, "**CSS Framework**: TailwindCSS")
	assert.Contains(t, readme, "**Git**: ❌")
	assert.Contains(t, readme, "npm run dev")

	assert.Contains(t, res.Renamed, StyleEntry)
	assert.Contains(t, res.Renamed, ReadmeTarget)
	assert.Empty(t, res.Warnings)

	files, err := fileutils.WalkFiles(root)
	require.NoError(t, err)
	for _, f := range files.Values() {
		assert.False(t, strings.HasSuffix(f, ".template"), "leftover %s", f)
	}
}

func allConfigs() []Config {
	var out []Config
	for _, ts := range []bool{true, false} {
		for _, css := range []CSSFramework{CSSTailwind, CSSNone} {
			for _, md := range []bool{true, false} {
				out = append(out, Config{
					ProjectName: fmt.Sprintf("site-%t-%s-%t", ts, css, md),
					TypeScript:  ts,
					CSS:         css,
					Markdown:    md,
					Includes:    true,
					Git:         GitConfig{Init: true},
				})
			}
		}
	}
	return out
}

func TestMaterialize_VariantExclusivity(t *testing.T) {
	for _, cfg := range allConfigs() {
		t.Run(cfg.ProjectName, func(t *testing.T) {
			root, _ := materialize(t, cfg)

			// script axis
			assert.Equal(t, cfg.TypeScript, exists(t, root, "src/scripts/main.ts"))
			assert.Equal(t, cfg.TypeScript, exists(t, root, TSConfigPath))
			assert.Equal(t, !cfg.TypeScript, exists(t, root, "src/scripts/main.js"))

			// style axis
			assert.True(t, exists(t, root, StyleEntry))
			assert.False(t, exists(t, root, tailwindStyle))
			assert.False(t, exists(t, root, plainStyle))
			assert.Equal(t, cfg.CSS.IsFramework(), exists(t, root, tailwindCfg))
			assert.Equal(t, cfg.CSS.IsFramework(), exists(t, root, postcssCfg))

			// home axis
			assert.Equal(t, cfg.Markdown, exists(t, root, "src/index.md"))
			assert.Equal(t, !cfg.Markdown, exists(t, root, "src/index.html"))

			assert.True(t, exists(t, root, ReadmeTarget))
			assert.False(t, exists(t, root, ReadmeSource))
		})
	}
}

func TestMaterialize_NoTokensRemain(t *testing.T) {
	for _, cfg := range allConfigs() {
		t.Run(cfg.ProjectName, func(t *testing.T) {
			root, _ := materialize(t, cfg, WithPackageManager("pnpm"))

			files, err := fileutils.WalkFiles(root)
			require.NoError(t, err)

			for _, rel := range files.Values() {
				if !IsTextFile(rel) {
					continue
				}
				content := read(t, root, filepath.ToSlash(rel))
				assert.False(t, ContainsToken(content), "%s still holds a token", rel)
			}

			readme := read(t, root, ReadmeTarget)
			assert.Contains(t, readme, "# "+cfg.ProjectName)
			assert.Contains(t, readme, "pnpm run build")
			assert.Contains(t, readme, cfg.CSS.DisplayName())
			assert.Contains(t, readme, cfg.TemplateFormat())
		})
	}
}

func TestMaterialize_MarkdownForcesIncludes(t *testing.T) {
	cfg := DefaultConfig("notes")
	cfg.Markdown = true
	cfg.Includes = false

	root, res := materialize(t, cfg)

	assert.True(t, res.Config.Includes)
	assert.True(t, exists(t, root, "src/_includes/base.njk"))
	assert.True(t, exists(t, root, "src/_includes/header.njk"))
	assert.Contains(t, read(t, root, "src/_includes/header.njk"), "notes")
}

func TestMaterialize_WithoutIncludes(t *testing.T) {
	cfg := DefaultConfig("bare")
	cfg.Includes = false

	root, _ := materialize(t, cfg)

	assert.False(t, exists(t, root, IncludesDir))
}

func TestMaterialize_InvalidConfig(t *testing.T) {
	store, err := NewEmbeddedStore()
	require.NoError(t, err)

	root := t.TempDir()
	_, err = New(store).Materialize(context.Background(), Config{}, root)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMaterialize_MissingTemplateIsFatal(t *testing.T) {
	store := MapStore{"html/index": "<h1>{{PROJECT_NAME}}</h1>"}

	root := filepath.Join(t.TempDir(), "demo")
	_, err := New(store).Materialize(context.Background(), DefaultConfig("demo"), root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.ErrorIs(t, err, ErrRender)

	// nothing is rendered once a key is missing
	files, err := fileutils.WalkFiles(root)
	require.NoError(t, err)
	assert.Zero(t, files.Len())
}

func TestMaterialize_ExistingProject(t *testing.T) {
	store, err := NewEmbeddedStore()
	require.NoError(t, err)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, PackageDescriptor), []byte("{}"), 0644))

	_, err = New(store).Materialize(context.Background(), DefaultConfig("demo"), root)
	assert.ErrorIs(t, err, ErrTargetExists)

	_, err = New(store, WithForce(true)).Materialize(context.Background(), DefaultConfig("demo"), root)
	assert.NoError(t, err)
	assert.Equal(t, "{}", read(t, root, PackageDescriptor))
}

func TestMaterialize_ReportsStages(t *testing.T) {
	collector := events.NewCollector(nil)
	_, _ = materialize(t, DefaultConfig("demo"), WithHandler(collector), WithWorkers(2))

	stages := make(map[string]bool)
	for _, ev := range collector.Events() {
		stages[ev.Stage] = true
	}

	for _, stage := range []string{"skeleton", "render", "prune", "materialize"} {
		assert.True(t, stages[stage], "no events from %s", stage)
	}
	assert.False(t, collector.HasLevel(events.Warning))
}

// cancelOn cancels when the first event from stage arrives.
type cancelOn struct {
	stage  string
	cancel context.CancelFunc
}

func (c cancelOn) Handle(ev events.Event) {
	if ev.Stage == c.stage {
		c.cancel()
	}
}

func TestMaterialize_CancelledDuringRenderFails(t *testing.T) {
	store, err := NewEmbeddedStore()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := events.NewCollector(cancelOn{stage: "render", cancel: cancel})
	root := filepath.Join(t.TempDir(), "demo")

	_, err = New(store, WithHandler(collector)).Materialize(ctx, DefaultConfig("demo"), root)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	for _, ev := range collector.Events() {
		assert.NotEqual(t, "materialize", ev.Stage, "cancelled run reported completion")
	}
}
