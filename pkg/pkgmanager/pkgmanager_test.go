package pkgmanager

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toprak/run/pkg/scaffold"
)

type call struct {
	Dir  string
	Name string
	Args []string
}

// fakeRunner answers --version for the tools in versions and records every
// call.
type fakeRunner struct {
	mu       sync.Mutex
	versions map[string]string
	fail     map[string]bool
	calls    []call
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Dir: dir, Name: name, Args: args})

	if len(args) == 1 && args[0] == "--version" {
		v, ok := f.versions[name]
		if !ok {
			return nil, errors.New("executable file not found")
		}
		return []byte(v + "\n"), nil
	}
	if f.fail[name] {
		return []byte("boom"), errors.New("exit status 1")
	}
	return nil, nil
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		versions map[string]string
		want     string
		version  string
	}{
		{"pnpm first", map[string]string{"pnpm": "9.1.0", "yarn": "1.22.19", "npm": "10.2.0"}, "pnpm", "9.1.0"},
		{"yarn second", map[string]string{"yarn": "1.22.19", "npm": "10.2.0"}, "yarn", "1.22.19"},
		{"npm fallback", map[string]string{"npm": "10.2.0"}, "npm", "10.2.0"},
		{"nothing installed", map[string]string{}, "npm", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{versions: tt.versions}

			m := Detect(context.Background(), runner, "/work/demo")
			assert.Equal(t, tt.want, m.Name)
			if tt.version == "" {
				assert.Nil(t, m.Version)
			} else {
				require.NotNil(t, m.Version)
				assert.Equal(t, tt.version, m.Version.String())
			}

			for _, c := range runner.calls {
				assert.Equal(t, "/work/demo", c.Dir)
			}
		})
	}
}

func TestDetect_UnparsableVersion(t *testing.T) {
	runner := &fakeRunner{versions: map[string]string{"yarn": "berry-nightly"}}

	m := Detect(context.Background(), runner, ".")
	assert.Equal(t, "yarn", m.Name)
	assert.Nil(t, m.Version)
	assert.Equal(t, "yarn", m.String())
}

func TestLookup(t *testing.T) {
	m, ok := Lookup("PNPM")
	require.True(t, ok)
	assert.Equal(t, PNPM, m)

	_, ok = Lookup("bun")
	assert.False(t, ok)
}

func depNames(deps []Dependency) []string {
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = d.String()
	}
	return out
}

func TestDependencies(t *testing.T) {
	cfg := scaffold.DefaultConfig("demo")

	names := depNames(Dependencies(cfg))
	assert.Contains(t, names, "@11ty/eleventy")
	assert.Contains(t, names, "tailwindcss@3.4.1")
	assert.Contains(t, names, "typescript")
	assert.Contains(t, names, "@types/node")

	cfg.TypeScript = false
	cfg.CSS = scaffold.CSSNone
	names = depNames(Dependencies(cfg))
	assert.Len(t, names, len(baseDependencies))
	for _, n := range names {
		assert.False(t, strings.HasPrefix(n, "tailwindcss"))
		assert.NotEqual(t, "typescript", n)
	}
}

func TestScripts(t *testing.T) {
	cfg := scaffold.DefaultConfig("demo")

	scripts := Scripts(cfg, PNPM)
	assert.Equal(t, "tailwindcss -i ./src/styles/input.css -o ./dist/style.css --config ./config/tailwind.config.js && postcss ./dist/style.css --use cssnano --output ./dist/style.css", scripts["build:css"])
	assert.Equal(t, "esbuild src/scripts/main.ts --bundle --outfile=dist/bundle.js --minify --loader:.ts=ts", scripts["build:js"])
	assert.Equal(t, "pnpm run build:css && pnpm run build:js && pnpm run build:html", scripts["build"])
	assert.Equal(t, `concurrently "pnpm run build:css --watch" "pnpm run build:js --watch" "eleventy --serve --watch"`, scripts["dev"])
	assert.True(t, strings.HasPrefix(scripts["build:html"], "eleventy && html-minifier-terser --input-dir dist"))

	cfg.TypeScript = false
	cfg.CSS = scaffold.CSSNone
	scripts = Scripts(cfg, NPM)
	assert.Equal(t, "cp ./src/styles/input.css ./dist/style.css && postcss ./dist/style.css --use cssnano --output ./dist/style.css", scripts["build:css"])
	assert.Equal(t, "esbuild src/scripts/main.js --bundle --outfile=dist/bundle.js --minify", scripts["build:js"])
	assert.Equal(t, "npm run build:css && npm run build:js && npm run build:html", scripts["build"])
}

func TestWriteDescriptor(t *testing.T) {
	dir := t.TempDir()
	cfg := scaffold.DefaultConfig("My Site")

	written, err := WriteDescriptor(dir, cfg, PNPM)
	require.NoError(t, err)
	assert.Equal(t, []string{DescriptorFile, NpmrcFile}, written)

	data, err := os.ReadFile(filepath.Join(dir, DescriptorFile))
	require.NoError(t, err)

	var desc Descriptor
	require.NoError(t, json.Unmarshal(data, &desc))
	assert.Equal(t, "my-site", desc.Name)
	assert.Equal(t, "1.0.0", desc.Version)
	assert.Equal(t, scaffold.DefaultDescription, desc.Description)
	assert.Equal(t, "index.ts", desc.Main)
	assert.Equal(t, []string{"eleventy", "tailwindcss", "modern-web"}, desc.Keywords)
	assert.Equal(t, "ISC", desc.License)
	assert.Contains(t, desc.Scripts, "dev")

	info, err := os.Stat(filepath.Join(dir, DescriptorFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	npmrc, err := os.ReadFile(filepath.Join(dir, NpmrcFile))
	require.NoError(t, err)
	assert.Contains(t, string(npmrc), "shamefully-hoist=true")
}

func TestWriteDescriptor_NoNpmrcForNpm(t *testing.T) {
	dir := t.TempDir()
	cfg := scaffold.DefaultConfig("demo")
	cfg.CSS = scaffold.CSSNone
	cfg.TypeScript = false

	written, err := WriteDescriptor(dir, cfg, NPM)
	require.NoError(t, err)
	assert.Equal(t, []string{DescriptorFile}, written)
	assert.NoFileExists(t, filepath.Join(dir, NpmrcFile))

	var desc Descriptor
	data, err := os.ReadFile(filepath.Join(dir, DescriptorFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &desc))
	assert.Equal(t, "index.js", desc.Main)
	assert.Equal(t, []string{"eleventy", "css", "modern-web"}, desc.Keywords)
}

func TestInstall(t *testing.T) {
	deps := []Dependency{{Name: "esbuild"}, {Name: "postcss"}}

	t.Run("pnpm", func(t *testing.T) {
		runner := &fakeRunner{}
		require.NoError(t, Install(context.Background(), runner, "/p", PNPM, deps))

		require.Len(t, runner.calls, 2)
		assert.Equal(t, call{Dir: "/p", Name: "pnpm", Args: []string{"add", "-D", "esbuild", "postcss", "--ignore-scripts"}}, runner.calls[0])
		assert.Equal(t, call{Dir: "/p", Name: "pnpm", Args: []string{"rebuild", "esbuild"}}, runner.calls[1])
	})

	t.Run("npm", func(t *testing.T) {
		runner := &fakeRunner{}
		require.NoError(t, Install(context.Background(), runner, "/p", NPM, deps))

		require.Len(t, runner.calls, 1)
		assert.Equal(t, []string{"install", "--save-dev", "esbuild", "postcss"}, runner.calls[0].Args)
	})

	t.Run("failure", func(t *testing.T) {
		runner := &fakeRunner{fail: map[string]bool{"yarn": true}}
		err := Install(context.Background(), runner, "/p", Yarn, deps)
		assert.Error(t, err)
	})
}

func TestExecRunner(t *testing.T) {
	dir := t.TempDir()

	out, err := ExecRunner{}.Run(context.Background(), dir, "pwd")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(string(out)))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ExecRunner{}.Run(context.Background(), dir, "false")
	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "false", cmdErr.Command)
}
