package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toprak/run/pkg/scaffold"
)

func TestBuildProject_SkipInstall(t *testing.T) {
	parent := t.TempDir()
	cfg := scaffold.DefaultConfig("demo")

	report, err := buildProject(context.Background(), cfg, buildOptions{
		Parent:      parent,
		PM:          "npm",
		SkipInstall: true,
	})
	require.NoError(t, err)

	root := filepath.Join(parent, "demo")
	assert.FileExists(t, filepath.Join(root, "package.json"))
	assert.FileExists(t, filepath.Join(root, "src", "scripts", "main.ts"))
	assert.NoFileExists(t, filepath.Join(root, ".npmrc"))
	assert.DirExists(t, filepath.Join(root, ".git"))

	assert.False(t, report.Installed)
	require.NotNil(t, report.Git)
	assert.Equal(t, "main", report.Git.Branch)
	require.NotNil(t, report.Summary)
	assert.Zero(t, report.Summary.WarningCount)

	var out bytes.Buffer
	printReport(newPrinter(&out), report)
	assert.Contains(t, out.String(), "npm run dev")
	assert.Contains(t, out.String(), "npm install")
	assert.Contains(t, out.String(), "├── README.md")
	assert.Contains(t, out.String(), "└── tsconfig.json")
}

func TestBuildProject_UnknownManager(t *testing.T) {
	_, err := buildProject(context.Background(), scaffold.DefaultConfig("demo"), buildOptions{
		Parent: t.TempDir(),
		PM:     "bun",
	})
	assert.ErrorIs(t, err, scaffold.ErrInvalidConfig)
}

func TestBuildProject_ExistingProject(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "demo")
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte("{}"), 0644))

	cfg := scaffold.DefaultConfig("demo")
	cfg.Git.Init = false

	_, err := buildProject(context.Background(), cfg, buildOptions{Parent: parent, PM: "npm", SkipInstall: true})
	assert.ErrorIs(t, err, scaffold.ErrTargetExists)
}

func TestPrinter_PlainWhenNotTerminal(t *testing.T) {
	var out bytes.Buffer
	p := newPrinter(&out)
	p.Done("ok")
	p.Field("cd", "demo")

	assert.Equal(t, "✓ ok\n   cd: demo\n", out.String())
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, validateName("my-site"))
	assert.ErrorIs(t, validateName(""), scaffold.ErrInvalidConfig)
	assert.ErrorIs(t, validateName(" my-site"), scaffold.ErrInvalidConfig)
	assert.ErrorIs(t, validateName("a/b"), scaffold.ErrInvalidConfig)
}
