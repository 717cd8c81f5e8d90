package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuthor = &object.Signature{Name: "Test", Email: "test@example.com", When: time.Unix(1700000000, 0)}

func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "index.html"), []byte("<h1>demo</h1>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# demo"), 0644))
	return dir
}

func TestInit(t *testing.T) {
	dir := project(t)

	res, err := Init(context.Background(), dir, Options{ProjectName: "demo", Author: testAuthor})
	require.NoError(t, err)
	assert.Equal(t, "main", res.Branch)
	assert.Empty(t, res.Remote)
	assert.False(t, res.Pushed)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("main"), head.Name())
	assert.Equal(t, res.Commit, head.Hash().String())

	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, "🎉 Initial commit: demo built with toprak", commit.Message)
	assert.Equal(t, "Test", commit.Author.Name)

	_, err = commit.File("src/index.html")
	assert.NoError(t, err)
	_, err = commit.File("README.md")
	assert.NoError(t, err)
}

func TestInit_WithRemote(t *testing.T) {
	dir := project(t)

	res, err := Init(context.Background(), dir, Options{
		ProjectName: "demo",
		Remote:      "git@example.com:me/demo.git",
		Author:      testAuthor,
	})
	require.NoError(t, err)
	assert.Equal(t, "git@example.com:me/demo.git", res.Remote)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	remote, err := repo.Remote(RemoteName)
	require.NoError(t, err)
	assert.Equal(t, []string{"git@example.com:me/demo.git"}, remote.Config().URLs)
}

func TestInit_PushFailureIsRemoteError(t *testing.T) {
	dir := project(t)
	missing := filepath.Join(t.TempDir(), "no-such-remote.git")

	res, err := Init(context.Background(), dir, Options{
		ProjectName: "demo",
		Remote:      missing,
		Push:        true,
		Author:      testAuthor,
	})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Commit)
	assert.False(t, res.Pushed)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, "git push -u origin main", remoteErr.Hint)
	assert.ErrorIs(t, err, ErrRemote)
}

func TestInit_ExistingRepository(t *testing.T) {
	dir := project(t)

	_, err := Init(context.Background(), dir, Options{ProjectName: "demo", Author: testAuthor})
	require.NoError(t, err)

	_, err = Init(context.Background(), dir, Options{ProjectName: "demo", Author: testAuthor})
	assert.ErrorIs(t, err, git.ErrRepositoryAlreadyExists)
}
