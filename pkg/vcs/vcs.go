package vcs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	RemoteName    = "origin"
	defaultAuthor = "toprak"
	defaultEmail  = "toprak@localhost"
)

var ErrRemote = errors.New("configuring remote")

// Options controls repository initialization.
type Options struct {
	ProjectName string
	Remote      string
	Push        bool
	// Author overrides the commit signature read from the global git config.
	Author *object.Signature
}

// Result describes what Init did.
type Result struct {
	Commit string
	Branch string
	Remote string
	Pushed bool
}

// RemoteError is returned when the repository was committed but the remote
// step failed. Hint is the command the user can run to finish by hand.
type RemoteError struct {
	Hint string
	Err  error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%v (run manually: %s)", e.Err, e.Hint)
}

func (e *RemoteError) Unwrap() []error {
	return []error{ErrRemote, e.Err}
}

// CommitMessage is the message of the first commit in a new project.
func CommitMessage(projectName string) string {
	return fmt.Sprintf("🎉 Initial commit: %s built with toprak", projectName)
}

// Init creates a repository in dir on branch main, commits every file not
// ignored by .gitignore, then adds and optionally pushes the remote. A
// non-nil Result with a *RemoteError means the local repository is usable.
func Init(ctx context.Context, dir string, opts Options) (*Result, error) {
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.Main},
	})
	if err != nil {
		return nil, fmt.Errorf("initializing repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening worktree: %w", err)
	}

	patterns, err := gitignore.ReadPatterns(wt.Filesystem, nil)
	if err != nil {
		return nil, fmt.Errorf("reading .gitignore: %w", err)
	}
	wt.Excludes = append(wt.Excludes, patterns...)

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return nil, fmt.Errorf("staging files: %w", err)
	}

	author := opts.Author
	if author == nil {
		author = globalSignature()
	}

	hash, err := wt.Commit(CommitMessage(opts.ProjectName), &git.CommitOptions{
		Author:            author,
		AllowEmptyCommits: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating initial commit: %w", err)
	}

	result := &Result{
		Commit: hash.String(),
		Branch: plumbing.Main.Short(),
	}

	if opts.Remote == "" {
		return result, nil
	}

	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: RemoteName,
		URLs: []string{opts.Remote},
	}); err != nil {
		return result, &RemoteError{
			Hint: fmt.Sprintf("git remote add %s %s", RemoteName, opts.Remote),
			Err:  err,
		}
	}
	result.Remote = opts.Remote

	if !opts.Push {
		return result, nil
	}

	refspec := config.RefSpec(fmt.Sprintf("%s:%s", plumbing.Main, plumbing.Main))
	if err := repo.PushContext(ctx, &git.PushOptions{
		RemoteName: RemoteName,
		RefSpecs:   []config.RefSpec{refspec},
	}); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return result, &RemoteError{
			Hint: fmt.Sprintf("git push -u %s %s", RemoteName, plumbing.Main.Short()),
			Err:  fmt.Errorf("pushing: %w", err),
		}
	}
	result.Pushed = true

	return result, nil
}

func globalSignature() *object.Signature {
	sig := &object.Signature{Name: defaultAuthor, Email: defaultEmail, When: time.Now()}

	cfg, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}
