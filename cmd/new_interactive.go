package cmd

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/toprak/run/pkg/scaffold"
)

func validateName(s string) error {
	return scaffold.DefaultConfig(s).Validate()
}

// promptConfig asks for a project configuration. ok is false when the user
// declines the final confirmation or aborts the form.
func promptConfig(ctx context.Context, name string) (cfg scaffold.Config, ok bool, err error) {
	cfg = scaffold.DefaultConfig(name)

	var nameField []huh.Field
	if name == "" {
		nameField = append(nameField, huh.NewInput().
			Title("Project name").
			Placeholder("my-site").
			Validate(validateName).
			Value(&cfg.ProjectName))
	} else if err := validateName(name); err != nil {
		return cfg, false, err
	}

	form := huh.NewForm(
		huh.NewGroup(append(nameField,
			huh.NewInput().
				Title("Description").
				Value(&cfg.Description),
			huh.NewConfirm().
				Title("Use TypeScript?").
				Value(&cfg.TypeScript),
			huh.NewSelect[scaffold.CSSFramework]().
				Title("CSS framework").
				Options(
					huh.NewOption("TailwindCSS (recommended)", scaffold.CSSTailwind),
					huh.NewOption("Plain CSS", scaffold.CSSNone),
				).
				Value(&cfg.CSS),
			huh.NewSelect[bool]().
				Title("Homepage format").
				Options(
					huh.NewOption("HTML", false),
					huh.NewOption("Markdown", true),
				).
				Value(&cfg.Markdown),
		)...),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Add shared header and footer includes?").
				Value(&cfg.Includes),
		).WithHideFunc(func() bool { return cfg.Markdown }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Initialize a git repository?").
				Value(&cfg.Git.Init),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Git remote URL").
				Description("Optional, leave empty to skip").
				Value(&cfg.Git.Remote),
		).WithHideFunc(func() bool { return !cfg.Git.Init }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Push to the remote after the first commit?").
				Value(&cfg.Git.Push),
		).WithHideFunc(func() bool { return !cfg.Git.Init || strings.TrimSpace(cfg.Git.Remote) == "" }),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cfg, false, nil
		}
		return cfg, false, err
	}

	if !cfg.Git.Init {
		cfg.Git.Remote, cfg.Git.Push = "", false
	}
	cfg = cfg.Normalize()

	printConfig(newPrinter(os.Stdout), cfg)

	proceed := true
	confirm := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Build project?").
			Value(&proceed),
	))
	if err := confirm.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cfg, false, nil
		}
		return cfg, false, err
	}

	return cfg, proceed, nil
}
