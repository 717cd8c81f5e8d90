package cmd

import (
	"context"
	"os"

	"github.com/toprak/run/pkg/scaffold"
	"github.com/urfave/cli/v3"
)

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Config file (toml, yaml or json)"},
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Project name"},
		&cli.StringFlag{Name: "description", Usage: "Project description"},
		&cli.BoolFlag{Name: "typescript", Value: true, Usage: "Use TypeScript"},
		&cli.StringFlag{Name: "css", Value: string(scaffold.CSSTailwind), Usage: "CSS framework (tailwind, none)"},
		&cli.BoolFlag{Name: "markdown", Usage: "Markdown homepage (implies --includes)"},
		&cli.BoolFlag{Name: "includes", Value: true, Usage: "Shared header and footer includes"},
		&cli.BoolFlag{Name: "git", Value: true, Usage: "Initialize a git repository"},
		&cli.StringFlag{Name: "remote", Usage: "Git remote URL"},
		&cli.BoolFlag{Name: "push", Usage: "Push the first commit to the remote"},
	}
}

// configFromFlags starts from the config file, or the defaults when none is
// given, and overrides it with every flag set explicitly. A positional name
// wins over --name.
func configFromFlags(cmd *cli.Command) (scaffold.Config, error) {
	cfg := scaffold.DefaultConfig("")
	if path := cmd.String("config"); path != "" {
		loaded, err := scaffold.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmd.IsSet("name") {
		cfg.ProjectName = cmd.String("name")
	}
	if name := cmd.Args().First(); name != "" {
		cfg.ProjectName = name
	}
	if cmd.IsSet("description") {
		cfg.Description = cmd.String("description")
	}
	if cmd.IsSet("typescript") {
		cfg.TypeScript = cmd.Bool("typescript")
	}
	if cmd.IsSet("css") {
		css, err := scaffold.ParseCSSFramework(cmd.String("css"))
		if err != nil {
			return cfg, err
		}
		cfg.CSS = css
	}
	if cmd.IsSet("markdown") {
		cfg.Markdown = cmd.Bool("markdown")
	}
	if cmd.IsSet("includes") {
		cfg.Includes = cmd.Bool("includes")
	}
	if cmd.IsSet("git") {
		cfg.Git.Init = cmd.Bool("git")
	}
	if cmd.IsSet("remote") {
		cfg.Git.Remote = cmd.String("remote")
	}
	if cmd.IsSet("push") {
		cfg.Git.Push = cmd.Bool("push")
	}

	cfg = cfg.Normalize()
	return cfg, cfg.Validate()
}

// runXNew builds a project without prompting.
func runXNew(ctx context.Context, cmd *cli.Command) error {
	opts, err := buildOptionsFrom(cmd)
	if err != nil {
		return err
	}

	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	p := newPrinter(os.Stdout)
	printConfig(p, cfg)

	report, err := buildProject(ctx, cfg, opts)
	if err != nil {
		return err
	}
	printReport(p, report)
	return nil
}
