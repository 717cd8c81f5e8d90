package cmd

import (
	"context"

	"github.com/toprak/run/pkg/preview"
	"github.com/urfave/cli/v3"
)

const defaultPort = 6767

func Execute(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:  "toprak",
		Usage: "Scaffold a modern static web project",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Verbose logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			setupLogging(cmd.Bool("verbose"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "new",
				Usage:     "Create a project interactively",
				ArgsUsage: "[name]",
				Flags:     buildFlags(),
				Action:    runNew,
			},
			{
				Name:  "x",
				Usage: "Non-interactive commands",
				Commands: []*cli.Command{
					{
						Name:      "new",
						Usage:     "Create a project from flags or a config file",
						ArgsUsage: "[name]",
						Flags:     append(buildFlags(), configFlags()...),
						Action:    runXNew,
					},
				},
			},
			{
				Name:      "preview",
				Usage:     "Render the homepage of a generated project",
				ArgsUsage: "[directory]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: preview.DefaultOutDir, Usage: "Output directory, relative to the project"},
					&cli.BoolFlag{Name: "minify", Aliases: []string{"m"}, Usage: "Minify output"},
					&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Rebuild on changes under src"},
					&cli.BoolFlag{Name: "serve", Aliases: []string{"s"}, Usage: "Serve the output with live reload (implies --watch)"},
					&cli.StringFlag{Name: "host", Value: "127.0.0.1", Usage: "HTTP host"},
					&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: defaultPort, Usage: "HTTP port"},
				},
				Action: runPreview,
			},
			{
				Name:   "templates",
				Usage:  "List the embedded templates",
				Action: runTemplates,
			},
			{
				Name:   "version",
				Usage:  "Print version",
				Action: runVersion,
			},
		},
	}

	return app.Run(ctx, args)
}

// buildFlags are shared by the interactive and flag driven project commands.
func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "pm", Usage: "Package manager (pnpm, yarn, npm); detected when empty"},
		&cli.BoolFlag{Name: "skip-install", Usage: "Write package.json without installing dependencies"},
		&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Build into a directory that already holds a project"},
		&cli.IntFlag{Name: "workers", Value: 0, Usage: "Render workers (0 = number of CPUs)"},
		&cli.StringFlag{Name: "dir", Aliases: []string{"C"}, Usage: "Parent directory of the project (defaults to the working directory)"},
	}
}
