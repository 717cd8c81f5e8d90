package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/toprak/run/pkg/events"
	"github.com/toprak/run/pkg/pkgmanager"
	"github.com/toprak/run/pkg/scaffold"
	"github.com/toprak/run/pkg/utils/fileutils"
	"github.com/toprak/run/pkg/vcs"
	"github.com/urfave/cli/v3"
)

// buildOptions are the command line settings that do not belong in a
// scaffold.Config.
type buildOptions struct {
	Parent      string
	PM          string
	SkipInstall bool
	Force       bool
	Workers     int
}

func buildOptionsFrom(cmd *cli.Command) (buildOptions, error) {
	parent := cmd.String("dir")
	if parent == "" {
		wd, err := os.Getwd()
		if err != nil {
			return buildOptions{}, fmt.Errorf("resolving working directory: %w", err)
		}
		parent = wd
	}

	return buildOptions{
		Parent:      parent,
		PM:          cmd.String("pm"),
		SkipInstall: cmd.Bool("skip-install"),
		Force:       cmd.Bool("force"),
		Workers:     int(cmd.Int("workers")),
	}, nil
}

func resolveManager(ctx context.Context, runner pkgmanager.Runner, dir, name string) (pkgmanager.Manager, error) {
	if name == "" {
		return pkgmanager.Detect(ctx, runner, dir), nil
	}
	m, ok := pkgmanager.Lookup(name)
	if !ok {
		return pkgmanager.Manager{}, fmt.Errorf("%w: unknown package manager %q", scaffold.ErrInvalidConfig, name)
	}
	return m, nil
}

// buildReport is what buildProject hands to the summary.
type buildReport struct {
	Result    *scaffold.Result
	Manager   pkgmanager.Manager
	Installed bool
	Git       *vcs.Result
	Summary   *events.Summary
}

// buildProject materializes cfg, writes package.json, installs dependencies
// and initializes git. Only materialization and the descriptor are fatal.
func buildProject(ctx context.Context, cfg scaffold.Config, opts buildOptions) (*buildReport, error) {
	runner := pkgmanager.ExecRunner{}
	if verbose {
		runner.Output = os.Stderr
	}

	pm, err := resolveManager(ctx, runner, opts.Parent, opts.PM)
	if err != nil {
		return nil, err
	}
	logger.Debug("using package manager", "pm", pm)

	store, err := scaffold.NewEmbeddedStore()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	collector := events.NewCollector(&logHandler{})
	root := filepath.Join(opts.Parent, cfg.ProjectName)
	sopts := []scaffold.Option{
		scaffold.WithHandler(collector),
		scaffold.WithPackageManager(pm.Name),
		scaffold.WithForce(opts.Force),
	}
	if opts.Workers > 0 {
		sopts = append(sopts, scaffold.WithWorkers(opts.Workers))
	}
	m := scaffold.New(store, sopts...)

	res, err := m.Materialize(ctx, cfg, root)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", cfg.ProjectName, err)
	}
	cfg = res.Config

	report := &buildReport{Result: res, Manager: pm}

	written, err := pkgmanager.WriteDescriptor(root, cfg, pm)
	if err != nil {
		return nil, fmt.Errorf("writing package descriptor: %w", err)
	}
	logger.Debug("wrote package descriptor", "files", written)

	if !opts.SkipInstall {
		deps := pkgmanager.Dependencies(cfg)
		title := fmt.Sprintf("Installing %d dependencies with %s...", len(deps), pm.Name)
		err := runWithSpinner(ctx, title, func(ctx context.Context) error {
			return pkgmanager.Install(ctx, runner, root, pm, deps)
		})
		if err != nil {
			rep := events.Reporter{Stage: "install", Handler: collector}
			rep.Warn("", err, fmt.Sprintf("dependency install failed, run: cd %s && %s install", cfg.ProjectName, pm.Name))
		} else {
			report.Installed = true
		}
	}

	if cfg.Git.Init {
		gitRes, err := vcs.Init(ctx, root, vcs.Options{
			ProjectName: cfg.ProjectName,
			Remote:      cfg.Git.Remote,
			Push:        cfg.Git.Push,
		})
		report.Git = gitRes

		rep := events.Reporter{Stage: "git", Handler: collector}
		var remoteErr *vcs.RemoteError
		switch {
		case errors.As(err, &remoteErr):
			rep.Warn("", remoteErr.Err, "remote step failed, run: "+remoteErr.Hint)
		case err != nil:
			rep.Warn("", err, "initialization failed, run: git init")
		}
	}

	report.Summary = collector.Summary()
	return report, nil
}

func printConfig(p *printer, cfg scaffold.Config) {
	p.Heading("Configuration")
	p.Field("Project", cfg.ProjectName)
	p.Field("TypeScript", scaffold.Glyph(cfg.TypeScript))
	p.Field("CSS", cfg.CSS.DisplayName())
	p.Field("Homepage", cfg.TemplateFormat())
	p.Field("Includes", scaffold.Glyph(cfg.Includes))
	p.Field("Git", scaffold.Glyph(cfg.Git.Init))
}

func printReport(p *printer, r *buildReport) {
	cfg := r.Result.Config

	p.Line("")
	p.Done("Project is ready!")
	p.Field("cd", cfg.ProjectName)
	p.Field("run", r.Manager.Run("dev"))
	if !r.Installed {
		p.Field("install", r.Manager.Name+" install")
	}

	if r.Git != nil {
		p.Field("git", fmt.Sprintf("%s @ %.7s", r.Git.Branch, r.Git.Commit))
		if r.Git.Remote != "" {
			p.Field("remote", r.Git.Remote)
		}
	}

	if r.Summary != nil && r.Summary.WarningCount > 0 {
		p.Line("")
		p.Warn(fmt.Sprintf("Finished with %d warnings", r.Summary.WarningCount))
		p.Block(r.Summary.String())
	}

	if tree, err := fileutils.WalkTree(r.Result.Root, scaffold.SkipDirs...); err == nil {
		p.Line("")
		p.Muted(renderTree(tree))
	}
}

// runNew is the interactive project command.
func runNew(ctx context.Context, cmd *cli.Command) error {
	opts, err := buildOptionsFrom(cmd)
	if err != nil {
		return err
	}

	cfg, ok, err := promptConfig(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	p := newPrinter(os.Stdout)
	if !ok {
		p.Line("Cancelled")
		return nil
	}

	report, err := buildProject(ctx, cfg, opts)
	if err != nil {
		return err
	}
	printReport(p, report)
	return nil
}
