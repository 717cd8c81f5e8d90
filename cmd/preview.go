package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/toprak/run/cmd/internal"
	"github.com/toprak/run/pkg/preview"
	"github.com/urfave/cli/v3"
)

func runPreview(ctx context.Context, cmd *cli.Command) error {
	root := cmd.Args().First()
	if root == "" {
		root = "."
	}

	opts := preview.Options{
		OutDir:  cmd.String("out"),
		Minify:  cmd.Bool("minify"),
		Handler: &logHandler{},
	}

	serve := cmd.Bool("serve")
	if !serve && !cmd.Bool("watch") {
		res, err := preview.Build(root, opts)
		if err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		p := newPrinter(os.Stdout)
		p.Done(fmt.Sprintf("Rendered %s", res.Homepage))
		for _, w := range res.Written {
			p.Field("wrote", w)
		}
		return nil
	}

	if serve {
		hub := internal.NewReloadHub()
		opts.OnBuild = func(*preview.Result) { hub.Reload() }

		server := internal.NewServer(internal.ServerConfig{
			DistDir: filepath.Join(root, opts.OutDir),
			Host:    cmd.String("host"),
			Port:    int(cmd.Int("port")),
			Hub:     hub,
			OnRequest: func(r *http.Request, status int, elapsed time.Duration) {
				logger.Debug("served", "method", r.Method, "path", r.URL.Path, "status", status, "took", elapsed)
			},
		})
		url, err := server.Start(ctx)
		if err != nil {
			return err
		}
		logger.Info("serving preview", "url", url)
	}

	if err := preview.Watch(ctx, root, opts); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
