package cmd

import (
	"context"
	"os"

	"github.com/toprak/run/pkg/scaffold"
	"github.com/urfave/cli/v3"
)

// everything selects every optional manifest entry.
var everything = scaffold.Config{CSS: scaffold.CSSTailwind, Includes: true}

func runTemplates(ctx context.Context, cmd *cli.Command) error {
	store, err := scaffold.NewEmbeddedStore()
	if err != nil {
		return err
	}

	paths := make(map[string]string)
	for _, e := range scaffold.DefaultManifest(everything) {
		paths[e.Key] = e.Path
	}

	p := newPrinter(os.Stdout)
	p.Heading("Templates")
	for _, key := range store.Keys() {
		path, ok := paths[key]
		if !ok {
			path = "(unused)"
		}
		p.Field(key, path)
	}
	return nil
}
