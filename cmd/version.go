package cmd

import (
	"context"
	"fmt"

	"github.com/toprak/run/pkg/version"
	"github.com/urfave/cli/v3"
)

func runVersion(ctx context.Context, cmd *cli.Command) error {
	fmt.Fprintf(cmd.Root().Writer, "toprak version %s\n", version.String())
	return nil
}
