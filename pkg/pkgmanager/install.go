package pkgmanager

import (
	"context"
	"fmt"
)

// Install adds deps to the project in dir. pnpm installs skip lifecycle
// scripts, so esbuild's binary is rebuilt afterwards.
func Install(ctx context.Context, runner Runner, dir string, m Manager, deps []Dependency) error {
	if len(deps) == 0 {
		return nil
	}

	if _, err := runner.Run(ctx, dir, m.Name, m.InstallArgs(deps)...); err != nil {
		return fmt.Errorf("installing dependencies with %s: %w", m.Name, err)
	}

	if m.Name == PNPM.Name {
		if _, err := runner.Run(ctx, dir, m.Name, "rebuild", "esbuild"); err != nil {
			return fmt.Errorf("rebuilding esbuild: %w", err)
		}
	}

	return nil
}
