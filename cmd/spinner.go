package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
)

// runWithSpinner runs action behind a spinner when stdout is a terminal and
// verbose output is off; otherwise it runs it directly.
func runWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if verbose || !isTerminal(os.Stdout) {
		logger.Info(title)
		return action(ctx)
	}

	var err error
	spinErr := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() { err = action(ctx) }).
		Run()
	if spinErr != nil {
		return fmt.Errorf("spinner: %w", spinErr)
	}
	return err
}
