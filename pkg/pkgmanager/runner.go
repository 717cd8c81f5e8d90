package pkgmanager

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner executes an external command in dir and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec. The working directory is always set
// on the command; the process directory is never changed.
type ExecRunner struct {
	// Output, if set, receives a copy of the command output as it runs.
	Output io.Writer
}

func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var buf bytes.Buffer
	if r.Output != nil {
		cmd.Stdout = io.MultiWriter(&buf, r.Output)
		cmd.Stderr = io.MultiWriter(&buf, r.Output)
	} else {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	}

	if err := cmd.Run(); err != nil {
		return buf.Bytes(), &CommandError{Command: commandLine(name, args), Output: buf.String(), Err: err}
	}
	return buf.Bytes(), nil
}

// CommandError is returned when an external command fails.
type CommandError struct {
	Command string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
