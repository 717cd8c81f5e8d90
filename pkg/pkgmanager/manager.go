package pkgmanager

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Manager describes how to drive one package manager.
type Manager struct {
	Name    string
	Add     string // subcommand that adds dependencies
	DevFlag string
	Version *semver.Version // nil when the version could not be parsed
}

var (
	PNPM = Manager{Name: "pnpm", Add: "add", DevFlag: "-D"}
	Yarn = Manager{Name: "yarn", Add: "add", DevFlag: "-D"}
	NPM  = Manager{Name: "npm", Add: "install", DevFlag: "--save-dev"}
)

// candidates are probed in order; npm is the fallback.
var candidates = []Manager{PNPM, Yarn}

// Detect returns the first package manager that answers --version in dir,
// falling back to npm.
func Detect(ctx context.Context, runner Runner, dir string) Manager {
	for _, m := range candidates {
		out, err := runner.Run(ctx, dir, m.Name, "--version")
		if err != nil {
			continue
		}
		m.Version = parseVersion(out)
		return m
	}

	m := NPM
	if out, err := runner.Run(ctx, dir, m.Name, "--version"); err == nil {
		m.Version = parseVersion(out)
	}
	return m
}

// Lookup returns the manager with the given name.
func Lookup(name string) (Manager, bool) {
	for _, m := range []Manager{PNPM, Yarn, NPM} {
		if m.Name == strings.ToLower(strings.TrimSpace(name)) {
			return m, true
		}
	}
	return Manager{}, false
}

func parseVersion(out []byte) *semver.Version {
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return nil
	}
	v, err := semver.NewVersion(fields[len(fields)-1])
	if err != nil {
		return nil
	}
	return v
}

// InstallArgs returns the arguments that add deps as development
// dependencies.
func (m Manager) InstallArgs(deps []Dependency) []string {
	args := make([]string, 0, len(deps)+3)
	args = append(args, m.Add, m.DevFlag)
	for _, d := range deps {
		args = append(args, d.String())
	}
	if m.Name == PNPM.Name {
		args = append(args, "--ignore-scripts")
	}
	return args
}

// Run returns "<pm> run <script>".
func (m Manager) Run(script string) string {
	return m.Name + " run " + script
}

func (m Manager) String() string {
	if m.Version == nil {
		return m.Name
	}
	return m.Name + " " + m.Version.String()
}
