package pkgmanager

import (
	"github.com/Masterminds/semver/v3"
	"github.com/toprak/run/pkg/scaffold"
)

// Dependency is a package to install, optionally pinned to a version.
type Dependency struct {
	Name    string
	Version *semver.Version
}

func (d Dependency) String() string {
	if d.Version == nil {
		return d.Name
	}
	return d.Name + "@" + d.Version.String()
}

func dep(name string) Dependency {
	return Dependency{Name: name}
}

var baseDependencies = []Dependency{
	dep("@11ty/eleventy"),
	dep("@11ty/eleventy-plugin-bundle"),
	dep("postcss"),
	dep("autoprefixer"),
	dep("esbuild"),
	dep("concurrently"),
	dep("html-minifier-terser"),
	dep("cssnano"),
	dep("postcss-cli"),
	dep("markdown-it"),
}

// Dependencies lists the development dependencies a project built from cfg
// needs.
func Dependencies(cfg scaffold.Config) []Dependency {
	deps := append([]Dependency(nil), baseDependencies...)

	if cfg.CSS.IsFramework() {
		deps = append(deps, Dependency{
			Name:    "tailwindcss",
			Version: semver.MustParse(scaffold.TailwindVersion),
		})
	}
	if cfg.TypeScript {
		deps = append(deps, dep("typescript"), dep("@types/node"))
	}

	return deps
}
