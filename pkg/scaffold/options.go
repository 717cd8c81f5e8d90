package scaffold

import (
	"runtime"

	"github.com/toprak/run/pkg/events"
)

func defaultOptions() *options {
	return &options{
		workers:        runtime.NumCPU(),
		handler:        events.NewNoopHandler(),
		packageManager: DefaultPackageManager,
		manifest:       DefaultManifest,
		force:          false,
	}
}

type options struct {
	workers        int
	handler        events.Handler
	packageManager string
	manifest       func(Config) []Entry
	force          bool
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}

	return o
}

type Option func(o *options)

// WithWorkers bounds the render and substitution worker pools. Values below
// one mean unbounded.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func WithHandler(h events.Handler) Option {
	if h == nil {
		h = events.NewNoopHandler()
	}

	return func(o *options) {
		o.handler = h
	}
}

// WithPackageManager sets the value substituted for {{PACKAGE_MANAGER}}.
func WithPackageManager(name string) Option {
	return func(o *options) {
		if name != "" {
			o.packageManager = name
		}
	}
}

func WithManifest(manifest func(Config) []Entry) Option {
	return func(o *options) {
		if manifest != nil {
			o.manifest = manifest
		}
	}
}

// WithForce allows materializing into a directory that already holds a
// package.json.
func WithForce(force bool) Option {
	return func(o *options) {
		o.force = force
	}
}
