package version

import "github.com/Masterminds/semver/v3"

// Version of toprak. Overridden at link time with
// -ldflags "-X github.com/toprak/run/pkg/version.version=x.y.z".
var version = "0.1.0"

// Current returns the parsed tool version. A malformed link-time value falls
// back to 0.0.0-dev.
func Current() *semver.Version {
	v, err := semver.NewVersion(version)
	if err != nil {
		return semver.New(0, 0, 0, "dev", "")
	}
	return v
}

// String gives you the string representation of the version
func String() string {
	return Current().String()
}
