// Package version holds build metadata stamped in via -ldflags.
package version

var (
	// Version is the semantic version of the build.
	Version = "0.3.0"
	// Commit is the short git hash the binary was built from.
	Commit = "dev"
)
