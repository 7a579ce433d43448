// Package version exposes build metadata stamped in via -ldflags.
package version

// Build metadata, overridden at link time.
var (
	Version = "dev"
	Commit  = "<unknown>"
	Date    = "<unknown>"
)
