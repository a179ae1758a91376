// Package version carries build metadata, overridable with -ldflags.
package version

var (
	Version = "dev"
	Date    = "unknown"
)
