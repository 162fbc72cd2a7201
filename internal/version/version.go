// Package version holds build metadata for the clustex binary, stamped via
// ldflags by the release build; defaults identify a local dev build.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
