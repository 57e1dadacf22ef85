// Package build holds version information injected at link time.
package build

// Build metadata, set via -ldflags "-X go.trai.ch/genie/internal/build.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
