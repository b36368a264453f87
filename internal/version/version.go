// Package version holds the application version string, overridable at build
// time with -ldflags "-X .../internal/version.Version=...".
package version

// Version is the application version.
var Version = "dev"
