// Package version holds the build version of tip.
package version

// Version is set at build time with -ldflags "-X .../internal/version.Version=...".
var Version = "development"

// Commit is the git commit the binary was built from.
var Commit = "unknown"

// String returns Version, suffixed with +Commit when the commit is known.
func String() string {
	if Commit != "unknown" && Commit != "" {
		return Version + "+" + Commit
	}
	return Version
}
