package version

import "strings"

// Version information for the arcc CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// VersionString renders the version cobra.Command.Version expects:
// the bare semantic version, plus the commit when it is set, and the build
// date after the commit when both are set.
func VersionString() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	if GitCommit == "" {
		return v
	}
	if BuildDate == "" {
		return v + " (" + GitCommit + ")"
	}
	return v + " (" + GitCommit + ", " + BuildDate + ")"
}
