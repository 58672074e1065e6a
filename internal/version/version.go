package version

import "fmt"

// These variables are set at build time via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version string shown by `enscope --version`.
func String() string {
	return fmt.Sprintf("enscope %s (commit: %s, built: %s)", Version, shortCommit(), BuildTime)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
