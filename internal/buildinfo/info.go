package buildinfo

import "fmt"

var (
	// Version is stamped via -ldflags at release time.
	Version = "dev"
	// Commit is stamped via -ldflags at release time.
	Commit = "none"
	// Date is stamped via -ldflags at release time.
	Date = "unknown"
)

// String formats the build metadata for --version output.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
