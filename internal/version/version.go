package version

import "fmt"

var (
	// Version is the current agent version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a one-line version summary for --version output and logs.
func String() string {
	return fmt.Sprintf("swarm-pilot %s (%s, built %s)", Version, GitSHA, BuildTime)
}
