package version

import (
	"fmt"
	"runtime"
)

// Set via -ldflags at release time
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns the bare version string
func Short() string {
	return Version
}

// Info returns a one-line description for `reel-tasks version`
func Info() string {
	return fmt.Sprintf("reel-tasks %s (commit %s, built %s, %s/%s)", Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent with every request to the server
func UserAgent() string {
	return "reel-tasks/" + Version
}
