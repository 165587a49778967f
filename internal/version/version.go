package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the current version of biosctl.
// Use semantic versioning: MAJOR.MINOR.PATCH
const Version = "0.3.0"

// Long returns the version followed by the VCS revision the binary was
// built from, when known, and the Go toolchain.
func Long() string {
	revision := "unknown"
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				revision = s.Value
			}
		}
	}

	return fmt.Sprintf("biosctl %s (%s)\n%s (%s/%s)", Version, revision, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
