// Package version reports how the pdfmerge binary was built.
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X pdfmerge/pkg/version.Version=..." on release builds.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// AppName is the name reported in logs and version output.
const AppName = "pdfmerge"

// Info is the build metadata printed by "pdfmerge version".
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// Get collects the linked-in values and the running Go toolchain.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func (i Info) String() string {
	return fmt.Sprintf(
		"%s version %s (commit: %s) built at %s with %s on %s",
		AppName,
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
