package version

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/ludo-technologies/jsplit/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// GetVersion returns the release version, falling back to the module
// version recorded by `go install`.
func GetVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}

// GetFullVersion appends the commit and build date when known. VCS
// settings stamped by the toolchain fill in whatever ldflags left empty.
func GetFullVersion() string {
	commit, date := Commit, Date
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" {
					commit = s.Value
				}
			case "vcs.time":
				if date == "" {
					date = s.Value
				}
			}
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s (commit %s, built %s)", GetVersion(), commit, date)
}
