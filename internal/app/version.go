package app

import (
	"fmt"
	"runtime/debug"
)

// Overridden with -ldflags "-X github.com/heartmarshall/poetry-backend/internal/app.Version=1.2.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is reported in the startup log and by GET /health. Without
// ldflags the commit and time come from the VCS stamp of the binary.
func BuildVersion() string {
	info, _ := debug.ReadBuildInfo()
	return buildVersion(Version, Commit, BuildTime, info)
}

func buildVersion(version, commit, builtAt string, info *debug.BuildInfo) string {
	if info != nil {
		var modified bool
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "unknown" && s.Value != "" {
					commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if builtAt == "unknown" && s.Value != "" {
					builtAt = s.Value
				}
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if modified && commit != "unknown" {
			commit += "-dirty"
		}
	}
	return fmt.Sprintf("poetry-backend %s (commit: %s, built: %s)", version, commit, builtAt)
}

func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
