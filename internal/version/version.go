// Package version holds the build metadata printed by "edtable version",
// reported on /healthz and advertised over mDNS.
//
// Release builds set both values with ldflags:
//
//	go build -ldflags="-X github.com/muurk/edtable/internal/version.Version=v1.2.3 \
//	                   -X github.com/muurk/edtable/internal/version.Commit=abc123"
//
// Other builds derive them from the VCS stamp in the binary's build info.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// Version is the release version, or dev-<date> for unreleased builds
	Version = ""
	// Commit is the short git revision, suffixed -dirty for modified trees
	Commit = ""
)

func init() {
	info, _ := debug.ReadBuildInfo()
	Version, Commit = resolve(Version, Commit, info, time.Now())
}

// resolve fills whichever of version and commit is empty from the build
// info's VCS settings, falling back to a dev version stamped with now.
func resolve(version, commit string, info *debug.BuildInfo, now time.Time) (string, string) {
	vcs := map[string]string{}
	if info != nil {
		for _, s := range info.Settings {
			vcs[s.Key] = s.Value
		}
	}

	if commit == "" {
		commit = "unknown"
		if rev := vcs["vcs.revision"]; rev != "" {
			if len(rev) > 7 {
				rev = rev[:7]
			}
			if vcs["vcs.modified"] == "true" {
				rev += "-dirty"
			}
			commit = rev
		}
	}

	if version == "" {
		stamp := now
		if t, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
			stamp = t
		}
		version = "dev-" + stamp.Format("20060102")
	}
	return version, commit
}

// Full returns the version with its commit, as printed by the CLI.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
