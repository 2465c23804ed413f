// Package version reports the build version of the binary.
package version

import "runtime/debug"

// Version is set at build time with -ldflags "-X ...version.Version=v1.2.3".
var Version = ""

// buildInfo is swapped in tests.
var buildInfo = debug.ReadBuildInfo

// Effective returns v when set, otherwise the module version or a devel
// string derived from VCS stamps.
func Effective(v string) string {
	if v != "" {
		return v
	}

	info, ok := buildInfo()
	if !ok {
		return "unknown"
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + shortRevision(revision)
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}

// String is Effective(Version).
func String() string {
	return Effective(Version)
}

// shortRevision returns the first 12 chars of a revision.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
