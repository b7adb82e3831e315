// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other awsctl packages to avoid import cycles.

package version

import (
	"runtime/debug"
)

// Version is the module version, or "dev" for local builds.
var Version, Commit = func() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev", ""
	}
	return fromBuildInfo(info)
}()

func fromBuildInfo(info *debug.BuildInfo) (version string, commit string) {
	version = "dev"
	if v := info.Main.Version; v != "" && v != "(devel)" {
		version = v
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			commit = s.Value[:7]
		}
	}
	return version, commit
}

// String renders the version with the short commit, when known.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
