// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime/debug"
)

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

// Resolve fills empty fields from the module build info embedded by the
// toolchain, so a plain `go build` without ldflags still reports something.
func (i Info) Resolve() Info {
	if i.Version != "" && i.GitCommit != "" {
		return i
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}

	if i.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.GitCommit == "" && len(s.Value) >= 7 {
				i.GitCommit = s.Value[:7]
			}
		case "vcs.time":
			if i.BuildTime == "" {
				i.BuildTime = s.Value
			}
		}
	}

	return i
}

// String formats the version for log lines and the health endpoint.
func (i Info) String() string {
	v := i.Version
	if v == "" {
		v = "dev"
	}
	if i.GitCommit == "" {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, i.GitCommit)
}
