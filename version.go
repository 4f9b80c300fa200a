package main

import (
	"runtime/debug"
	"strings"
)

// version is stamped by release builds via -ldflags.
var version = "dev"

var readBuildInfo = debug.ReadBuildInfo

// currentVersion prefers the stamped version and falls back to the module
// version embedded by `go install`.
func currentVersion() string {
	if v := strings.TrimSpace(version); v != "" && v != "dev" {
		return v
	}
	info, ok := readBuildInfo()
	if !ok || info == nil {
		return "dev"
	}
	if mv := strings.TrimSpace(info.Main.Version); mv != "" && mv != "(devel)" {
		return mv
	}
	return "dev"
}
