// Package version provides information about the build version of the binaries.
package version

import "runtime/debug"

// BuildInfo holds version information about a build.
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Set via -ldflags "-X 'contactguard/internal/core/version.version=v0.1.0'
// -X 'contactguard/internal/core/version.commit=abcd' -X 'contactguard/internal/core/version.date=2026-10-01'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for service
func Info(service string) BuildInfo {
	bi := BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := debug.ReadBuildInfo(); ok && info != nil {
		bi.GoVersion = info.GoVersion
	}
	return bi
}

// String renders a one-line version banner
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}
