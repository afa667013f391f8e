// Package version provides build metadata for the openbook binaries
package version

import "github.com/rs/zerolog"

// BuildInfo holds version information about a binary build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the named binary. The version, commit
// and date variables are set at build time, e.g.
// -ldflags "-X 'openbook/internal/core/version.version=v0.1.0' -X 'openbook/internal/core/version.commit=abcd'"
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// MarshalZerologObject lets a BuildInfo be logged with Object("build", info)
func (b BuildInfo) MarshalZerologObject(e *zerolog.Event) {
	e.Str("service", b.Service).
		Str("version", b.Version).
		Str("commit", b.Commit).
		Str("date", b.Date)
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
