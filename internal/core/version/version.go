// Package version reports what build of the api is running
package version

// Service is the name the api reports about itself
const Service = "biasdb-api"

// stamped with -ldflags "-X biasdb/internal/core/version.version=v0.1.0 -X ...commit=abcd -X ...date=2026-10-02"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the stamped build details
func Info() BuildInfo {
	return BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
}
