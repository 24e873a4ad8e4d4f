package contracts

import (
	"fmt"
	"runtime"
)

// Version is the release of the bikeshare tools
const Version = "1.0.0"

const (
	// ReportFormat versions the exported CSV/XLSX layout
	ReportFormat = "v1"
	APIVersion   = "v1"
)

// Set with -ldflags "-X bikeshare/pkg/contracts.GitCommit=..."
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version      string `json:"version"`
	APIVersion   string `json:"api_version"`
	ReportFormat string `json:"report_format"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
}

// GetBuildInfo collects the version constants and runtime details
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:      Version,
		APIVersion:   APIVersion,
		ReportFormat: ReportFormat,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}
}

// String renders "bikeshare v1.0.0 (commit abc, built t, go1.24 linux/amd64)"
func (b BuildInfo) String() string {
	return fmt.Sprintf("bikeshare v%s (commit %s, built %s, %s %s/%s)",
		b.Version, b.GitCommit, b.BuildTime, b.GoVersion, b.OS, b.Architecture)
}
