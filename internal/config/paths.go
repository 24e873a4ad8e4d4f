package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the directories the tools read from and write to
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	LogsDir    string
}

// GetPaths resolves the configured directories. Relative directories are
// joined to BaseDir, which defaults to the working directory.
func GetPaths(cfg DataConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	return &Paths{
		BaseDir:    base,
		DataDir:    resolve(base, cfg.Dir, DefaultDataDir),
		ReportsDir: resolve(base, cfg.ReportsDir, DefaultReportsDir),
		LogsDir:    resolve(base, cfg.LogsDir, DefaultLogsDir),
	}, nil
}

func resolve(base, dir, fallback string) string {
	if dir == "" {
		dir = fallback
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}

// EnsureDirectories creates the writable directories. DataDir is read-only
// input and is never created.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// DatasetFile returns the path of a dataset file inside DataDir
func (p *Paths) DatasetFile(name string) string {
	return filepath.Join(p.DataDir, name)
}

// GetReportPath returns the path of a report file inside ReportsDir
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// GetLogPath returns the path of a log file inside LogsDir
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// ResolveFile anchors a relative path at BaseDir
func (p *Paths) ResolveFile(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.BaseDir, path)
}

// LogPathResolution logs the resolved directories at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.Bool("data_dir_exists", FileExists(p.DataDir)),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
