// Package config loads the bikeshare configuration and resolves the
// directories the tools read from and write to.
//
// # Configuration Sources
//
// Values are layered, later sources overriding earlier ones:
//
//	1. Default() values
//	2. A YAML file (BIKESHARE_CONFIG, or bikeshare.yaml in the working directory)
//	3. Environment variables prefixed with BIKESHARE_
//
// # Environment Variables
//
//	BIKESHARE_DATA_DIR=/srv/bikeshare/data
//	BIKESHARE_DATA_CACHE=true
//	BIKESHARE_SERVER_PORT=8080
//	BIKESHARE_LOGGING_LEVEL=debug
//	BIKESHARE_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Path Management
//
// Paths resolves the data, reports and logs directories against a base
// directory (the working directory unless configured):
//
//	paths, err := config.GetPaths(cfg.Data)
//	file := paths.DatasetFile("chicago.csv")
package config
