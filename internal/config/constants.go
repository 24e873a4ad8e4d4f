package config

import "bikeshare/pkg/contracts"

// Application constants
const (
	AppName    = "bikeshare"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable read by Load
	EnvPrefix = "BIKESHARE"

	// ConfigFileEnv names the variable that points at a YAML config file
	ConfigFileEnv     = "BIKESHARE_CONFIG"
	DefaultConfigFile = "bikeshare.yaml"

	DefaultDataDir    = "data"
	DefaultReportsDir = "reports"
	DefaultLogsDir    = "logs"
)
