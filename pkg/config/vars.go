package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gazdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gazdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gazdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gazdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gazdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// HeuristicsFilePath returns the full path to the heuristics.yaml file
// with the place classification and scoring tables.
func HeuristicsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "heuristics.yaml")
}
