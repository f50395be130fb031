package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "orenzadb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/orenzadb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/orenzadb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DownloadDir returns the staging directory for raw source files.
func DownloadDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "downloads")
}

// DataDir returns the directory of intermediate artifacts.
func DataDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "data")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/orenzadb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/orenzadb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the full path to the sources.yaml file.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "sources.yaml")
}

// DefaultSQLitePath returns the SQLite file used when no path is configured.
func DefaultSQLitePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), AppName+".sqlite")
}
