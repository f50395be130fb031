// Package config provides configuration management for orenzadb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     path, batch_size
//   - Log: level, format, destination
//   - Fetch: max_retries, retry_delay, timeout, pdb_workers
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Run.Sources, Run.KeepFiles (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ORENZADB_ prefix with underscores for nesting:
//
//	ORENZADB_DATABASE_DRIVER=sqlite
//	ORENZADB_DATABASE_PATH=/var/lib/orenza/orenza.sqlite
//	ORENZADB_LOG_LEVEL=info
//	ORENZADB_FETCH_MAX_RETRIES=5
package config

import (
	"runtime"
)

// Config represents the complete orenzadb configuration.
type Config struct {
	// Database contains connection settings of the destination store.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Fetch contains settings for downloads of raw source data.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	// Run contains per-run settings of stage commands.
	Run RunConfig `mapstructure:"run" yaml:"run"`

	// JobsNumber is the number of concurrent workers used to parse PDB files.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains connection parameters of the destination store.
type DatabaseConfig struct {
	// Driver selects the storage engine: "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the SQLite database file. If empty, the file is created
	// in the cache directory.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize is the number of join rows inserted by one statement.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// FetchConfig contains settings of network transfers.
type FetchConfig struct {
	// MaxRetries is the number of attempts for one download.
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries"`

	// RetryDelay is the initial delay between attempts in seconds.
	// The delay doubles after every failed attempt.
	RetryDelay int `mapstructure:"retry_delay" yaml:"retry_delay"`

	// Timeout in seconds for a single request.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`

	// PDBWorkers is the number of concurrent downloads from the PDB mirror.
	PDBWorkers int `mapstructure:"pdb_workers" yaml:"pdb_workers"`
}

// RunConfig contains runtime settings of stage commands.
type RunConfig struct {
	// Sources is the list of sources to process. Nil means all sources,
	// an empty non-nil slice means the selection had no valid sources.
	Sources []string `mapstructure:"sources" yaml:"sources"`

	// KeepFiles preserves downloaded raw files after parsing.
	KeepFiles bool `mapstructure:"keep_files" yaml:"keep_files"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    "postgres",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "orenza",
			SSLMode:   "disable",
			BatchSize: 5_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Fetch: FetchConfig{
			MaxRetries: 5,
			RetryDelay: 2,
			Timeout:    60,
			PDBWorkers: 8,
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
