package config

import (
	"strings"

	"github.com/orenza/orenzadb/pkg/model"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver sets the storage engine.
// Valid values: "postgres", "sqlite".
func OptDatabaseDriver(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabasePath sets the SQLite database file.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseBatchSize sets the number of join rows per insert statement.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptFetchMaxRetries sets the number of download attempts.
func OptFetchMaxRetries(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Max Retries", i) {
			c.Fetch.MaxRetries = i
		}
	}
}

// OptFetchRetryDelay sets the initial delay between download attempts
// in seconds.
func OptFetchRetryDelay(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Retry Delay", i) {
			c.Fetch.RetryDelay = i
		}
	}
}

// OptFetchTimeout sets the timeout of a single request in seconds.
func OptFetchTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Timeout", i) {
			c.Fetch.Timeout = i
		}
	}
}

// OptFetchPDBWorkers sets the number of concurrent PDB downloads.
func OptFetchPDBWorkers(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch PDB Workers", i) {
			c.Fetch.PDBWorkers = i
		}
	}
}

// OptRunSources sets the list of sources to process.
// Unknown sources are ignored with a warning, empty slice keeps all sources.
// If none of the given names is valid, no source is selected.
// Runtime-only field - not in ToOptions().
func OptRunSources(ss []string) Option {
	return func(c *Config) {
		if len(ss) == 0 {
			return
		}
		res := []string{}
		for _, s := range ss {
			src, err := model.NewSource(s)
			if err != nil {
				gnWarnSource(s)
				continue
			}
			res = append(res, string(src))
		}
		c.Run.Sources = res
	}
}

// OptRunKeepFiles keeps downloaded raw files after parsing.
// Runtime-only field - not in ToOptions().
func OptRunKeepFiles(b bool) Option {
	return func(c *Config) {
		c.Run.KeepFiles = b
	}
}

// OptJobsNumber sets the number of concurrent parsing workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
