package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/pkg/errcode"
)

// ConnectionError is returned when PostgreSQL connection fails.
func ConnectionError(host string, port int, database string, err error) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running: <em>pg_isready -h %s -p %d</em>
  2. Verify that database <em>%s</em> exists
  3. Check ~/.config/orenzadb/config.yaml or ORENZADB_DATABASE_* variables`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{host, port, database},
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// SQLiteConnectionError is returned when SQLite file cannot be opened.
func SQLiteConnectionError(path string, err error) error {
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  "Could not open SQLite database <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open sqlite %s: %w", path, err),
	}
}

// UnknownDriverError is returned for unsupported database drivers.
func UnknownDriverError(driver string) error {
	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  "Unknown database driver <em>%s</em>, use postgres or sqlite",
		Vars: []any{driver},
		Err:  fmt.Errorf("unknown database driver '%s'", driver),
	}
}

// NotConnectedError is returned when operations are attempted
// before connecting.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database is not connected",
		Err:  fmt.Errorf("database not connected"),
	}
}

// QueryTablesError is returned when listing tables fails.
func QueryTablesError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Could not list database tables",
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Could not drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}
