// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/orenza/orenzadb/internal/iodb"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/db"
	"github.com/orenza/orenzadb/pkg/schema"
)

const (
	// TestDatabaseName is the PostgreSQL database name used for integration
	// tests. Tests never run against production databases.
	TestDatabaseName = "orenza_test"
)

// GetTestConfig returns a PostgreSQL configuration for integration tests.
// Connection settings are taken from ORENZADB_DATABASE_* environment
// variables, the database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()
	var opts []config.Option
	if s := os.Getenv("ORENZADB_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("ORENZADB_DATABASE_PORT"); s != "" {
		if port, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if s := os.Getenv("ORENZADB_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("ORENZADB_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts,
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	)
	cfg.Update(opts)
	return cfg
}

// SQLiteConfig returns configuration with a SQLite store in a temporary
// directory that also serves as the home directory.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(filepath.Join(home, "orenza.sqlite")),
		config.OptDatabaseBatchSize(2),
		config.OptJobsNumber(2),
	})
	for _, dir := range []string{config.DataDir(home), config.DownloadDir(home)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return cfg
}

// NewSQLiteOperator connects to a fresh SQLite store with the full schema.
// The connection is closed when the test finishes.
func NewSQLiteOperator(t *testing.T, cfg *config.Config) db.Operator {
	t.Helper()
	op := iodb.NewOperator()
	if err := op.Connect(context.Background(), cfg); err != nil {
		t.Fatalf("Failed to open SQLite store: %v", err)
	}
	t.Cleanup(func() { op.Close() })

	if err := schema.Migrate(op.DB()); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	return op
}
