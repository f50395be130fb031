package db

import (
	"context"

	"github.com/orenza/orenzadb/pkg/config"
	"gorm.io/gorm"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes a *gorm.DB handle
// for schema manager, loaders and the cross-link stage.
//
// All database work of a run goes through one Operator, statements are
// executed sequentially.
type Operator interface {
	// Connect opens the destination store selected by cfg.Driver.
	Connect(context.Context, *config.Config) error

	// Close closes the database connections.
	Close() error

	// DB returns the GORM handle, nil if not connected.
	DB() *gorm.DB

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables of the schema.
	DropAllTables(ctx context.Context) error
}
