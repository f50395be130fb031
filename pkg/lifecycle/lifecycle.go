// Package lifecycle defines interfaces of pipeline stages. Implementations
// live in internal/io* packages.
package lifecycle

import (
	"context"

	"github.com/orenza/orenzadb/pkg/model"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate to handle both initial schema creation and
// migrations. Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the database schema.
	Create(ctx context.Context) error

	// Migrate updates the database schema to the latest version.
	Migrate(ctx context.Context) error
}

// Fetcher downloads raw data of a source into its staging directory.
type Fetcher interface {
	// Fetch downloads files of the source. Failed page-level downloads are
	// logged and skipped, failed bulk downloads return an error.
	Fetch(ctx context.Context, src model.Source) error
}

// Parser converts raw files of a source into intermediate artifacts.
type Parser interface {
	// Parse reads raw files of the source and saves one artifact for every
	// dataset of the source.
	Parse(ctx context.Context, src model.Source) error
}

// Loader replaces tables of a dataset with the content of its artifact.
type Loader interface {
	// Load wipes and repopulates tables of the dataset. A missing or empty
	// artifact leaves the tables untouched.
	Load(ctx context.Context, ds model.Source) error
}

// Linker recomputes evidence counts and orphan flags of enzymes.
type Linker interface {
	// Link updates counts for all relations and returns EC numbers that
	// have no enzyme, keyed by relation name.
	Link(ctx context.Context) (map[string][]string, error)
}

// Updater runs the whole pipeline for selected sources.
type Updater interface {
	// Update downloads, parses and loads every selected source, then links
	// the data if any linked source was processed.
	Update(ctx context.Context) error
}
