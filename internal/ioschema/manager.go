// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/orenza/orenzadb/pkg/db"
	"github.com/orenza/orenzadb/pkg/lifecycle"
	"github.com/orenza/orenzadb/pkg/schema"
	"gorm.io/gorm"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the database schema using GORM AutoMigrate.
// On PostgreSQL it also sets "C" collation on name columns.
func (m *manager) Create(ctx context.Context) error {
	gormDB := m.operator.DB()
	if gormDB == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	if gormDB.Dialector.Name() == "postgres" {
		if err := setCollation(ctx, gormDB); err != nil {
			return err
		}
	}

	slog.Info("Schema created", "dialect", gormDB.Dialector.Name())
	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate.
func (m *manager) Migrate(ctx context.Context) error {
	gormDB := m.operator.DB()
	if gormDB == nil {
		return NotConnectedError()
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

// setCollation sets "C" collation on name columns, so species and
// pathway names sort bytewise.
func setCollation(ctx context.Context, gormDB *gorm.DB) error {
	type columnDef struct {
		table, column string
		varchar       int
	}

	columns := []columnDef{
		{schema.SpeciesTable, "name", 255},
		{schema.SpeciesTable, "canonical", 255},
		{schema.SpeciesECNumbersTable, "species_name", 255},
		{schema.PathwayClassesTable, "name", 255},
	}

	qStr := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE VARCHAR(%d) COLLATE "C"`

	for _, col := range columns {
		q := formatCollationSQL(qStr, col.table, col.column, col.varchar)
		if err := gormDB.WithContext(ctx).Exec(q).Error; err != nil {
			return CollationError(col.table, col.column, err)
		}
	}

	return nil
}
