// Package iodb implements database operations for PostgreSQL (pgxpool)
// and SQLite (modernc). This is an impure I/O package that implements
// contracts defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/db"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// registers "sqlite" driver
	_ "modernc.org/sqlite"
)

// operator implements db.Operator interface.
type operator struct {
	driver string
	pool   *pgxpool.Pool
	sqlDB  *sql.DB
	gormDB *gorm.DB
}

// NewOperator creates a new database operator (without connecting).
func NewOperator() db.Operator {
	return &operator{}
}

// Connect opens the store selected by the configuration.
func (o *operator) Connect(ctx context.Context, cfg *config.Config) error {
	switch cfg.Database.Driver {
	case "postgres":
		return o.connectPostgres(ctx, &cfg.Database)
	case "sqlite":
		return o.connectSQLite(ctx, cfg.SQLitePath())
	default:
		return UnknownDriverError(cfg.Database.Driver)
	}
}

func (o *operator) connectPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, err)
	}

	// pipeline stages use the store sequentially
	poolConfig.MaxConns = 2
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port, cfg.Database, err)
	}

	o.driver = "postgres"
	o.pool = pool
	o.sqlDB = sqlDB
	o.gormDB = gormDB
	slog.Info("Connected to PostgreSQL",
		"host", cfg.Host, "database", cfg.Database)
	return nil
}

func (o *operator) connectSQLite(ctx context.Context, path string) error {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	gormDB, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}),
		gormConfig(),
	)
	if err != nil {
		return SQLiteConnectionError(path, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return SQLiteConnectionError(path, err)
	}
	// one writer, one connection
	sqlDB.SetMaxOpenConns(1)

	if err = sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return SQLiteConnectionError(path, err)
	}

	o.driver = "sqlite"
	o.sqlDB = sqlDB
	o.gormDB = gormDB
	slog.Info("Connected to SQLite", "path", path)
	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

// Close releases all database connections.
func (o *operator) Close() error {
	var err error
	if o.sqlDB != nil {
		err = o.sqlDB.Close()
	}
	if o.pool != nil {
		o.pool.Close()
	}
	o.sqlDB = nil
	o.pool = nil
	o.gormDB = nil
	return err
}

// DB returns the GORM handle.
func (o *operator) DB() *gorm.DB {
	return o.gormDB
}

// TableExists checks if a table exists in the current database.
func (o *operator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.gormDB == nil {
		return false, NotConnectedError()
	}
	return o.gormDB.WithContext(ctx).Migrator().HasTable(tableName), nil
}

// HasTables checks if the database has any tables.
func (o *operator) HasTables(ctx context.Context) (bool, error) {
	tables, err := o.tables(ctx)
	if err != nil {
		return false, err
	}
	return len(tables) > 0, nil
}

// DropAllTables drops all tables of the schema.
func (o *operator) DropAllTables(ctx context.Context) error {
	tables, err := o.tables(ctx)
	if err != nil {
		return err
	}

	m := o.gormDB.WithContext(ctx).Migrator()
	for _, table := range tables {
		if err := m.DropTable(table); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

func (o *operator) tables(ctx context.Context) ([]string, error) {
	if o.gormDB == nil {
		return nil, NotConnectedError()
	}
	all, err := o.gormDB.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, QueryTablesError(err)
	}
	var res []string
	for _, v := range all {
		if strings.HasPrefix(v, "sqlite_") {
			continue
		}
		res = append(res, v)
	}
	return res, nil
}
