package iolink

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"gorm.io/gorm"
)

// analyze refreshes query planner statistics after counts were
// rewritten. PostgreSQL also reclaims space of updated rows.
//
// VACUUM cannot run inside a transaction block.
func analyze(ctx context.Context, gdb *gorm.DB) error {
	query := "ANALYZE"
	if gdb.Dialector.Name() == "postgres" {
		query = "VACUUM ANALYZE"
	}

	start := time.Now()
	slog.Info("Updating database statistics", "query", query)
	if err := gdb.WithContext(ctx).Exec(query).Error; err != nil {
		return err
	}
	slog.Info("Database statistics updated",
		"duration", gnfmt.TimeString(time.Since(start).Seconds()))
	return nil
}
