// Package iolink implements the Linker interface. It counts join rows of
// every evidence relation per EC number and stores the counts and orphan
// flags on enzymes. It never deletes rows.
package iolink

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/orenza/orenzadb/pkg/db"
	"github.com/orenza/orenzadb/pkg/lifecycle"
	"github.com/orenza/orenzadb/pkg/schema"
	"gorm.io/gorm"
)

type linker struct {
	operator db.Operator
}

// New creates a Linker that works through the given operator.
func New(op db.Operator) lifecycle.Linker {
	return &linker{operator: op}
}

type ecCount struct {
	ECID  string `gorm:"column:ec_id"`
	Total int    `gorm:"column:total"`
}

// Link recomputes counts of all relations. EC numbers with evidence but
// without an enzyme are returned per relation name.
func (l *linker) Link(ctx context.Context) (map[string][]string, error) {
	gdb := l.operator.DB()
	if gdb == nil {
		return nil, NotConnectedError()
	}
	gdb = gdb.WithContext(ctx)

	start := time.Now()
	slog.Info("Starting linking")

	var numbers []string
	err := gdb.Model(&schema.ECNumber{}).Order("number").
		Pluck("number", &numbers).Error
	if err != nil {
		return nil, CountError("ec_numbers", err)
	}

	var ecs []string
	err = gdb.Model(&schema.Enzyme{}).Pluck("ec_number", &ecs).Error
	if err != nil {
		return nil, CountError("enzymes", err)
	}
	enzymes := make(map[string]struct{}, len(ecs))
	for _, v := range ecs {
		enzymes[v] = struct{}{}
	}

	// orphan flags and counts change together or not at all
	res := make(map[string][]string)
	err = gdb.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&schema.Enzyme{}).Where("1 = 1").
			Update("orphan", true).Error
		if err != nil {
			return UpdateError("orphan", err)
		}

		for _, rel := range schema.Relations {
			if err = ctx.Err(); err != nil {
				return err
			}
			invalid, err := l.link(tx, rel, numbers, enzymes)
			if err != nil {
				return err
			}
			if len(invalid) > 0 {
				res[rel.Name] = invalid
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, rel := range schema.Relations {
		invalid := res[rel.Name]
		if len(invalid) == 0 {
			continue
		}
		slog.Warn("EC numbers without enzyme",
			"relation", rel.Name, "count", len(invalid))
		gn.Warn("%s <em>%s</em> EC numbers have no enzyme",
			humanize.Comma(int64(len(invalid))), rel.Name)
	}

	if err = analyze(ctx, gdb); err != nil {
		slog.Warn("Cannot update database statistics", "error", err)
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Linking finished",
		"ec_numbers", len(numbers),
		"enzymes", len(enzymes),
		"duration", dur,
	)
	gn.Info("Linked %s EC numbers in %s",
		humanize.Comma(int64(len(numbers))), dur)
	return res, nil
}

// link writes counts of one relation. Only the count column of the
// relation and the orphan flag are touched.
func (l *linker) link(
	tx *gorm.DB,
	rel schema.Relation,
	numbers []string,
	enzymes map[string]struct{},
) ([]string, error) {
	counts, err := countJoins(tx, rel)
	if err != nil {
		return nil, CountError(rel.Name, err)
	}

	var invalid []string
	var linked int
	bar := newProgressBar(len(numbers), fmt.Sprintf("Linking %s: ", rel.Name))
	defer bar.Finish()

	err = tx.Model(&schema.Enzyme{}).Where("1 = 1").
		Update(rel.CountColumn, 0).Error
	if err != nil {
		return nil, UpdateError(rel.Name, err)
	}

	for _, n := range numbers {
		bar.Increment()
		total := counts[n]
		if _, ok := enzymes[n]; !ok {
			if total > 0 {
				invalid = append(invalid, n)
			}
			continue
		}
		if total == 0 {
			continue
		}
		err = tx.Model(&schema.Enzyme{}).Where("ec_number = ?", n).
			Updates(map[string]any{
				rel.CountColumn: total,
				"orphan":        false,
			}).Error
		if err != nil {
			return nil, UpdateError(rel.Name, err)
		}
		linked++
	}

	slog.Info("Relation linked",
		"relation", rel.Name,
		"enzymes", linked,
		"invalid", len(invalid),
	)
	return invalid, nil
}

func countJoins(gdb *gorm.DB, rel schema.Relation) (map[string]int, error) {
	var rows []ecCount
	err := gdb.Table(rel.JoinTable).
		Select("ec_id, COUNT(*) AS total").
		Group("ec_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make(map[string]int, len(rows))
	for _, v := range rows {
		res[v.ECID] = v.Total
	}
	return res, nil
}

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
