// Package ioload implements the Loader interface. Every dataset owns its
// tables: they are wiped and repopulated from the intermediate artifact
// produced by ioparse. Parent rows go first, then shared EC numbers, then
// join rows, with one transaction per top-level key.
package ioload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/orenza/orenzadb/internal/iofs"
	"github.com/orenza/orenzadb/internal/ioparse"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/db"
	"github.com/orenza/orenzadb/pkg/ec"
	"github.com/orenza/orenzadb/pkg/lifecycle"
	"github.com/orenza/orenzadb/pkg/model"
	"github.com/orenza/orenzadb/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// errNoData marks an artifact that is missing, unreadable or empty.
var errNoData = errors.New("no intermediate data")

type loader struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a Loader that writes through the given operator.
func New(cfg *config.Config, op db.Operator) lifecycle.Loader {
	return &loader{cfg: cfg, operator: op}
}

// Load replaces tables of a dataset with its artifact.
func (l *loader) Load(ctx context.Context, ds model.Source) error {
	gdb := l.operator.DB()
	if gdb == nil {
		return NotConnectedError()
	}

	start := time.Now()
	log := slog.With("dataset", ds)
	path := ioparse.ArtifactPath(l.cfg.HomeDir, ds)
	if !iofs.Exists(path) {
		log.Warn("Intermediate data not found, tables are kept", "path", path)
		gn.Warn("No parsed data for <em>%s</em>, loading skipped", ds)
		return nil
	}
	log.Info("Starting loading")

	r := &run{
		ctx:       ctx,
		db:        gdb.WithContext(ctx),
		log:       log,
		ds:        ds,
		batchSize: l.cfg.Database.BatchSize,
		ecs:       make(map[string]struct{}),
	}

	var count int
	var err error
	switch ds {
	case model.ExplorEnz:
		count, err = l.loadEnzymes(r)
	case model.Nomenclature:
		count, err = l.loadNomenclatures(r)
	case model.SwissProt, model.TrEMBL:
		count, err = l.loadUniProt(r)
	case model.KEGG:
		count, err = l.loadPathways(r)
	case model.BRENDA:
		count, err = l.loadSpecies(r)
	case model.PDB:
		count, err = l.loadStructures(r)
	default:
		err = UnknownDatasetError(string(ds))
	}

	if errors.Is(err, errNoData) {
		log.Warn("Intermediate data is empty or unreadable, tables are kept",
			"path", path, "error", err)
		gn.Warn("Parsed data for <em>%s</em> is empty or unreadable, "+
			"loading skipped", ds)
		return nil
	}
	if err != nil {
		log.Error("Loading failed", "error", err)
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	log.Info("Loading finished", "keys", count, "duration", dur)
	gn.Info("Loaded %s <em>%s</em> records in %s",
		humanize.Comma(int64(count)), ds, dur)
	return nil
}

// run keeps state of loading one dataset.
type run struct {
	ctx       context.Context
	db        *gorm.DB
	log       *slog.Logger
	ds        model.Source
	batchSize int
	// ecs caches EC numbers known to be in the lookup table.
	ecs map[string]struct{}
}

// artifact reads the artifact of a dataset. Unusable artifacts are
// reported as errNoData.
func artifact[T ~map[string]V, V any](homeDir string, ds model.Source) (T, error) {
	var res T
	if err := ioparse.LoadArtifact(homeDir, ds, &res); err != nil {
		return nil, fmt.Errorf("%w: %w", errNoData, err)
	}
	if len(res) == 0 {
		return nil, errNoData
	}
	return res, nil
}

// wipe deletes all rows owned by the dataset, join tables first.
func (r *run) wipe() error {
	for _, table := range schema.WipeOrder(r.ds) {
		res := r.db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if res.Error != nil {
			return WipeError(table, res.Error)
		}
		r.log.Info("Table wiped", "table", table, "rows", res.RowsAffected)
	}
	return nil
}

// each runs fn for every key in its own transaction.
func (r *run) each(keys []string, fn func(tx *gorm.DB, key string) error) (int, error) {
	bar := newProgressBar(len(keys), fmt.Sprintf("Loading %s: ", r.ds))
	defer bar.Finish()

	for i, key := range keys {
		if err := r.ctx.Err(); err != nil {
			return i, err
		}
		err := r.db.Transaction(func(tx *gorm.DB) error {
			return fn(tx, key)
		})
		if err != nil {
			return i, InsertError(string(r.ds), key, err)
		}
		bar.Increment()
	}
	return len(keys), nil
}

// ensureEC inserts an EC number into the shared lookup table unless it is
// there already.
func (r *run) ensureEC(tx *gorm.DB, number string, complete bool) error {
	if _, ok := r.ecs[number]; ok {
		return nil
	}
	row := schema.ECNumber{Number: number, Complete: complete}
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	if err != nil {
		return err
	}
	r.ecs[number] = struct{}{}
	return nil
}

// ensureECs is ensureEC for numbers whose completeness is derived from
// the number itself.
func (r *run) ensureECs(tx *gorm.DB, numbers []string) error {
	for _, v := range numbers {
		if err := r.ensureEC(tx, v, ec.IsComplete(v)); err != nil {
			return err
		}
	}
	return nil
}

// insertJoins inserts join rows in batches of the configured size.
func insertJoins[T any](tx *gorm.DB, rows []T, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, max(batchSize, 1)).Error
}

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
