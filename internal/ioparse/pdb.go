package ioparse

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/klauspost/compress/gzip"
	"github.com/orenza/orenzadb/pkg/fields"
	"github.com/orenza/orenzadb/pkg/model"
	"golang.org/x/sync/errgroup"
)

// parsePDB parses all mirrored PDBML files with a bounded pool of workers.
func (p *parser) parsePDB(ctx context.Context, log *slog.Logger, dir string) error {
	files, err := pdbFiles(dir)
	if err != nil {
		return SourceFileError(string(model.PDB), dir, err)
	}
	log.Info("PDB files found", "count", len(files))

	data, err := parsePDBFiles(ctx, files, p.cfg.JobsNumber)
	if err != nil {
		return err
	}

	var refs int
	for _, v := range data {
		refs += len(v)
	}
	log.Info("PDB parsed", "ec_numbers", len(data), "structures", refs)
	gn.Info("Found %s structures for %s EC numbers",
		humanize.Comma(int64(refs)), humanize.Comma(int64(len(data))))
	return SaveArtifact(p.cfg.HomeDir, model.PDB, data)
}

// pdbFiles lists compressed PDBML files under dir. A missing directory
// means that nothing was downloaded.
func pdbFiles(dir string) ([]string, error) {
	var res []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".xml.gz") {
			res = append(res, path)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	return res, err
}

// parsePDBFiles fans files out to at most jobs workers. Every worker
// returns a partial mapping for one file and a single collector merges
// them in completion order. After the first failure no new files are
// scheduled, files already being parsed are finished.
func parsePDBFiles(
	ctx context.Context,
	files []string,
	jobs int,
) (model.Structures, error) {
	res := make(model.Structures)
	if len(files) == 0 {
		return res, nil
	}

	partCh := make(chan model.Structures)
	done := make(chan struct{})
	go func() {
		for part := range partCh {
			model.MergeStructures(res, part)
		}
		close(done)
	}()

	bar := newProgressBar(len(files), "Parsing PDB: ")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for _, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			defer bar.Increment()
			part, err := parsePDBFile(path)
			if err != nil {
				return err
			}
			if len(part) > 0 {
				partCh <- part
			}
			return nil
		})
	}

	err := g.Wait()
	close(partCh)
	<-done
	bar.Finish()

	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func parsePDBFile(path string) (model.Structures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SourceFileError(string(model.PDB), path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, GzipError(path, err)
	}
	defer zr.Close()

	res, err := fields.PDBStructures(zr)
	if err != nil {
		return nil, GzipError(path, err)
	}
	return res, nil
}
