// Package ioparse implements the Parser interface. It reads raw files
// staged by the fetcher, turns them into the intermediate model with the
// parsers of package fields and saves one artifact per dataset.
package ioparse

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/klauspost/compress/gzip"
	"github.com/orenza/orenzadb/internal/iofs"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/fields"
	"github.com/orenza/orenzadb/pkg/lifecycle"
	"github.com/orenza/orenzadb/pkg/model"
	"github.com/orenza/orenzadb/pkg/records"
	"github.com/orenza/orenzadb/pkg/sources"
)

type parser struct {
	cfg     *config.Config
	sources *sources.SourcesConfig
}

// New creates a Parser for configured sources.
func New(cfg *config.Config, srcs *sources.SourcesConfig) lifecycle.Parser {
	return &parser{cfg: cfg, sources: srcs}
}

// Parse converts staged files of a source into artifacts.
func (p *parser) Parse(ctx context.Context, src model.Source) error {
	start := time.Now()
	log := slog.With("source", src)
	log.Info("Starting parsing")

	dir := iofs.SourceDir(p.cfg.HomeDir, string(src))
	var err error
	switch src {
	case model.ExplorEnz:
		err = p.parseExplorEnz(log, dir)
	case model.SwissProt:
		err = p.parseUniProt(log, src, filepath.Join(dir, p.sources.SwissProt.File))
	case model.TrEMBL:
		err = p.parseUniProt(log, src, filepath.Join(dir, p.sources.TrEMBL.File))
	case model.KEGG:
		err = p.parseKEGG(log, dir)
	case model.BRENDA:
		err = p.parseBRENDA(log, filepath.Join(dir, p.sources.BRENDA.TextFile))
	case model.PDB:
		err = p.parsePDB(ctx, log, dir)
	default:
		err = UnknownSourceError(string(src))
	}
	if err != nil {
		log.Error("Parsing failed", "error", err)
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	log.Info("Parsing finished", "duration", dur)
	gn.Info("Parsed <em>%s</em> data in %s", src, dur)
	return nil
}

// parseExplorEnz decompresses the XML dump next to the download and
// builds enzymes and the class hierarchy from it.
func (p *parser) parseExplorEnz(log *slog.Logger, dir string) error {
	path := filepath.Join(dir, p.sources.ExplorEnz.File)
	if !iofs.Exists(path) {
		return SourceFileError(string(model.ExplorEnz), path, os.ErrNotExist)
	}
	if strings.HasSuffix(path, ".gz") {
		xmlPath := strings.TrimSuffix(path, ".gz")
		if err := iofs.Gunzip(path, xmlPath); err != nil {
			return err
		}
		path = xmlPath
	}

	f, err := os.Open(path)
	if err != nil {
		return SourceFileError(string(model.ExplorEnz), path, err)
	}
	defer f.Close()

	data, err := fields.ExplorEnz(f)
	if err != nil {
		return XMLError(path, err)
	}
	log.Info("ExplorEnz parsed",
		"enzymes", len(data.Enzymes),
		"withdrawn", len(data.Removed),
		"classes", len(data.Nomenclatures),
	)
	gn.Info("Found %s enzymes and %s classes, %s withdrawn entries removed",
		humanize.Comma(int64(len(data.Enzymes))),
		humanize.Comma(int64(len(data.Nomenclatures))),
		humanize.Comma(int64(len(data.Removed))),
	)

	if err = SaveArtifact(p.cfg.HomeDir, model.ExplorEnz, data.Enzymes); err != nil {
		return err
	}
	return SaveArtifact(p.cfg.HomeDir, model.Nomenclature, data.Nomenclatures)
}

// parseUniProt streams a gzipped flat file through the UniProt record
// scanner. The file is never decompressed to disk.
func (p *parser) parseUniProt(
	log *slog.Logger,
	src model.Source,
	path string,
) error {
	r, closer, err := openMaybeGzip(path)
	if err != nil {
		return SourceFileError(string(src), path, err)
	}
	defer closer()

	sc := records.NewUniProtScanner(r)
	data, skipped := fields.UniProt(scan(sc))
	if err = sc.Err(); err != nil {
		return SourceFileError(string(src), path, err)
	}

	log.Info("UniProt parsed", "entries", len(data), "no_accession", skipped)
	gn.Info("Found %s entries with EC numbers",
		humanize.Comma(int64(len(data))))
	return SaveArtifact(p.cfg.HomeDir, src, data)
}

// parseBRENDA collects species of complete BRENDA records.
func (p *parser) parseBRENDA(log *slog.Logger, path string) error {
	r, closer, err := openMaybeGzip(path)
	if err != nil {
		return SourceFileError(string(model.BRENDA), path, err)
	}
	defer closer()

	sc := records.NewBrendaScanner(r)
	data, skipped := fields.Species(scan(sc))
	if err = sc.Err(); err != nil {
		return SourceFileError(string(model.BRENDA), path, err)
	}

	log.Info("BRENDA parsed",
		"ec_numbers", len(data),
		"partial_records", sc.Discarded(),
		"invalid_ec", skipped,
	)
	gn.Info("Found species for %s EC numbers",
		humanize.Comma(int64(len(data))))
	return SaveArtifact(p.cfg.HomeDir, model.BRENDA, data)
}

// parseKEGG reads the saved index and pathway pages. Pathways whose page
// was not downloaded are absent from the result.
func (p *parser) parseKEGG(log *slog.Logger, dir string) error {
	data := make(model.Pathways)
	indexPath := filepath.Join(dir, iofs.KEGGIndexFile)
	f, err := os.Open(indexPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn("KEGG index was not downloaded", "path", indexPath)
		return SaveArtifact(p.cfg.HomeDir, model.KEGG, data)
	}
	if err != nil {
		return SourceFileError(string(model.KEGG), indexPath, err)
	}
	links, err := fields.KEGGIndex(f)
	f.Close()
	if err != nil {
		return SourceFileError(string(model.KEGG), indexPath, err)
	}

	var pws []*model.Pathway
	var missing int
	for _, l := range links {
		path := filepath.Join(dir, iofs.KEGGPagesDir, l.ID+".html")
		pw, err := parsePathway(l, path)
		if errors.Is(err, os.ErrNotExist) {
			missing++
			continue
		}
		if err != nil {
			return SourceFileError(string(model.KEGG), path, err)
		}
		pws = append(pws, pw)
	}
	data = fields.Pathways(pws)

	log.Info("KEGG parsed", "pathways", len(data), "missing", missing)
	gn.Info("Found %s pathways", humanize.Comma(int64(len(data))))
	return SaveArtifact(p.cfg.HomeDir, model.KEGG, data)
}

func parsePathway(l fields.PathwayLink, path string) (*model.Pathway, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fields.KEGGPathway(l, f)
}

// openMaybeGzip opens a file and decompresses it on the fly if its name
// ends with ".gz".
func openMaybeGzip(path string) (io.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, func() { f.Close() }, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, GzipError(path, err)
	}
	return zr, func() {
		zr.Close()
		f.Close()
	}, nil
}

// scan turns a record scanner into a single-use sequence.
func scan(sc records.Scanner) iter.Seq[string] {
	return func(yield func(string) bool) {
		for sc.Scan() {
			if !yield(sc.Record()) {
				return
			}
		}
	}
}
