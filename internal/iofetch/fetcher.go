// Package iofetch implements the Fetcher interface. It downloads raw data
// of every source into its staging directory using HTTP for pages and
// bulk dumps, and FTP for UniProt flat files.
//
// Network failures are retried with exponential backoff. Pages (KEGG
// pathways, PDB index pages and files) that cannot be obtained are logged
// and skipped. Bulk transfers (ExplorEnz, UniProt) that fail abort the
// stage.
package iofetch

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/orenza/orenzadb/internal/iofs"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/lifecycle"
	"github.com/orenza/orenzadb/pkg/model"
	"github.com/orenza/orenzadb/pkg/sources"
)

type fetcher struct {
	cfg     *config.Config
	sources *sources.SourcesConfig
	client  *http.Client
	retries int
	delay   time.Duration
}

// New creates a Fetcher for configured sources.
func New(cfg *config.Config, srcs *sources.SourcesConfig) lifecycle.Fetcher {
	return &fetcher{
		cfg:     cfg,
		sources: srcs,
		client: &http.Client{
			Timeout: time.Duration(cfg.Fetch.Timeout) * time.Second,
		},
		retries: cfg.Fetch.MaxRetries,
		delay:   time.Duration(cfg.Fetch.RetryDelay) * time.Second,
	}
}

// Fetch downloads raw files of a source into a clean staging directory.
func (f *fetcher) Fetch(ctx context.Context, src model.Source) error {
	start := time.Now()
	dir, err := iofs.StagingDir(f.cfg.HomeDir, string(src))
	if err != nil {
		return err
	}

	log := slog.With("source", src)
	log.Info("Starting download", "dir", dir)

	switch src {
	case model.ExplorEnz:
		cfg := f.sources.ExplorEnz
		err = f.download(ctx, cfg.URL, filepath.Join(dir, cfg.File))
	case model.SwissProt:
		cfg := f.sources.SwissProt
		err = f.downloadFTP(ctx, cfg, filepath.Join(dir, cfg.File))
	case model.TrEMBL:
		cfg := f.sources.TrEMBL
		err = f.downloadFTP(ctx, cfg, filepath.Join(dir, cfg.File))
	case model.KEGG:
		err = f.fetchKEGG(ctx, dir)
	case model.BRENDA:
		err = f.extractBRENDA(dir)
	case model.PDB:
		err = f.fetchPDB(ctx, dir)
	default:
		err = UnknownSourceError(string(src))
	}
	if err != nil {
		log.Error("Download failed", "error", err)
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	log.Info("Download finished", "duration", dur)
	gn.Info("Downloaded <em>%s</em> data in %s", src, dur)
	return nil
}

// extractBRENDA takes the flat file out of the locally stored release
// archive. BRENDA is distributed under a license, so nothing is fetched
// from the network.
func (f *fetcher) extractBRENDA(dir string) error {
	cfg := f.sources.BRENDA
	path, err := iofs.ExtractTarFile(cfg.CompressedFile, cfg.TextFile, dir)
	if err != nil {
		return err
	}
	slog.Info("BRENDA text extracted", "path", path)
	return nil
}

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
