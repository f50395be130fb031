package iofetch

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/internal/iofs"
	"github.com/orenza/orenzadb/pkg/fields"
	"golang.org/x/sync/errgroup"
)

// fetchPDB mirrors compressed PDBML files. Sub-folders are downloaded
// concurrently by a bounded pool. Index pages and files that cannot be
// downloaded are skipped.
func (f *fetcher) fetchPDB(ctx context.Context, dir string) error {
	root := f.sources.PDB.MirrorURL
	index, err := f.get(ctx, root)
	if err != nil {
		if !isAbsent(err) {
			return err
		}
		slog.Warn("PDB mirror is not available", "url", root, "error", err)
		gn.Warn("PDB mirror <em>%s</em> is not available", root)
		return nil
	}

	folders, err := fields.PDBSubfolders(bytes.NewReader(index))
	if err != nil {
		return IndexError(root, err)
	}
	slog.Info("PDB sub-folders found", "count", len(folders))

	bar := newProgressBar(len(folders), "PDB folders: ")
	defer bar.Finish()

	var files, missing atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(f.cfg.Fetch.PDBWorkers, 1))
	for _, folder := range folders {
		g.Go(func() error {
			defer bar.Increment()
			n, m, err := f.fetchPDBFolder(ctx, root, folder, dir)
			files.Add(int64(n))
			missing.Add(int64(m))
			return err
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	slog.Info("PDB files downloaded",
		"files", files.Load(),
		"missing", missing.Load(),
	)
	gn.Info("Downloaded %s PDB files", humanize.Comma(files.Load()))
	if missing.Load() > 0 {
		gn.Warn("%s PDB files or folders are missing", humanize.Comma(missing.Load()))
	}
	return nil
}

// fetchPDBFolder downloads all files of one sub-folder. It returns the
// number of saved files and the number of missing pages.
func (f *fetcher) fetchPDBFolder(
	ctx context.Context,
	root, folder, dir string,
) (int, int, error) {
	url := root + folder
	page, err := f.get(ctx, url)
	if err != nil {
		if isAbsent(err) {
			slog.Warn("Skipping PDB folder", "url", url, "error", err)
			return 0, 1, nil
		}
		return 0, 0, err
	}

	names, err := fields.PDBFiles(bytes.NewReader(page))
	if err != nil {
		return 0, 0, IndexError(url, err)
	}

	local := filepath.Join(dir, strings.TrimSuffix(folder, "/"))
	if err = os.MkdirAll(local, 0755); err != nil {
		return 0, 0, iofs.CreateDirError(local, err)
	}

	var saved, missing int
	for _, name := range names {
		err = f.download(ctx, url+name, filepath.Join(local, filepath.Base(name)))
		if err != nil {
			if isAbsent(err) {
				missing++
				slog.Warn("Skipping PDB file", "url", url+name, "error", err)
				continue
			}
			return saved, missing, err
		}
		saved++
	}
	return saved, missing, nil
}
