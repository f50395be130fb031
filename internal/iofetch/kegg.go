package iofetch

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/internal/iofs"
	"github.com/orenza/orenzadb/pkg/fields"
)

// fetchKEGG saves the pathway index and every pathway page it links to.
// Pages that cannot be downloaded are skipped, the parser treats them as
// absent.
func (f *fetcher) fetchKEGG(ctx context.Context, dir string) error {
	cfg := f.sources.KEGG
	index, err := f.get(ctx, cfg.IndexURL)
	if err != nil {
		if !isAbsent(err) {
			return err
		}
		slog.Warn("KEGG index is not available", "url", cfg.IndexURL, "error", err)
		gn.Warn("KEGG index <em>%s</em> is not available", cfg.IndexURL)
		return nil
	}

	path := filepath.Join(dir, iofs.KEGGIndexFile)
	if err = os.WriteFile(path, index, 0644); err != nil {
		return iofs.WriteFileError(path, err)
	}

	links, err := fields.KEGGIndex(bytes.NewReader(index))
	if err != nil {
		return IndexError(cfg.IndexURL, err)
	}

	pagesDir := filepath.Join(dir, iofs.KEGGPagesDir)
	if err = os.MkdirAll(pagesDir, 0755); err != nil {
		return iofs.CreateDirError(pagesDir, err)
	}

	bar := newProgressBar(len(links), "KEGG pathways: ")
	defer bar.Finish()

	var missing int
	for _, l := range links {
		url := cfg.BaseURL + l.Href
		page, err := f.get(ctx, url)
		bar.Increment()
		if err != nil {
			if !isAbsent(err) {
				return err
			}
			missing++
			slog.Warn("Skipping KEGG pathway", "pathway", l.ID, "url", url, "error", err)
			continue
		}
		path := filepath.Join(pagesDir, l.ID+".html")
		if err = os.WriteFile(path, page, 0644); err != nil {
			return iofs.WriteFileError(path, err)
		}
	}

	slog.Info("KEGG pages downloaded",
		"pathways", len(links),
		"missing", missing,
	)
	if missing > 0 {
		gn.Warn("%s KEGG pathway pages are missing", humanize.Comma(int64(missing)))
	}
	return nil
}
