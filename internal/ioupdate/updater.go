// Package ioupdate implements the Updater interface. It drives every
// selected source through fetch, parse and load, and relinks enzymes
// when a source that feeds evidence counts was updated.
package ioupdate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/orenza/orenzadb/internal/iofetch"
	"github.com/orenza/orenzadb/internal/iofs"
	"github.com/orenza/orenzadb/internal/iolink"
	"github.com/orenza/orenzadb/internal/ioload"
	"github.com/orenza/orenzadb/internal/ioparse"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/db"
	"github.com/orenza/orenzadb/pkg/lifecycle"
	"github.com/orenza/orenzadb/pkg/model"
	"github.com/orenza/orenzadb/pkg/sources"
)

type updater struct {
	cfg     *config.Config
	fetcher lifecycle.Fetcher
	parser  lifecycle.Parser
	loader  lifecycle.Loader
	linker  lifecycle.Linker
}

// New creates an Updater that writes through the given operator.
func New(
	cfg *config.Config,
	op db.Operator,
	srcs *sources.SourcesConfig,
) lifecycle.Updater {
	return &updater{
		cfg:     cfg,
		fetcher: iofetch.New(cfg, srcs),
		parser:  ioparse.New(cfg, srcs),
		loader:  ioload.New(cfg, op),
		linker:  iolink.New(op),
	}
}

// Update processes selected sources one by one. A failed source does
// not stop others, the update fails only if all sources failed.
func (u *updater) Update(ctx context.Context) error {
	srcs := u.cfg.Sources()
	if len(srcs) == 0 {
		return NoSourcesError()
	}
	var err error

	start := time.Now()
	slog.Info("Starting update", "sources", len(srcs))

	var success, failed int
	var relink bool
	for i, src := range srcs {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		srcStart := time.Now()
		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Source [%d/%d]: <em>%s</em>", i+1, len(srcs), src)
		fmt.Println(strings.Repeat("─", 60))

		if err = u.processSource(ctx, src); err != nil {
			failed++
			slog.Error("Failed to process source", "source", src, "error", err)
			gn.PrintErrorMessage(err)
			continue
		}

		success++
		relink = relink || src.Linked()
		dur := gnfmt.TimeString(time.Since(srcStart).Seconds())
		slog.Info("Source processed", "source", src, "duration", dur)
		gn.Info("Completed in %s", dur)
	}

	if relink {
		if _, err = u.linker.Link(ctx); err != nil {
			return err
		}
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Update complete",
		"success", success,
		"errors", failed,
		"total", len(srcs),
		"duration", dur,
	)
	gn.Info(`Update complete
Sources succeeded: %d, failed %d, total %d.
Elapsed time: <em>%s</em>`, success, failed, len(srcs), dur)

	if failed > 0 && success == 0 {
		return AllSourcesFailedError(failed)
	}
	if failed > 0 {
		slog.Warn("Some sources failed to process",
			"failed", failed, "succeeded", success)
	}
	return nil
}

// processSource runs all stages for one source. Raw files are removed
// after a successful parse unless they are kept on request.
func (u *updater) processSource(ctx context.Context, src model.Source) error {
	if err := u.fetcher.Fetch(ctx, src); err != nil {
		return err
	}
	if err := u.parser.Parse(ctx, src); err != nil {
		return err
	}
	if !u.cfg.Run.KeepFiles {
		if err := iofs.RemoveStaging(u.cfg.HomeDir, string(src)); err != nil {
			slog.Warn("Cannot remove downloaded files",
				"source", src, "error", err)
		}
	}
	for _, ds := range src.Datasets() {
		if err := u.loader.Load(ctx, ds); err != nil {
			return err
		}
	}
	return nil
}
