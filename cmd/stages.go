/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/internal/iofetch"
	"github.com/orenza/orenzadb/internal/iolink"
	"github.com/orenza/orenzadb/internal/ioload"
	"github.com/orenza/orenzadb/internal/ioparse"
	"github.com/spf13/cobra"
)

// getDownloadCmd returns the download command.
func getDownloadCmd() *cobra.Command {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download raw files of sources",
		Long: `Download raw files of selected sources into
~/.cache/orenzadb/downloads/<source>.

Examples:
  orenzadb download
  orenzadb download --sources explorenz,kegg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, sourcesFlag)
			err := runDownload()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	addSourcesFlag(downloadCmd)
	return downloadCmd
}

func runDownload() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	selected, err := selectedSources()
	if err != nil {
		return err
	}
	srcs, err := loadSources()
	if err != nil {
		return err
	}
	f := iofetch.New(cfg, srcs)
	for _, src := range selected {
		if err = f.Fetch(ctx, src); err != nil {
			return err
		}
	}
	return nil
}

// getParseCmd returns the parse command.
func getParseCmd() *cobra.Command {
	parseCmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse downloaded files into intermediate data",
		Long: `Parse downloaded files of selected sources and save
intermediate data to ~/.cache/orenzadb/data.

Examples:
  orenzadb parse
  orenzadb parse --sources pdb --jobs 16`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, sourcesFlag, jobsFlag)
			err := runParse()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	addSourcesFlag(parseCmd)
	parseCmd.Flags().IntP("jobs", "j", 0, "number of workers for PDB parsing")
	return parseCmd
}

func runParse() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	selected, err := selectedSources()
	if err != nil {
		return err
	}
	srcs, err := loadSources()
	if err != nil {
		return err
	}
	p := ioparse.New(cfg, srcs)
	for _, src := range selected {
		if err = p.Parse(ctx, src); err != nil {
			return err
		}
	}
	return nil
}

// getLoadCmd returns the load command.
func getLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Load intermediate data into the database",
		Long: `Load replaces tables of selected sources with their
intermediate data. Sources without intermediate data are skipped and
their tables are kept. Run 'orenzadb link' afterwards.

Examples:
  orenzadb load
  orenzadb load --sources brenda`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, sourcesFlag)
			err := runLoad()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	addSourcesFlag(loadCmd)
	return loadCmd
}

func runLoad() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	selected, err := selectedSources()
	if err != nil {
		return err
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	ld := ioload.New(cfg, op)
	for _, src := range selected {
		for _, ds := range src.Datasets() {
			if err = ld.Load(ctx, ds); err != nil {
				return err
			}
		}
	}
	return nil
}

// getLinkCmd returns the link command.
func getLinkCmd() *cobra.Command {
	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Recompute evidence counts of enzymes",
		Long: `Link counts UniProt entries, species and structures of every
enzyme and clears the orphan flag of enzymes with evidence. EC numbers
that have evidence but no enzyme are reported.

Examples:
  orenzadb link`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLink()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return linkCmd
}

func runLink() error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	invalid, err := iolink.New(op).Link(ctx)
	if err != nil {
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(invalid)) {
		ecs := invalid[k]
		gn.Info("<em>%s</em> EC numbers without enzyme: %s",
			k, strings.Join(ecs[:min(len(ecs), 10)], ", "))
	}
	return nil
}
