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
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/internal/ioupdate"
	"github.com/spf13/cobra"
)

// getUpdateCmd returns the update command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getUpdateCmd() *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Download, parse and load enzyme sources",
		Long: `Update runs all stages for selected sources.

This command:
  1. Downloads raw files of every source
  2. Parses them into intermediate data
  3. Replaces tables of every source with new data
  4. Relinks enzymes if ExplorEnz, UniProt, BRENDA or PDB were updated

A failed source does not stop others. The command fails only if
all selected sources failed.

Locations of sources are configured in: ~/.config/orenzadb/sources.yaml
BRENDA is never downloaded, point brenda.compressed_file to a local
release archive.

Examples:
  # Update all sources
  orenzadb update

  # Update specific sources only
  orenzadb update --sources sprot,kegg
  orenzadb update -s pdb -j 16

  # Keep downloaded files
  orenzadb update --keep-files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, sourcesFlag, keepFilesFlag, jobsFlag)
			err := runUpdate()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addSourcesFlag(updateCmd)
	updateCmd.Flags().BoolP(
		"keep-files", "k", false,
		"keep downloaded files after parsing",
	)
	updateCmd.Flags().IntP(
		"jobs", "j", 0,
		"number of workers for PDB parsing",
	)

	return updateCmd
}

func runUpdate() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := selectedSources(); err != nil {
		return err
	}

	srcs, err := loadSources()
	if err != nil {
		return err
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
	Run 'orenzadb create' first to initialize the schema.`)
		return nil
	}

	return ioupdate.New(cfg, op, srcs).Update(ctx)
}
