package cmd

import (
	"fmt"
	"os"

	"github.com/orenza/orenzadb/internal/ioupdate"
	app "github.com/orenza/orenzadb/pkg"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/model"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// addSourcesFlag registers --sources on a stage command.
func addSourcesFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceP(
		"sources", "s", []string{},
		"sources to process: explorenz,sprot,trembl,kegg,brenda,pdb (empty = all)",
	)
}

func sourcesFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("sources") {
		return
	}
	ss, _ := cmd.Flags().GetStringSlice("sources")
	cfg.Update([]config.Option{config.OptRunSources(ss)})
}

// selectedSources returns sources chosen by --sources. An explicit
// selection without valid names is an error.
func selectedSources() ([]model.Source, error) {
	res := cfg.Sources()
	if len(res) == 0 {
		return nil, ioupdate.NoSourcesError()
	}
	return res, nil
}

func keepFilesFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("keep-files") {
		return
	}
	keep, _ := cmd.Flags().GetBool("keep-files")
	cfg.Update([]config.Option{config.OptRunKeepFiles(keep)})
}

func jobsFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("jobs") {
		return
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	cfg.Update([]config.Option{config.OptJobsNumber(jobs)})
}

// applyFlags updates the configuration with flags set by the user.
func applyFlags(cmd *cobra.Command, flags ...funcFlag) {
	for _, f := range flags {
		f(cmd)
	}
}
