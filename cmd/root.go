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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/orenza/orenzadb/internal/iodb"
	"github.com/orenza/orenzadb/internal/iofs"
	"github.com/orenza/orenzadb/internal/iologger"
	"github.com/orenza/orenzadb/internal/iosources"
	app "github.com/orenza/orenzadb/pkg"
	"github.com/orenza/orenzadb/pkg/config"
	"github.com/orenza/orenzadb/pkg/db"
	"github.com/orenza/orenzadb/pkg/sources"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "orenzadb",
		Short:   "OrenzaDB builds a database of enzyme evidence",
		Long: `OrenzaDB collects enzyme data from ExplorEnz, UniProt (Swiss-Prot
and TrEMBL), KEGG, BRENDA and PDB and loads it into PostgreSQL or SQLite.

Every source goes through the same stages:
  - download: fetch raw files into ~/.cache/orenzadb/downloads
  - parse: convert raw files into intermediate data
  - load: replace tables of the source with the intermediate data
  - link: count evidence of every enzyme and mark orphan enzymes

The update command runs all stages for selected sources.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (ORENZADB_*)
  3. Config file (~/.config/orenzadb/config.yaml)
  4. Built-in defaults

Examples:
  orenzadb create
  orenzadb update
  orenzadb update --sources sprot,kegg`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "orenzadb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for orenzadb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getUpdateCmd(),
		getDownloadCmd(),
		getParseCmd(),
		getLoadCmd(),
		getLinkCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if _, err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureSourcesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keep bootstrap records
	if _, err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("ORENZADB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "ORENZADB_DATABASE_DRIVER")
	v.BindEnv("database.host", "ORENZADB_DATABASE_HOST")
	v.BindEnv("database.port", "ORENZADB_DATABASE_PORT")
	v.BindEnv("database.user", "ORENZADB_DATABASE_USER")
	v.BindEnv("database.password", "ORENZADB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "ORENZADB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "ORENZADB_DATABASE_SSL_MODE")
	v.BindEnv("database.path", "ORENZADB_DATABASE_PATH")
	v.BindEnv("database.batch_size", "ORENZADB_DATABASE_BATCH_SIZE")

	// Log configuration
	v.BindEnv("log.level", "ORENZADB_LOG_LEVEL")
	v.BindEnv("log.format", "ORENZADB_LOG_FORMAT")
	v.BindEnv("log.destination", "ORENZADB_LOG_DESTINATION")

	// Fetch configuration
	v.BindEnv("fetch.max_retries", "ORENZADB_FETCH_MAX_RETRIES")
	v.BindEnv("fetch.retry_delay", "ORENZADB_FETCH_RETRY_DELAY")
	v.BindEnv("fetch.timeout", "ORENZADB_FETCH_TIMEOUT")
	v.BindEnv("fetch.pdb_workers", "ORENZADB_FETCH_PDB_WORKERS")

	// General configuration
	v.BindEnv("jobs_number", "ORENZADB_JOBS_NUMBER")

	v.AutomaticEnv()
}

// connect opens the configured destination store.
func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Driver == "sqlite" {
		gn.Info("Connected to SQLite: <em>%s</em>", cfg.SQLitePath())
	} else {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}
	return op, nil
}

// loadSources reads locations of sources from sources.yaml.
func loadSources() (*sources.SourcesConfig, error) {
	return iosources.New(cfg).Load()
}
