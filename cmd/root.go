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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/gnames/gazdb/internal/iofs"
	"github.com/gnames/gazdb/internal/iologger"
	"github.com/gnames/gazdb/internal/iopipeline"
	gazdb "github.com/gnames/gazdb/pkg"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfgFile string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", gazdb.Version, gazdb.Build),
		Use:     "gazdb",
		Short:   "Builds an offline place-name search database from Stedsnavn",
		Long: `gazdb converts the Norwegian place-name register (Kartverket Stedsnavn)
into a compact SQLite database with full-text search.

The work is done in stages:
  - transform: extract places from PostGIS, score and deduplicate them,
    write the interchange CSV file
  - load: build the SQLite database from the CSV file and verify it
  - verify: check an existing database
  - run: wait for PostGIS, load the dump if needed, then run
    transform and load

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GAZDB_*, PG*)
  3. Config file (~/.config/gazdb/config.yaml)
  4. Built-in defaults

Examples of environment variables:
  GAZDB_DATABASE_HOST   PostGIS host (or PGHOST)
  GAZDB_PATHS_CSV       interchange file
  GAZDB_PATHS_DB        output database
  GAZDB_LOG_LEVEL       debug, info, warn, error`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gazdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gazdb")

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "",
		"config file (default ~/.config/gazdb/config.yaml)",
	)

	rootCmd.AddCommand(
		getTransformCmd(),
		getLoadCmd(),
		getVerifyCmd(),
		getRunCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error

	// .env is optional, variables that are already set win
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		gn.Warn("Cannot read <em>.env</em>: %v", err)
	}

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
	// Will be reconfigured later with user's config settings.
	// Stages started by `gazdb run` keep the log of their parent.
	appendLog := os.Getenv(iopipeline.LogAppendEnv) != ""
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, appendLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureHeuristicsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfgPath := cfgFile
	if cfgPath == "" {
		cfgPath = config.ConfigFilePath(homeDir)
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(cfgPath); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keeping what was
	// already written.
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"command", cmd.Name(),
		"config_file", cfgPath,
	)

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(cfgPath string) (*config.Config, error) {
	var err error
	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetConfigType("yaml")

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
	// The first variable that is set wins.

	// Database configuration, libpq names are accepted as well
	v.BindEnv("database.host", "GAZDB_DATABASE_HOST", "PGHOST")
	v.BindEnv("database.port", "GAZDB_DATABASE_PORT", "PGPORT")
	v.BindEnv("database.user", "GAZDB_DATABASE_USER", "PGUSER")
	v.BindEnv("database.password", "GAZDB_DATABASE_PASSWORD", "PGPASSWORD")
	v.BindEnv("database.database", "GAZDB_DATABASE_DATABASE", "PGDATABASE")
	v.BindEnv("database.ssl_mode", "GAZDB_DATABASE_SSL_MODE", "PGSSLMODE")

	// Source configuration
	v.BindEnv("source.schema_pattern", "GAZDB_SOURCE_SCHEMA_PATTERN")
	v.BindEnv("source.dump_path", "GAZDB_SOURCE_DUMP_PATH")
	v.BindEnv("source.ready_attempts", "GAZDB_SOURCE_READY_ATTEMPTS")
	v.BindEnv("source.ready_interval_sec", "GAZDB_SOURCE_READY_INTERVAL_SEC")
	v.BindEnv("source.place_types", "GAZDB_SOURCE_PLACE_TYPES")

	// Paths configuration
	v.BindEnv("paths.csv", "GAZDB_PATHS_CSV")
	v.BindEnv("paths.db", "GAZDB_PATHS_DB")

	// Build configuration
	v.BindEnv("build.schema_path", "GAZDB_BUILD_SCHEMA_PATH")
	v.BindEnv("build.projection_source", "GAZDB_BUILD_PROJECTION_SOURCE")
	v.BindEnv("build.projection_target", "GAZDB_BUILD_PROJECTION_TARGET")

	// Verify configuration
	v.BindEnv("verify.max_size_mb", "GAZDB_VERIFY_MAX_SIZE_MB")
	v.BindEnv("verify.exact_name", "GAZDB_VERIFY_EXACT_NAME")
	v.BindEnv("verify.diacritic_pattern", "GAZDB_VERIFY_DIACRITIC_PATTERN")
	v.BindEnv("verify.fts_query", "GAZDB_VERIFY_FTS_QUERY")
	v.BindEnv("verify.require_smoke", "GAZDB_VERIFY_REQUIRE_SMOKE")

	// Pipeline configuration
	v.BindEnv("pipeline.step_timeout_sec", "GAZDB_PIPELINE_STEP_TIMEOUT_SEC")

	// Log configuration
	v.BindEnv("log.level", "GAZDB_LOG_LEVEL")
	v.BindEnv("log.format", "GAZDB_LOG_FORMAT")
	v.BindEnv("log.destination", "GAZDB_LOG_DESTINATION")
}
