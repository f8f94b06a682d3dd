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

	"github.com/gnames/gazdb/internal/iobuild"
	"github.com/gnames/gazdb/internal/ioverify"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getLoadCmd returns the load command.
func getLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "Build the SQLite search database from the CSV file",
		Long: `Build the SQLite search database from the interchange CSV file
and verify the result.

This command:
  1. Removes a previous database at paths.db
  2. Creates the schema (embedded, or build.schema_path)
  3. Loads every row of the CSV file, skipping rows that cannot be
     converted or inserted
  4. Rebuilds the full-text index and writes metadata
  5. Optimizes the file and verifies it

Examples:
  gazdb load
  gazdb load -i /tmp/places.csv -d /tmp/places.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runLoad(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	loadCmd.Flags().StringP(
		"input", "i", "",
		"interchange CSV file (overrides paths.csv)",
	)
	loadCmd.Flags().StringP(
		"db", "d", "",
		"output database (overrides paths.db)",
	)
	loadCmd.Flags().String(
		"schema", "",
		"schema definition file (overrides build.schema_path)",
	)

	return loadCmd
}

func runLoad(cmd *cobra.Command) error {
	ctx := context.Background()

	var loadOpts []config.Option
	loadOpts = append(loadOpts, stringFlagOpt(cmd, "input", config.OptPathsCSV)...)
	loadOpts = append(loadOpts, stringFlagOpt(cmd, "db", config.OptPathsDB)...)
	loadOpts = append(loadOpts,
		stringFlagOpt(cmd, "schema", config.OptBuildSchemaPath)...)
	cfg.Update(loadOpts)

	gn.Info("Building <em>%s</em> from <em>%s</em>",
		cfg.Paths.DB, cfg.Paths.CSV)
	if _, err := iobuild.New(cfg).Build(ctx); err != nil {
		return err
	}

	gn.Info("Verifying <em>%s</em>...", cfg.Paths.DB)
	if _, err := ioverify.New(cfg).Verify(ctx); err != nil {
		return err
	}

	gn.Info("Database <em>%s</em> is ready", cfg.Paths.DB)
	return nil
}
