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

	"github.com/dustin/go-humanize"
	"github.com/gnames/gazdb/internal/iodb"
	"github.com/gnames/gazdb/internal/iofs"
	"github.com/gnames/gazdb/internal/iotransform"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getTransformCmd returns the transform command.
func getTransformCmd() *cobra.Command {
	transformCmd := &cobra.Command{
		Use:   "transform",
		Short: "Extract places from PostGIS and write the CSV file",
		Long: `Extract populated places from the Stedsnavn PostGIS database and
write them to the interchange CSV file.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Finds the gazetteer schema (source.schema_pattern)
  3. Extracts places of the configured types in WGS84
  4. Classifies and scores them using heuristics.yaml
  5. Keeps one record per name and municipality
  6. Writes the CSV file (paths.csv)

Examples:
  # Use the configured output
  gazdb transform

  # Write to another file
  gazdb transform -o /tmp/places.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTransform(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	transformCmd.Flags().StringP(
		"output", "o", "",
		"interchange CSV file (overrides paths.csv)",
	)

	return transformCmd
}

func runTransform(cmd *cobra.Command) error {
	ctx := context.Background()
	cfg.Update(stringFlagOpt(cmd, "output", config.OptPathsCSV))

	tables, err := iofs.LoadHeuristics(config.HeuristicsFilePath(cfg.HomeDir))
	if err != nil {
		return err
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	stats, err := iotransform.New(cfg, op, tables).Transform(ctx)
	if err != nil {
		return err
	}

	gn.Info(
		"Wrote <em>%s</em> places to <em>%s</em> "+
			"(%s read, %s duplicates)",
		humanize.Comma(int64(stats.Unique)), stats.Path,
		humanize.Comma(int64(stats.Read)),
		humanize.Comma(int64(stats.Replaced+stats.Dropped)),
	)
	return nil
}
