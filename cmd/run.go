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
	"slices"
	"time"

	"github.com/gnames/gazdb/internal/iobootstrap"
	"github.com/gnames/gazdb/internal/iodb"
	"github.com/gnames/gazdb/internal/iopipeline"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var skipDump bool

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the whole pipeline from PostGIS dump to search database",
		Long: `Run all stages in order:

  1. Wait until PostgreSQL accepts connections
  2. Load the PostGIS dump unless the gazetteer is already loaded
  3. Run 'gazdb transform' as a separate process
  4. Run 'gazdb load' as a separate process

Every external step is limited by pipeline.step_timeout_sec. A step that
fails or runs out of time stops the pipeline, nothing is retried.

Examples:
  gazdb run
  gazdb run --skip-dump`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPipeline(skipDump)
			if err != nil {
				gn.PrintErrorMessage(err)
				gn.Warn("Pipeline failed")
			}
			return err
		},
	}

	runCmd.Flags().BoolVar(
		&skipDump, "skip-dump", false,
		"do not load the PostGIS dump",
	)

	return runCmd
}

func runPipeline(skipDump bool) error {
	ctx := context.Background()
	timeStart := time.Now()

	gn.Message(`<em>Stedsnavn ETL Pipeline</em>
Kartverket -> PostGIS -> SQLite`)

	exe, err := os.Executable()
	if err != nil {
		return err
	}

	op := iodb.NewPgxOperator()
	defer op.Close()
	bs := iobootstrap.New(cfg, op)

	gn.Info("Step 1: Waiting for PostgreSQL...")
	if err = bs.WaitReady(ctx); err != nil {
		return err
	}

	if skipDump {
		gn.Info("Step 2: Loading PostGIS dump skipped")
	} else {
		gn.Info("Step 2: Loading PostGIS dump...")
		if _, err = bs.LoadDump(ctx); err != nil {
			return err
		}
	}
	op.Close()

	timeout := time.Duration(cfg.Pipeline.StepTimeoutSec) * time.Second
	runner := iopipeline.New(exe, timeout)
	for i, step := range pipelineSteps(cfgFile) {
		gn.Info("Step %d: Running %s...", i+3, step.Name)
		res, err := runner.Run(ctx, step)
		if err != nil {
			return err
		}
		gn.Info("Step <em>%s</em> took %s",
			res.Name, gnfmt.TimeString(res.Duration.Seconds()))
	}

	gn.Message(`<em>Pipeline complete</em>
  Duration: %s
  Output:   %s`,
		gnfmt.TimeString(time.Since(timeStart).Seconds()),
		cfg.Paths.DB,
	)
	return nil
}

// pipelineSteps returns the stages started as child processes. They
// read the same config file as the parent.
func pipelineSteps(cfgFile string) []iopipeline.Step {
	var common []string
	if cfgFile != "" {
		common = []string{"--config", cfgFile}
	}
	return []iopipeline.Step{
		{Name: "transform", Args: append(slices.Clone(common), "transform")},
		{Name: "load", Args: append(slices.Clone(common), "load")},
	}
}
