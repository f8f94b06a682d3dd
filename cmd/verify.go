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

	"github.com/gnames/gazdb/internal/ioverify"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getVerifyCmd returns the verify command.
func getVerifyCmd() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a built search database",
		Long: `Check row counts, full-text index parity, smoke queries and the
file size of a built database. The command exits with an error when
the database fails the checks. The file is never modified.

Examples:
  gazdb verify
  gazdb verify -d /tmp/places.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runVerify(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	verifyCmd.Flags().StringP(
		"db", "d", "",
		"database to verify (overrides paths.db)",
	)

	return verifyCmd
}

func runVerify(cmd *cobra.Command) error {
	cfg.Update(stringFlagOpt(cmd, "db", config.OptPathsDB))
	_, err := ioverify.New(cfg).Verify(context.Background())
	return err
}
