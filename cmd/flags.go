package cmd

import (
	"github.com/gnames/gazdb/pkg/config"
	"github.com/spf13/cobra"
)

// stringFlagOpt returns the option for a string flag when the user set it.
func stringFlagOpt(
	cmd *cobra.Command,
	name string,
	opt func(string) config.Option,
) []config.Option {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	s, _ := cmd.Flags().GetString(name)
	return []config.Option{opt(s)}
}
