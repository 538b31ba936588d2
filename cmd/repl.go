package cmd

import (
	"github.com/spf13/cobra"

	"github.com/elkrammer/pascal-validator/repl"
)

var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return repl.Start(cmd.OutOrStdout(), cfg)
	},
}
