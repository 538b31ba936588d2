package cmd

import (
	"github.com/spf13/cobra"
)

// check: validate source files
var CheckCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Check reduced Pascal source files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return checkFiles(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, cfg)
	},
}
