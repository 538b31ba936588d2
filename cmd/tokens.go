package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elkrammer/pascal-validator/lexer"
)

// tokens: dump the scanner output of a file
var TokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		for _, tok := range lexer.New(string(content)).Tokens() {
			fmt.Fprintf(out, "%v\n", tok)
		}
		return nil
	},
}
