package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/elkrammer/pascal-validator/checker"
	"github.com/elkrammer/pascal-validator/config"
	"github.com/elkrammer/pascal-validator/repl"
	"github.com/elkrammer/pascal-validator/report"
)

// errRejected signals that at least one program was rejected. Its reports are
// already printed, so Execute only turns it into the exit status.
var errRejected = errors.New("one or more programs rejected")

var (
	cfgFile string
	flagCfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "pascal-validator [file...]",
	Short: "Syntax and type checker for a reduced Pascal",
	Long: `pascal-validator reads reduced Pascal programs and reports whether each one
is valid: declarations before use, block scoping and static type rules.

Without arguments it starts an interactive session.

Commands:
  check    Check one or more source files
  tokens   Print the token stream of a file
  repl     Start the interactive session
  version  Print version information`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return repl.Start(cmd.OutOrStdout(), cfg)
		}
		return checkFiles(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, cfg)
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errRejected) {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (toml or yaml)")
	config.SetupFlags(rootCmd.PersistentFlags(), &flagCfg)

	rootCmd.AddCommand(CheckCmd, TokensCmd, ReplCmd, VersionCmd)
}

// loadConfig layers the config file, if any, and explicit flags over the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return cfg, err
		}
	}
	if err := config.ApplyFlags(cmd.Flags(), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func checkFiles(out, errOut io.Writer, paths []string, cfg config.Config) error {
	var opts checker.Options
	if cfg.DebugMode {
		opts.Trace = errOut
	}
	rOpts := report.OptionsFrom(cfg)

	results := make([]checker.Result, 0, len(paths))
	for _, path := range paths {
		res, err := checker.CheckFile(path, opts)
		if err != nil {
			return err
		}
		results = append(results, res)
		if err := report.Write(out, res, rOpts); err != nil {
			return err
		}
	}

	if len(paths) > 1 && cfg.Format == config.FormatText {
		if err := report.Summary(out, results); err != nil {
			return err
		}
	}

	for _, res := range results {
		if !res.Accepted {
			return errRejected
		}
	}
	return nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
