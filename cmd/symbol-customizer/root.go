package main

import (
	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/log"
)

// NewRootCommand builds the command tree
func NewRootCommand(version string) *cobra.Command {
	var quiet, verbose, debug bool

	rootCmd := &cobra.Command{
		Use:   "symbol-customizer",
		Short: "Rename component symbol terminals to reflect bus width",
		Long: `symbol-customizer applies a component's configured output widths to its
schematic symbol: a 4-bit out1 becomes out1[3:0], a 1-bit out1 stays out1.

Instance documents are YAML files holding the committed parameters and the
symbol's terminals. Configuration is read from symbol_customizer.json.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDefault(log.NewText(cmd.ErrOrStderr(), log.LevelFor(quiet, verbose, debug)))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log each rename")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log parameter reads and policy details")

	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newNameCommand())
	rootCmd.AddCommand(newImportVHDLCommand())
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
