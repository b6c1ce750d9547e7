package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/busname"
)

func newNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "name <base> <width>",
		Short: "Print the display name for a terminal of the given width",
		Example: `  symbol-customizer name out1 4   # out1[3:0]
  symbol-customizer name out1 1   # out1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := busname.ParseWidth(args[1])
			if err != nil {
				return err
			}
			name, err := busname.DisplayName(args[0], width)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}
