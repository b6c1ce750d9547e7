package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/extractor"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/log"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/symbol"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/validator"
)

func newImportVHDLCommand() *cobra.Command {
	var entityName, outPath string

	cmd := &cobra.Command{
		Use:   "import-vhdl <file.vhd>",
		Short: "Create an instance document from a VHDL entity",
		Long: `Read a VHDL entity and write an instance document for it. Every port
becomes a terminal; every port with a constant width gets a <port>_width
parameter. Ports sized by generics get no width parameter.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facts, err := extractor.NewVHDL().Extract(args[0])
			if err != nil {
				return err
			}

			ent, ok := facts.FindEntity(entityName)
			if !ok {
				if entityName == "" {
					return fmt.Errorf("%s: no entity declared", args[0])
				}
				return fmt.Errorf("%s: entity %q not found", args[0], entityName)
			}
			log.Default().Info("imported entity", "entity", ent.Name, "ports", len(ent.Ports))

			doc := symbol.FromEntity(ent)
			v, err := validator.New()
			if err != nil {
				return err
			}
			if err := v.Validate(doc); err != nil {
				return fmt.Errorf("entity %s: %w", ent.Name, err)
			}

			if outPath != "" {
				return doc.Save(outPath)
			}
			data, err := doc.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&entityName, "entity", "e", "", "Entity to import (default: first in file)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the document here instead of stdout")

	return cmd
}
