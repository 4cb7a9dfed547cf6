package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/panel"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/proc"
)

var errImportFailed = errors.New("import failed")

var importCmd = &cobra.Command{
	Use:   "import <lcsc-part-number>",
	Short: "Import one part into the library",
	Long: `Run easyeda2kicad for one LCSC part number, the same way the import panel
does, and print the result.

Examples:
  easyeda2kicad-companion import C2040
  easyeda2kicad-companion import --converter ~/.local/bin/easyeda2kicad C12345`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := panel.New(newImporter(proc.ExecRunner{}), logger)
		n := p.Submit(cmd.Context(), args[0])

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", n.Title, n.Message)
		if n.Level == panel.LevelError {
			return errImportFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
