package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/kicadcfg"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/pkg/kicad/libtable"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the entries of KiCad's global library tables",
	Long: `Print every library of sym-lib-table and fp-lib-table next to the KiCad
configuration in use.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := kicadcfg.CurrentEnv()
		if err != nil {
			return err
		}
		path, err := kicadcfg.FindConfigFile(env, cfg.KiCadConfigDir)
		if err != nil {
			return err
		}
		dir := filepath.Dir(path)

		out := cmd.OutOrStdout()
		for _, name := range []string{libtable.SymbolTableFile, libtable.FootprintTableFile} {
			tablePath := filepath.Join(dir, name)
			table, err := libtable.Load(tablePath)
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(out, "%s: not found\n\n", tablePath)
				continue
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s (version %d, %d libraries)\n", tablePath, table.Version, len(table.Entries))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, e := range table.Entries {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Name, e.Type, e.URI)
			}
			tw.Flush()
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
