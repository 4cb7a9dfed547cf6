package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/proc"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show which easyeda2kicad executable would be used",
	Long: `Locate the easyeda2kicad converter: the --converter path, then pipx
environments, then ~/.local/bin and other install locations, then PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exe, err := newResolver(proc.ExecRunner{}).Resolve(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), exe)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
