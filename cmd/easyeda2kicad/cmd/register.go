package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/kicadcfg"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the library directory with KiCad",
	Long: `Create the library directory, set the EASYEDA2KICAD path variable in
kicad_common.json and add the easyeda2kicad library to sym-lib-table and
fp-lib-table. Running it again changes nothing.

Close KiCad before running this command; KiCad rewrites its configuration on
exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistrar()
		if err != nil {
			return err
		}
		report, err := reg.Register()
		report.Print(cmd.OutOrStdout())
		if errors.Is(err, kicadcfg.ErrConfigNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), kicadcfg.Guidance)
		}
		return err
	},
}

var deregisterCmd = &cobra.Command{
	Use:   "deregister",
	Short: "Remove the library from every KiCad version's configuration",
	Long: `Remove the EASYEDA2KICAD path variable and the easyeda2kicad library
entries from the configuration of every installed KiCad version. Imported
parts are left on disk.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistrar()
		if err != nil {
			return err
		}
		report, err := reg.Deregister()
		report.Print(cmd.OutOrStdout())
		if errors.Is(err, kicadcfg.ErrConfigNotFound) {
			fmt.Fprintln(cmd.OutOrStdout(), "Ensure KiCad has been run at least once.")
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(deregisterCmd)
}
