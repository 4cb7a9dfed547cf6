package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/config"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/converter"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/kicadcfg"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/logging"
	"github.com/onurkarakoc79/EasyEDA2KiCAD-Plugin/internal/proc"
)

var (
	// Global flags
	verbose        bool
	envFile        string
	libraryDir     string
	kicadConfigDir string
	converterPath  string

	// Set up by PersistentPreRunE for every command.
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "easyeda2kicad-companion",
	Short: "Import EasyEDA/LCSC parts into KiCad",
	Long: `easyeda2kicad-companion adds an import panel to every open KiCad schematic
editor and registers the imported part library with KiCad.

Parts are converted by the external easyeda2kicad tool
(pipx install easyeda2kicad) into ~/Documents/KiCAD/EASYEDA2KICAD.

Examples:
  easyeda2kicad-companion register        # Add the library to KiCad (run once)
  easyeda2kicad-companion watch           # Attach import panels to schematic editors
  easyeda2kicad-companion import C2040    # Import one part from the command line
  easyeda2kicad-companion tables          # Show KiCad's global library tables`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&envFile, "env-file", "", "load settings from this .env file")
	flags.StringVar(&libraryDir, "library-dir", "", "library directory (default ~/Documents/KiCAD/EASYEDA2KICAD)")
	flags.StringVar(&kicadConfigDir, "kicad-config-dir", "", "KiCad configuration directory (default: discovered)")
	flags.StringVar(&converterPath, "converter", "", "path to the easyeda2kicad executable (default: discovered)")
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	c, err := config.Load(files...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("library-dir") {
		c.LibraryDir = libraryDir
	}
	if flags.Changed("kicad-config-dir") {
		c.KiCadConfigDir = kicadConfigDir
	}
	if flags.Changed("converter") {
		c.ConverterPath = converterPath
	}
	if verbose {
		c.LogLevel = "debug"
	}

	log, err := logging.New(logging.Config{Level: c.LogLevel, File: c.LogFile, Console: cmd.ErrOrStderr()})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	cfg, logger = c, log
	return nil
}

func newResolver(runner proc.Runner) *converter.Resolver {
	return converter.NewResolver(cfg.ConverterPath, runner, logger)
}

func newImporter(runner proc.Runner) *converter.Importer {
	return &converter.Importer{
		Resolver:   newResolver(runner),
		Runner:     runner,
		LibraryDir: cfg.LibraryDir,
		Timeout:    cfg.ConverterTimeout,
		Log:        logger,
	}
}

func newRegistrar() (*kicadcfg.Registrar, error) {
	env, err := kicadcfg.CurrentEnv()
	if err != nil {
		return nil, err
	}
	return &kicadcfg.Registrar{
		Env:        env,
		ConfigDir:  cfg.KiCadConfigDir,
		LibraryDir: cfg.LibraryDir,
		Log:        logger,
	}, nil
}
