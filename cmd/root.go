package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/gofemdesign/internal/config"
	"github.com/alexiusacademia/gofemdesign/internal/logging"
	"github.com/alexiusacademia/gofemdesign/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gofd",
	Short: "FEM-Design structural model and analysis tool",
	Long: `gofd - Go FEM-Design interoperability tool

A CLI tool that builds structural models for StruSoft FEM-Design,
writes them as struxml, generates the fdscript and bsc command files
the FEM-Design batch interface runs, and reads the result listings.

This tool helps structural engineers:
  - Build bar models with supports, loads and load cases from YAML
  - Generate NSCP 2015 strength load combinations
  - Run static and eigenfrequency analyses through FEM-Design
  - Tabulate and plot support reactions and internal forces`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		logger.Debug("Config loaded", zap.String("path", configPath))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gofd v%-50s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go FEM-Design Interoperability Tool                     ║")
		fmt.Fprintf(out, "  ║   %-56s║\n", fmt.Sprintf("%s ©  %s", version.Author, version.Year))
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • struxml models from YAML descriptions")
		fmt.Fprintln(out, "    • NSCP 2015 load combinations")
		fmt.Fprintln(out, "    • fdscript and bsc generation for the list generator")
		fmt.Fprintln(out, "    • FEM-Design batch runs and result tables")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gofd --help' to see available commands.")
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	logger = zap.NewNop()
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the logging level (debug, info, warn, error)")
}
