package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gouhc/internal/config"
	"github.com/alexiusacademia/gouhc/internal/logging"
	"github.com/alexiusacademia/gouhc/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbosity  int
	quiet      bool
	logFormat  string

	// Resolved before every command runs
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gouhc",
	Short: "Sanitary Drainage Network Analyzer and Sizing Tool",
	Long: `gouhc - Go UHC Sanitary Drainage Sizer

A CLI tool for the analysis and sizing of building sanitary drainage
networks based on ABNT NBR 8160.

Starting from the public sewer connection of a building model, it:
  - Discovers the drainage network and the flow direction of every link
  - Assigns fixture loads in Units of Hydraulic Consumption (UHC)
  - Accumulates loads downstream, counting converging branches once
  - Suggests the minimal pipe diameter and slope for every element
  - Lists pipe runs with their designed and geometric slopes

Results can be written as text, JSON or CSV, drawn as a network tree or
load chart, stored in SQLite, exported to Neo4j and published to NATS.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		format := cfg.Logging.Format
		if logFormat != "" {
			format = logFormat
		}
		logger, err = logging.New(os.Stderr, format, logging.Resolve(cfg.Logging.Level, verbosity, quiet))
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gouhc v%-49s║\n", version.Version)
		fmt.Println("  ║   Go UHC Sanitary Drainage Sizer                          ║")
		fmt.Printf("  ║   %-56s║\n", version.Standard)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the analysis and sizing of building sanitary")
		fmt.Println("  drainage networks based on ABNT NBR 8160.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Network discovery from the sewer connection upstream")
		fmt.Println("    • Fixture loads (UHC) from properties or the appliance table")
		fmt.Println("    • Load accumulation with converging branches counted once")
		fmt.Println("    • Minimal diameter and slope for every pipe")
		fmt.Println()
		fmt.Println("  Use 'gouhc --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./gouhc.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from config)")
}
