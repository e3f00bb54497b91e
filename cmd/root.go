// =============================================================================
// Store Sales Analyzer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// ('process', 'serve', 'version') are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (analys)
//   ├── processCmd (analys process)
//   ├── serveCmd   (analys serve)
//   └── versionCmd (analys version)
//
// The root command owns the global flags (--config, --verbose) and sets up
// structured logging before any subcommand runs.
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file.
// Empty means built-in defaults; override with the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "analys",
	Short: "店舗別売上・来客・販売個数 分析 - POS export analyzer for the store network",

	Long: `analys ingests one POS export (CP932 CSV or Excel), resolves the store
behind each receipt number and produces four aggregate reports:

  - per-store revenue, visit count and average ticket
  - per-store, per-product sold counts with total piece counts
  - per-store visit counts in 30-minute slots
  - per-store piece counts in 30-minute slots

The aggregates are printed to the terminal (or served as web pages with
'analys serve') and written to a multi-sheet Excel workbook.

Example Usage:
  analys process --file 売上一覧.csv     # Analyze one export
  analys serve                           # Upload, view and download in the browser`,

	Run: func(cmd *cobra.Command, args []string) {
		// Without a subcommand there is nothing to do but explain.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// init sets up the global flags and logging initialization.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (built-in defaults when omitted)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	cobra.OnInitialize(initLogging)
}

// initLogging installs the process-wide structured logger.
func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
