// =============================================================================
// Store Sales Analyzer - Serve Command
// =============================================================================
//
// This file defines the 'serve' command: run the HTTP viewer with the upload
// form, rendered tables, JSON API and workbook download.
//
// COMMAND USAGE:
//   analys serve [flags]
//
// FLAGS:
//   --addr : Listen address (overrides configuration)
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/config"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/webui"
)

// listenAddr overrides the configured listen address.
var listenAddr string

// serveCmd represents the 'serve' command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive analyzer in the browser",
	Long: `The serve command starts an HTTP server with an upload form. Each uploaded
POS export is analyzed in its request, the aggregate tables are rendered as
web pages, and the multi-sheet workbook is offered for download.

Reports live only in process memory; restarting the server forgets them.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// init registers the serve command and its flags.
func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(
		&listenAddr,
		"addr",
		"",
		"Listen address, e.g. :8780 (default from configuration)",
	)
}

// runServe starts the HTTP viewer.
func runServe() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if listenAddr != "" {
		cfg.Server.Addr = listenAddr
	}

	server := webui.New(cfg)

	slog.Info("serving analyzer", slog.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, server.Router()); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
