// =============================================================================
// Store Sales Analyzer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the store sales analyzer CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   analys process --file <export>  - Analyze one POS export
//   analys serve                    - Run the interactive web viewer
//   analys version                  - Display the application version
//
// ARCHITECTURE:
//   - cmd/      : CLI command definitions (Cobra)
//   - internal/ : Core pipeline (loader, analyzer, exporter, webui, config)
//   - pkg/      : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/TanakaTsuyoshi-10/analys-anual/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
