// =============================================================================
// Store Sales Analyzer - Process Command
// =============================================================================
//
// This file defines the 'process' command: run the aggregation pipeline on
// one POS export, print the aggregate tables to the terminal and write the
// workbook artifact.
//
// COMMAND USAGE:
//   analys process --file <export> [flags]
//
// FLAGS:
//   --file    : Path to the export (.csv or .xlsx) - required
//   --output  : Output directory for the workbook (overrides configuration)
//   --no-save : Print the tables without writing the workbook
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Detect the export format from the file extension
//   3. Load and normalize the export
//   4. Run the three aggregation passes
//   5. Render the tables (with an advisory when time slots are unavailable)
//   6. Write the multi-sheet workbook
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/TanakaTsuyoshi-10/analys-anual/internal/analyzer"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/config"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/exporter"
	"github.com/TanakaTsuyoshi-10/analys-anual/internal/loader"
	"github.com/TanakaTsuyoshi-10/analys-anual/pkg/utils"
)

// exportFile is the path to the export to process.
var exportFile string

// outputDir overrides the configured workbook output directory.
var outputDir string

// noSave skips writing the workbook artifact.
var noSave bool

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Analyze one POS export and write the result workbook",
	Long: `The process command reads one POS export (CP932 CSV with 2 banner rows, or
an Excel workbook with headers on the 4th row), aggregates it and prints the
resulting tables.

Unless --no-save is given, the aggregates are also written to a multi-sheet
Excel workbook in the output directory. Exports without a 販売日時 column
produce only the store summary and product sheets, plus an advisory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// init registers the process command and its flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&exportFile,
		"file",
		"",
		"Path to the POS export (.csv or .xlsx)",
	)
	processCmd.MarkFlagRequired("file")

	processCmd.Flags().StringVar(
		&outputDir,
		"output",
		"",
		"Output directory for the workbook (default from configuration)",
	)

	processCmd.Flags().BoolVar(
		&noSave,
		"no-save",
		false,
		"Print the tables without writing the workbook",
	)
}

// runProcess executes the pipeline for the file given on the command line.
func runProcess() error {
	startTime := time.Now()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	format, err := loader.DetectFormat(exportFile)
	if err != nil {
		return err
	}

	f, err := os.Open(exportFile)
	if err != nil {
		return fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	tbl, err := loader.Load(f, format, cfg)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", exportFile, err)
	}

	report := analyzer.Run(tbl, cfg)
	printReport(report)

	if noSave {
		return nil
	}

	outPath, err := utils.OutputPath(cfg.Output.Dir, cfg.Output.FilenameFormat)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create workbook file: %w", err)
	}
	defer out.Close()

	if err := exporter.Write(report, out); err != nil {
		return fmt.Errorf("failed to export workbook: %w", err)
	}

	fmt.Printf("\n  ✓ %s (%s)\n", outPath, time.Since(startTime).Round(time.Millisecond))
	return nil
}

// =============================================================================
// TABLE RENDERING
// =============================================================================

// printReport renders every aggregate as an aligned text table.
func printReport(report *analyzer.Report) {
	fmt.Println("=== 店舗別売上・来客数・客単価 ===")
	printStoreSummary(report.Stores)

	fmt.Println("\n=== 店舗別・商品別の販売数／総販売個数 ===")
	printPivot(report.Products)

	if report.HasBuckets() {
		fmt.Println("\n=== 店舗別・時間帯別 来客数（30分刻み） ===")
		printPivot(report.Buckets.Visits)

		fmt.Println("\n=== 店舗別・時間帯別 総販売個数（30分刻み） ===")
		printPivot(report.Buckets.Units)
	} else {
		fmt.Printf("\n  ⚠ %s\n", analyzer.Advisory)
	}
}

// printStoreSummary renders the store summary table.
func printStoreSummary(summary *analyzer.StoreSummary) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		analyzer.LabelStore, analyzer.LabelRevenue, analyzer.LabelVisits, analyzer.LabelAvgTicket)
	for _, row := range summary.Rows {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", row.Store, row.Revenue, row.Visits, row.AvgTicket)
	}
	w.Flush()
}

// printPivot renders one store × dimension matrix.
func printPivot(p *analyzer.Pivot) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)

	fmt.Fprint(w, p.Index)
	for _, col := range p.Columns {
		fmt.Fprintf(w, "\t%s", col)
	}
	fmt.Fprintln(w)

	for i, store := range p.Stores {
		fmt.Fprint(w, store)
		for _, v := range p.Cells[i] {
			fmt.Fprintf(w, "\t%d", v)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
