package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/valops/vacct/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	year   int
	format string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the tax ledger built from the recorded history" }
func (*reportCmd) Usage() string {
	return `vacct report [-y <year>] [-f <format>]

  Replays the full transfer and cost history through the classification and
  capital-pool pipeline and renders the resulting ledger. The -y flag
  restricts the printed entries to a single tax year; totals and the
  capital-pool replay always cover the full history.

  Formats:
    markdown    the full ledger with totals (default)
    csv         machine-readable ledger rows
    schedule-c  Schedule C line aggregation
    summary     a short console recap

Usage Examples:
# Ledger for the 2024 tax year.
$ vacct report -y 2024

# Export the full history as CSV.
$ vacct report -f csv > ledger.csv
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", 0, "Tax year to report on. Reports the full history by default.")
	f.StringVar(&c.format, "f", "markdown", "Output format: markdown, csv, schedule-c or summary.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := OpenConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	db, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	report, err := newReporter(db, cfg).Report(c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}

	switch c.format {
	case "markdown":
		printMarkdown(renderer.LedgerMarkdown(report))
	case "csv":
		if err := renderer.LedgerCSV(os.Stdout, report.Entries); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			return subcommands.ExitFailure
		}
	case "schedule-c":
		if err := renderer.ScheduleC(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing Schedule C: %v\n", err)
			return subcommands.ExitFailure
		}
	case "summary":
		renderer.Summary(os.Stdout, report)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
