// Command-line entry point for the F1 dashboard data pipeline.
//
// The pipeline reads the five Formula 1 CSV exports (drivers, races, results,
// qualifying, constructors) from an input directory, joins them into a
// denormalized race-results table, aggregates driver, constructor and season
// summaries, and writes each derived table to the output directory as CSV
// ready for a dashboard import.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"f1pipeline/internal/pipeline"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "f1pipeline - commands:")
	fmt.Fprintln(w, "  run  - load the CSV datasets, aggregate and write the derived tables")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  f1pipeline run [-input DIR] [-output DIR] [-sqlite PATH] [-stats]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - Input files: drivers.csv, races.csv, results.csv, qualifying.csv, constructors.csv.")
	fmt.Fprintln(w, "  - Existing output files with the same names are overwritten.")
	fmt.Fprintln(w, "")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}
	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "run":
		runPipeline(os.Args[2:])
	case "-h", "--help", "help":
		usage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runPipeline(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	inputDir := fs.String("input", "data", "Input directory containing the F1 CSV datasets")
	outputDir := fs.String("output", "processed_data", "Output directory for the derived tables")
	sqlitePath := fs.String("sqlite", "", "Also mirror derived tables into this SQLite database")
	showStats := fs.Bool("stats", false, "Print run counters to stderr")
	_ = fs.Parse(args)

	stats, err := pipeline.Run(pipeline.Config{
		InputDir:   *inputDir,
		OutputDir:  *outputDir,
		SQLitePath: *sqlitePath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline failed: %v\n", err)
		os.Exit(1)
	}

	if *showStats {
		fmt.Fprintln(os.Stderr, stats.Summary())
	}
}
