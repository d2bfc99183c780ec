// Package pipeline wires the load, join, report and write stages into one
// synchronous run.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"f1pipeline/internal/join"
	"f1pipeline/internal/load"
	"f1pipeline/internal/reports"
	"f1pipeline/internal/storage"
	"f1pipeline/internal/table"
)

// Config carries the paths for one run.
type Config struct {
	InputDir   string
	OutputDir  string
	SQLitePath string // optional sink; empty disables it
}

// Stats counts what one run loaded, dropped and wrote.
type Stats struct {
	Drivers      int
	Races        int
	Constructors int
	Results      int
	Qualifying   int

	ResultRowsDropped     int // results rows with unparsable identifiers
	QualifyingRowsDropped int // qualifying rows with unparsable identifiers
	Drops                 join.Drops

	ReportsWritten int
}

// Summary returns the one-line counter string printed with -stats.
func (s *Stats) Summary() string {
	return fmt.Sprintf(
		"stats: loaded(drivers=%d races=%d constructors=%d results=%d qualifying=%d) dropped(bad_id=%d fk=%d grid=%d dup_id=%d) reports=%d",
		s.Drivers, s.Races, s.Constructors, s.Results, s.Qualifying,
		s.ResultRowsDropped+s.QualifyingRowsDropped,
		s.Drops.ResultFK+s.Drops.QualifyingFK,
		s.Drops.GridUnpaired,
		s.Drops.DuplicateIDs,
		s.ReportsWritten,
	)
}

// Run executes one pipeline pass: load every dataset, join, build each
// report and write it to the output directory, then mirror the tables into
// the SQLite sink when one is configured. The first error aborts the run.
func Run(cfg Config) (*Stats, error) {
	stats := &Stats{}

	drivers, err := load.Drivers(filepath.Join(cfg.InputDir, "drivers.csv"))
	if err != nil {
		return nil, err
	}
	races, err := load.Races(filepath.Join(cfg.InputDir, "races.csv"))
	if err != nil {
		return nil, err
	}
	constructors, err := load.Constructors(filepath.Join(cfg.InputDir, "constructors.csv"))
	if err != nil {
		return nil, err
	}
	results, resultsDropped, err := load.Results(filepath.Join(cfg.InputDir, "results.csv"))
	if err != nil {
		return nil, err
	}
	qualifying, qualifyingDropped, err := load.Qualifying(filepath.Join(cfg.InputDir, "qualifying.csv"))
	if err != nil {
		return nil, err
	}

	stats.Drivers = len(drivers)
	stats.Races = len(races)
	stats.Constructors = len(constructors)
	stats.Results = len(results)
	stats.Qualifying = len(qualifying)
	stats.ResultRowsDropped = resultsDropped
	stats.QualifyingRowsDropped = qualifyingDropped

	joined, drops, err := join.Denormalize(drivers, races, constructors, results, qualifying)
	if err != nil {
		return nil, err
	}
	stats.Drops = *drops

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, &table.WriteError{Path: cfg.OutputDir, Err: err}
	}

	built := make(map[string]*table.Table)
	for _, b := range reports.All() {
		t := b.Build(joined)
		if err := table.WriteCSV(t, filepath.Join(cfg.OutputDir, b.Filename())); err != nil {
			return nil, err
		}
		built[b.Name()] = t
		stats.ReportsWritten++
	}

	if cfg.SQLitePath != "" {
		db, err := storage.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		for _, b := range reports.All() {
			if err := db.SaveTable(b.Name(), built[b.Name()]); err != nil {
				return nil, err
			}
		}
	}

	return stats, nil
}
