// Package reports builds the derived tables written to the output directory.
//
// Each builder produces one table from the joined data using explicit
// accumulator structs and an explicit sort with a name tie-break, so two runs
// over identical input emit byte-identical files.
package reports

import (
	"f1pipeline/internal/join"
	"f1pipeline/internal/table"
)

// Builder produces one derived table from the joined data.
type Builder interface {
	// Name is the report identifier used in stats output.
	Name() string

	// Filename is the file written into the output directory.
	Filename() string

	// Build constructs the derived table. An empty input produces an empty
	// table with the header intact, never an error.
	Build(t *join.Tables) *table.Table
}

// All returns every report builder in output order.
func All() []Builder {
	return []Builder{
		DriverStandings{},
		ConstructorStandings{},
		SeasonSummary{},
		PositionsGained{},
		FinishPositions{},
	}
}
