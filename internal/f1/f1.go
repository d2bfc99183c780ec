// Package f1 provides the row types for the Formula 1 datasets the pipeline
// consumes. Each type mirrors one input CSV; fields that may be non-numeric in
// the source (retired, disqualified, withdrawn entries) carry a presence flag
// instead of a sentinel value.
package f1

// Driver is a row of drivers.csv.
type Driver struct {
	ID          int
	Forename    string
	Surname     string
	Nationality string
}

// Name returns the display name used in report output, e.g. "Lewis Hamilton".
func (d Driver) Name() string {
	return d.Forename + " " + d.Surname
}

// Race is a row of races.csv.
type Race struct {
	ID      int
	Season  int
	Round   int
	Circuit string
}

// Result is a row of results.csv. HasPosition is false when the source value
// was not numeric; such rows still contribute points but are excluded from
// position-based statistics.
type Result struct {
	RaceID        int
	DriverID      int
	ConstructorID int
	Position      int
	HasPosition   bool
	Points        float64
	HasPoints     bool
}

// Win reports whether the result is a race win.
func (r Result) Win() bool {
	return r.HasPosition && r.Position == 1
}

// Podium reports whether the result is a podium finish (1st, 2nd or 3rd).
func (r Result) Podium() bool {
	return r.HasPosition && r.Position <= 3
}

// Qualifying is a row of qualifying.csv.
type Qualifying struct {
	RaceID      int
	DriverID    int
	Position    int
	HasPosition bool
}

// Constructor is a row of constructors.csv.
type Constructor struct {
	ID          int
	Name        string
	Nationality string
}
