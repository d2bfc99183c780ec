// Package join denormalizes the fact tables against the dimension tables.
//
// Joins are hash-joins over id-keyed maps with inner-join semantics: a fact
// row whose foreign key is missing from a dimension table is excluded from the
// joined output and counted, never fatal.
package join

import (
	"fmt"

	"f1pipeline/internal/f1"
)

// RaceResult is one row of the denormalized race-results table.
type RaceResult struct {
	RaceID                 int
	Season                 int
	Round                  int
	Circuit                string
	DriverID               int
	DriverName             string
	DriverNationality      string
	ConstructorID          int
	ConstructorName        string
	ConstructorNationality string
	Position               int
	HasPosition            bool
	Points                 float64
	HasPoints              bool
}

// GridResult pairs a driver's qualifying position with their classified
// finishing position in the same race. Rows missing either position are not
// represented here.
type GridResult struct {
	RaceID             int
	Season             int
	DriverID           int
	DriverName         string
	QualifyingPosition int
	FinishPosition     int
}

// PositionsGained returns how many places the driver made up between
// qualifying and the finish. Positive means places gained.
func (g GridResult) PositionsGained() int {
	return g.QualifyingPosition - g.FinishPosition
}

// Tables holds the joined output consumed by the report builders.
type Tables struct {
	RaceResults []RaceResult
	GridResults []GridResult
}

// Drops counts rows excluded during the join, by cause.
type Drops struct {
	ResultFK     int // results rows with a foreign key missing from a dimension
	QualifyingFK int // qualifying rows with a foreign key missing from a dimension
	GridUnpaired int // qualifying rows without a matching classified finish
	DuplicateIDs int // duplicate ids across all dimension tables (last row wins)
}

// JoinKeyError reports a structural mismatch discovered while joining,
// which indicates corrupt input rather than ordinary unmatched keys.
type JoinKeyError struct {
	Table string
	Msg   string
}

func (e *JoinKeyError) Error() string {
	return fmt.Sprintf("join %s: %s", e.Table, e.Msg)
}

// gridKey identifies one driver's entry in one race.
type gridKey struct {
	raceID   int
	driverID int
}

// Denormalize joins the fact tables against the dimensions and returns the
// denormalized tables together with drop counters.
func Denormalize(drivers []f1.Driver, races []f1.Race, constructors []f1.Constructor, results []f1.Result, qualifying []f1.Qualifying) (*Tables, *Drops, error) {
	drops := &Drops{}

	driverByID := make(map[int]f1.Driver, len(drivers))
	for _, d := range drivers {
		if _, dup := driverByID[d.ID]; dup {
			drops.DuplicateIDs++
		}
		driverByID[d.ID] = d
	}
	raceByID := make(map[int]f1.Race, len(races))
	for _, r := range races {
		if _, dup := raceByID[r.ID]; dup {
			drops.DuplicateIDs++
		}
		raceByID[r.ID] = r
	}
	constructorByID := make(map[int]f1.Constructor, len(constructors))
	for _, c := range constructors {
		if _, dup := constructorByID[c.ID]; dup {
			drops.DuplicateIDs++
		}
		constructorByID[c.ID] = c
	}

	t := &Tables{}

	// Finishing positions keyed by (race, driver) for the qualifying join.
	finishes := make(map[gridKey]int, len(results))

	for _, res := range results {
		race, okRace := raceByID[res.RaceID]
		driver, okDriver := driverByID[res.DriverID]
		constructor, okConstructor := constructorByID[res.ConstructorID]
		if !okRace || !okDriver || !okConstructor {
			drops.ResultFK++
			continue
		}

		if res.HasPosition {
			finishes[gridKey{res.RaceID, res.DriverID}] = res.Position
		}

		t.RaceResults = append(t.RaceResults, RaceResult{
			RaceID:                 race.ID,
			Season:                 race.Season,
			Round:                  race.Round,
			Circuit:                race.Circuit,
			DriverID:               driver.ID,
			DriverName:             driver.Name(),
			DriverNationality:      driver.Nationality,
			ConstructorID:          constructor.ID,
			ConstructorName:        constructor.Name,
			ConstructorNationality: constructor.Nationality,
			Position:               res.Position,
			HasPosition:            res.HasPosition,
			Points:                 res.Points,
			HasPoints:              res.HasPoints,
		})
	}

	// Defensive assertion: every input row must be either joined or counted
	// as dropped. A mismatch means the loop above lost or invented rows.
	if len(t.RaceResults)+drops.ResultFK != len(results) {
		return nil, nil, &JoinKeyError{Table: "results", Msg: "joined row count does not reconcile with input"}
	}

	for _, q := range qualifying {
		race, okRace := raceByID[q.RaceID]
		driver, okDriver := driverByID[q.DriverID]
		if !okRace || !okDriver {
			drops.QualifyingFK++
			continue
		}
		if !q.HasPosition {
			drops.GridUnpaired++
			continue
		}
		finish, ok := finishes[gridKey{q.RaceID, q.DriverID}]
		if !ok {
			drops.GridUnpaired++
			continue
		}

		t.GridResults = append(t.GridResults, GridResult{
			RaceID:             q.RaceID,
			Season:             race.Season,
			DriverID:           driver.ID,
			DriverName:         driver.Name(),
			QualifyingPosition: q.Position,
			FinishPosition:     finish,
		})
	}

	// Same reconciliation for the qualifying join.
	if len(t.GridResults)+drops.QualifyingFK+drops.GridUnpaired != len(qualifying) {
		return nil, nil, &JoinKeyError{Table: "qualifying", Msg: "joined row count does not reconcile with input"}
	}

	return t, drops, nil
}
