package reports

import (
	"reflect"
	"testing"

	"f1pipeline/internal/join"
)

// joined returns a small joined dataset: one 2023 race, two drivers, two
// constructors.
func joined() *join.Tables {
	return &join.Tables{
		RaceResults: []join.RaceResult{
			{
				RaceID: 1, Season: 2023, Round: 1, Circuit: "Bahrain Grand Prix",
				DriverID: 10, DriverName: "Max Verstappen", DriverNationality: "Dutch",
				ConstructorID: 5, ConstructorName: "Red Bull", ConstructorNationality: "Austrian",
				Position: 1, HasPosition: true, Points: 25, HasPoints: true,
			},
			{
				RaceID: 1, Season: 2023, Round: 1, Circuit: "Bahrain Grand Prix",
				DriverID: 11, DriverName: "Lando Norris", DriverNationality: "British",
				ConstructorID: 6, ConstructorName: "McLaren", ConstructorNationality: "British",
				Position: 2, HasPosition: true, Points: 18, HasPoints: true,
			},
		},
		GridResults: []join.GridResult{
			{RaceID: 1, Season: 2023, DriverID: 10, DriverName: "Max Verstappen", QualifyingPosition: 2, FinishPosition: 1},
			{RaceID: 1, Season: 2023, DriverID: 11, DriverName: "Lando Norris", QualifyingPosition: 1, FinishPosition: 2},
		},
	}
}

func row(t *testing.T, rows [][]string, i int) []string {
	t.Helper()
	if i >= len(rows) {
		t.Fatalf("row %d out of range, table has %d rows", i, len(rows))
	}
	return rows[i]
}

func TestDriverStandings(t *testing.T) {
	out := DriverStandings{}.Build(joined())

	if out.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", out.Len())
	}

	// Sorted by points descending.
	first := row(t, out.Rows, 0)
	if first[0] != "Max Verstappen" {
		t.Errorf("first driver = %q, want %q", first[0], "Max Verstappen")
	}
	if first[3] != "1" { // wins
		t.Errorf("wins = %q, want %q", first[3], "1")
	}
	if first[5] != "25" { // total_points
		t.Errorf("total_points = %q, want %q", first[5], "25")
	}

	second := row(t, out.Rows, 1)
	if second[0] != "Lando Norris" {
		t.Errorf("second driver = %q, want %q", second[0], "Lando Norris")
	}
	if second[3] != "0" {
		t.Errorf("wins = %q, want %q", second[3], "0")
	}
	if second[5] != "18" {
		t.Errorf("total_points = %q, want %q", second[5], "18")
	}
	if second[4] != "1" { // P2 is a podium
		t.Errorf("podiums = %q, want %q", second[4], "1")
	}
}

func TestDriverStandings_UnclassifiedFinishes(t *testing.T) {
	in := joined()
	// Add a retirement: points but no classified position.
	in.RaceResults = append(in.RaceResults, join.RaceResult{
		RaceID: 2, Season: 2023, Round: 2,
		DriverID: 10, DriverName: "Max Verstappen", DriverNationality: "Dutch",
		ConstructorID: 5, ConstructorName: "Red Bull", ConstructorNationality: "Austrian",
		HasPosition: false, Points: 0, HasPoints: true,
	})

	out := DriverStandings{}.Build(in)
	first := row(t, out.Rows, 0)
	if first[2] != "2" { // two distinct races
		t.Errorf("races = %q, want %q", first[2], "2")
	}
	if first[6] != "1.00" { // average over classified finishes only
		t.Errorf("average_finish_position = %q, want %q", first[6], "1.00")
	}
}

func TestConstructorStandings(t *testing.T) {
	out := ConstructorStandings{}.Build(joined())

	first := row(t, out.Rows, 0)
	if first[0] != "Red Bull" {
		t.Errorf("first constructor = %q, want %q", first[0], "Red Bull")
	}
	if first[2] != "1" { // entries
		t.Errorf("entries = %q, want %q", first[2], "1")
	}
	if first[3] != "1" { // wins
		t.Errorf("wins = %q, want %q", first[3], "1")
	}
}

func TestSeasonSummary(t *testing.T) {
	out := SeasonSummary{}.Build(joined())

	if out.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", out.Len())
	}
	r := row(t, out.Rows, 0)
	if r[0] != "2023" {
		t.Errorf("season = %q, want %q", r[0], "2023")
	}
	if r[1] != "1" { // distinct races
		t.Errorf("races = %q, want %q", r[1], "1")
	}
	if r[2] != "2" { // entries
		t.Errorf("entries = %q, want %q", r[2], "2")
	}
	if r[3] != "43" {
		t.Errorf("total_points = %q, want %q", r[3], "43")
	}
}

func TestPositionsGained(t *testing.T) {
	out := PositionsGained{}.Build(joined())

	// Verstappen gained one place (P2 -> P1), Norris lost one (P1 -> P2).
	first := row(t, out.Rows, 0)
	if first[0] != "Max Verstappen" || first[1] != "1.00" {
		t.Errorf("first row = %v, want Max Verstappen 1.00", first)
	}
	second := row(t, out.Rows, 1)
	if second[0] != "Lando Norris" || second[1] != "-1.00" {
		t.Errorf("second row = %v, want Lando Norris -1.00", second)
	}
}

func TestFinishPositions(t *testing.T) {
	out := FinishPositions{}.Build(joined())

	// Best average first.
	first := row(t, out.Rows, 0)
	if first[0] != "Max Verstappen" || first[1] != "1.00" {
		t.Errorf("first row = %v, want Max Verstappen 1.00", first)
	}
}

// sameNameRaceResult returns one race result for a driver named "John Smith".
// Distinct ids sharing a name and a points total are valid input, so the row
// order must still come out the same on every build.
func sameNameRaceResult(raceID, driverID int, nationality string) join.RaceResult {
	return join.RaceResult{
		RaceID: raceID, Season: 2023, Round: raceID,
		DriverID: driverID, DriverName: "John Smith", DriverNationality: nationality,
		ConstructorID: 5, ConstructorName: "Red Bull", ConstructorNationality: "Austrian",
		Position: 2, HasPosition: true, Points: 18, HasPoints: true,
	}
}

func TestDriverStandings_EqualPointsSameName(t *testing.T) {
	in := &join.Tables{
		RaceResults: []join.RaceResult{
			sameNameRaceResult(1, 21, "British"),
			sameNameRaceResult(2, 20, "American"),
		},
	}

	for i := 0; i < 200; i++ {
		out := DriverStandings{}.Build(in)
		if out.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", out.Len())
		}
		// Lower driver id first once points and name tie.
		if got := out.Rows[0][1]; got != "American" {
			t.Fatalf("build %d: first row nationality = %q, want %q", i, got, "American")
		}
	}
}

func TestConstructorStandings_EqualPointsSameName(t *testing.T) {
	a := sameNameRaceResult(1, 10, "British")
	a.ConstructorID = 31
	a.ConstructorName = "Lotus"
	a.ConstructorNationality = "British"
	b := sameNameRaceResult(2, 11, "British")
	b.ConstructorID = 30
	b.ConstructorName = "Lotus"
	b.ConstructorNationality = "Malaysian"
	in := &join.Tables{RaceResults: []join.RaceResult{a, b}}

	for i := 0; i < 200; i++ {
		out := ConstructorStandings{}.Build(in)
		if got := out.Rows[0][1]; got != "Malaysian" {
			t.Fatalf("build %d: first row nationality = %q, want %q", i, got, "Malaysian")
		}
	}
}

func TestGridReports_EqualMetricSameName(t *testing.T) {
	in := &join.Tables{
		RaceResults: []join.RaceResult{
			sameNameRaceResult(1, 21, "British"),
			sameNameRaceResult(2, 20, "American"),
		},
		GridResults: []join.GridResult{
			{RaceID: 1, Season: 2023, DriverID: 21, DriverName: "John Smith", QualifyingPosition: 4, FinishPosition: 2},
			{RaceID: 2, Season: 2023, DriverID: 20, DriverName: "John Smith", QualifyingPosition: 4, FinishPosition: 2},
		},
	}

	// Ties resolve by driver id, so every build must emit the same rows in
	// the same order.
	firstGained := PositionsGained{}.Build(in)
	firstFinish := FinishPositions{}.Build(in)
	if firstGained.Len() != 2 || firstFinish.Len() != 2 {
		t.Fatalf("Len() = %d/%d, want 2/2", firstGained.Len(), firstFinish.Len())
	}
	for i := 0; i < 200; i++ {
		if got := (PositionsGained{}).Build(in); !reflect.DeepEqual(got.Rows, firstGained.Rows) {
			t.Fatalf("build %d: positions gained rows = %v, want %v", i, got.Rows, firstGained.Rows)
		}
		if got := (FinishPositions{}).Build(in); !reflect.DeepEqual(got.Rows, firstFinish.Rows) {
			t.Fatalf("build %d: finish position rows = %v, want %v", i, got.Rows, firstFinish.Rows)
		}
	}
}

func TestBuilders_EmptyInput(t *testing.T) {
	empty := &join.Tables{}
	for _, b := range All() {
		out := b.Build(empty)
		if out == nil {
			t.Fatalf("%s: Build returned nil", b.Name())
		}
		if out.Len() != 0 {
			t.Errorf("%s: Len() = %d, want 0", b.Name(), out.Len())
		}
		if len(out.Header) == 0 {
			t.Errorf("%s: empty header", b.Name())
		}
	}
}

func TestAll_StableOrder(t *testing.T) {
	want := []string{
		"driver_standings",
		"constructor_standings",
		"season_summary",
		"average_positions_gained",
		"average_career_finish_position",
	}
	got := All()
	if len(got) != len(want) {
		t.Fatalf("len(All()) = %d, want %d", len(got), len(want))
	}
	for i, b := range got {
		if b.Name() != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, b.Name(), want[i])
		}
	}
}
