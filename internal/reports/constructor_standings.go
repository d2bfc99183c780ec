package reports

import (
	"sort"

	"f1pipeline/internal/join"
	"f1pipeline/internal/table"
)

// ConstructorStandings builds the per-constructor summary. An entry is one
// car in one race, so a two-car team accrues two entries per round.
type ConstructorStandings struct{}

func (ConstructorStandings) Name() string     { return "constructor_standings" }
func (ConstructorStandings) Filename() string { return "constructor_standings.csv" }

func (ConstructorStandings) Build(t *join.Tables) *table.Table {
	type acc struct {
		id          int
		name        string
		nationality string
		entries     int
		wins        int
		podiums     int
		points      float64
		finishSum   int
		finishes    int
	}

	accs := make(map[int]*acc)
	for _, r := range t.RaceResults {
		a := accs[r.ConstructorID]
		if a == nil {
			a = &acc{id: r.ConstructorID, name: r.ConstructorName, nationality: r.ConstructorNationality}
			accs[r.ConstructorID] = a
		}
		a.entries++
		if r.HasPoints {
			a.points += r.Points
		}
		if r.HasPosition {
			a.finishes++
			a.finishSum += r.Position
			if r.Position == 1 {
				a.wins++
			}
			if r.Position <= 3 {
				a.podiums++
			}
		}
	}

	list := make([]*acc, 0, len(accs))
	for _, a := range accs {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].points != list[j].points {
			return list[i].points > list[j].points
		}
		if list[i].name != list[j].name {
			return list[i].name < list[j].name
		}
		// Constructor names recur across eras (Lotus); the id keeps the order total.
		return list[i].id < list[j].id
	})

	out := table.New("constructor_name", "nationality", "entries", "wins", "podiums", "total_points", "average_finish_position")
	for _, a := range list {
		avg := ""
		if a.finishes > 0 {
			avg = table.Average(float64(a.finishSum) / float64(a.finishes))
		}
		out.Append(
			a.name,
			a.nationality,
			table.Int(a.entries),
			table.Int(a.wins),
			table.Int(a.podiums),
			table.Points(a.points),
			avg,
		)
	}
	return out
}
