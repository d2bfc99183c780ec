package reports

import (
	"sort"

	"f1pipeline/internal/join"
	"f1pipeline/internal/table"
)

// DriverStandings builds the per-driver career summary: distinct races
// entered, wins, podiums, points total and average classified finish.
type DriverStandings struct{}

func (DriverStandings) Name() string     { return "driver_standings" }
func (DriverStandings) Filename() string { return "driver_standings.csv" }

func (DriverStandings) Build(t *join.Tables) *table.Table {
	type acc struct {
		id          int
		name        string
		nationality string
		races       map[int]struct{}
		wins        int
		podiums     int
		points      float64
		finishSum   int
		finishes    int
	}

	accs := make(map[int]*acc)
	for _, r := range t.RaceResults {
		a := accs[r.DriverID]
		if a == nil {
			a = &acc{
				id:          r.DriverID,
				name:        r.DriverName,
				nationality: r.DriverNationality,
				races:       make(map[int]struct{}),
			}
			accs[r.DriverID] = a
		}
		a.races[r.RaceID] = struct{}{}
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
		// Distinct drivers can share a full name; the id keeps the order total.
		return list[i].id < list[j].id
	})

	out := table.New("driver_name", "nationality", "races", "wins", "podiums", "total_points", "average_finish_position")
	for _, a := range list {
		avg := ""
		if a.finishes > 0 {
			avg = table.Average(float64(a.finishSum) / float64(a.finishes))
		}
		out.Append(
			a.name,
			a.nationality,
			table.Int(len(a.races)),
			table.Int(a.wins),
			table.Int(a.podiums),
			table.Points(a.points),
			avg,
		)
	}
	return out
}
