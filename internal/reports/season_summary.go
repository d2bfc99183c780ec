package reports

import (
	"sort"

	"f1pipeline/internal/join"
	"f1pipeline/internal/table"
)

// SeasonSummary builds the per-season rollup: distinct races run, entries and
// the points awarded across the season.
type SeasonSummary struct{}

func (SeasonSummary) Name() string     { return "season_summary" }
func (SeasonSummary) Filename() string { return "season_summary.csv" }

func (SeasonSummary) Build(t *join.Tables) *table.Table {
	type acc struct {
		races   map[int]struct{}
		entries int
		points  float64
	}

	accs := make(map[int]*acc)
	for _, r := range t.RaceResults {
		a := accs[r.Season]
		if a == nil {
			a = &acc{races: make(map[int]struct{})}
			accs[r.Season] = a
		}
		a.races[r.RaceID] = struct{}{}
		a.entries++
		if r.HasPoints {
			a.points += r.Points
		}
	}

	seasons := make([]int, 0, len(accs))
	for s := range accs {
		seasons = append(seasons, s)
	}
	sort.Ints(seasons)

	out := table.New("season", "races", "entries", "total_points")
	for _, s := range seasons {
		a := accs[s]
		out.Append(
			table.Int(s),
			table.Int(len(a.races)),
			table.Int(a.entries),
			table.Points(a.points),
		)
	}
	return out
}
