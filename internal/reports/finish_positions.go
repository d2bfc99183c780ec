package reports

import (
	"sort"

	"f1pipeline/internal/join"
	"f1pipeline/internal/table"
)

// FinishPositions builds the average classified finishing position per
// driver, best average first. Drivers with no classified finishes are
// omitted.
type FinishPositions struct{}

func (FinishPositions) Name() string     { return "average_career_finish_position" }
func (FinishPositions) Filename() string { return "average_career_finish_position.csv" }

func (FinishPositions) Build(t *join.Tables) *table.Table {
	type acc struct {
		id       int
		name     string
		sum      int
		finishes int
	}

	accs := make(map[int]*acc)
	for _, r := range t.RaceResults {
		if !r.HasPosition {
			continue
		}
		a := accs[r.DriverID]
		if a == nil {
			a = &acc{id: r.DriverID, name: r.DriverName}
			accs[r.DriverID] = a
		}
		a.sum += r.Position
		a.finishes++
	}

	list := make([]*acc, 0, len(accs))
	for _, a := range accs {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		avgI := float64(list[i].sum) / float64(list[i].finishes)
		avgJ := float64(list[j].sum) / float64(list[j].finishes)
		if avgI != avgJ {
			return avgI < avgJ
		}
		if list[i].name != list[j].name {
			return list[i].name < list[j].name
		}
		return list[i].id < list[j].id
	})

	out := table.New("driver_name", "average_finish_position")
	for _, a := range list {
		out.Append(a.name, table.Average(float64(a.sum)/float64(a.finishes)))
	}
	return out
}
