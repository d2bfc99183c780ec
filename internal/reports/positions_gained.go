package reports

import (
	"sort"

	"f1pipeline/internal/join"
	"f1pipeline/internal/table"
)

// PositionsGained builds the average places a driver makes up between
// qualifying and the finish. Positive means the driver typically finishes
// better than they qualify.
type PositionsGained struct{}

func (PositionsGained) Name() string     { return "average_positions_gained" }
func (PositionsGained) Filename() string { return "average_positions_gained.csv" }

func (PositionsGained) Build(t *join.Tables) *table.Table {
	type acc struct {
		id     int
		name   string
		gained int
		rows   int
	}

	accs := make(map[int]*acc)
	for _, g := range t.GridResults {
		a := accs[g.DriverID]
		if a == nil {
			a = &acc{id: g.DriverID, name: g.DriverName}
			accs[g.DriverID] = a
		}
		a.gained += g.PositionsGained()
		a.rows++
	}

	list := make([]*acc, 0, len(accs))
	for _, a := range accs {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		avgI := float64(list[i].gained) / float64(list[i].rows)
		avgJ := float64(list[j].gained) / float64(list[j].rows)
		if avgI != avgJ {
			return avgI > avgJ
		}
		if list[i].name != list[j].name {
			return list[i].name < list[j].name
		}
		return list[i].id < list[j].id
	})

	out := table.New("driver_name", "average_positions_gained")
	for _, a := range list {
		out.Append(a.name, table.Average(float64(a.gained)/float64(a.rows)))
	}
	return out
}
