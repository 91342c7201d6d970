// Package aggregate computes the grouped statistics behind the compliance
// report: per-dimension counts and resource sums, totals rows, and the
// charts that accompany each section.
package aggregate

import (
	"sort"
	"time"

	"deployment-report-service/internal/classifier"
	"deployment-report-service/internal/dataset"
	"deployment-report-service/pkg/logger"
)

// Dimension selects the grouping column of a summary
type Dimension string

const (
	DimensionUnit          Dimension = "unit"
	DimensionOrderType     Dimension = "order_type"
	DimensionOperativeType Dimension = "operative_type"
	DimensionDate          Dimension = "date"
)

// Column returns the dataset column a dimension groups by
func (d Dimension) Column() string {
	switch d {
	case DimensionUnit:
		return dataset.ColUnit
	case DimensionOrderType:
		return dataset.ColOrderType
	case DimensionOperativeType:
		return dataset.ColOperativeType
	case DimensionDate:
		return dataset.ColDate
	}
	return ""
}

// Group is one row of a summary table
type Group struct {
	Label       string
	Services    int
	Personnel   int
	Vehicles    int
	Motorcycles int
}

// add accumulates another group's measures, leaving the label alone
func (g *Group) add(other Group) {
	g.Services += other.Services
	g.Personnel += other.Personnel
	g.Vehicles += other.Vehicles
	g.Motorcycles += other.Motorcycles
}

// Summary is the grouped result for one dimension. Totals is the
// column-wise sum of Groups, never a recomputation from raw rows.
type Summary struct {
	Dimension Dimension
	Groups    []Group
	Totals    Group
}

// Engine groups datasets along the four compliance dimensions
type Engine struct {
	table *classifier.Table
	log   logger.Logger
}

// NewEngine creates an engine; a nil table selects the default
// classification table (used only to order the unit dimension).
func NewEngine(table *classifier.Table) *Engine {
	if table == nil {
		table = classifier.DefaultTable()
	}
	return &Engine{
		table: table,
		log:   logger.GetGlobalLogger().WithComponent("aggregate"),
	}
}

// Summarize groups ds by the dimension's column and computes per-group
// measures. The second return is false when the grouping column is absent
// or the dataset holds no rows; the affected section is skipped upstream.
//
// Measures re-coerce their source values defensively, so a dataset that
// skipped reconciliation still sums cleanly (non-numeric values count 0).
func (e *Engine) Summarize(ds *dataset.Dataset, dim Dimension) (*Summary, bool) {
	col := dim.Column()
	if ds == nil || col == "" || !ds.HasColumn(col) || ds.Len() == 0 {
		e.log.WithFields(logger.Fields{
			"dimension": string(dim),
			"column":    col,
		}).Debug("dimension not summarizable, skipping")
		return nil, false
	}

	index := make(map[string]int)
	var groups []Group
	for i := 0; i < ds.Len(); i++ {
		label, _ := ds.Value(i, col)
		key := label.Text()

		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, Group{Label: key})
		}

		groups[gi].Services++
		groups[gi].Personnel += intAt(ds, i, dataset.ColPersonnelTotal)
		groups[gi].Vehicles += intAt(ds, i, dataset.ColVehicles)
		groups[gi].Motorcycles += intAt(ds, i, dataset.ColMotorcycles)
	}

	e.orderGroups(groups, dim)

	summary := &Summary{Dimension: dim, Groups: groups, Totals: Group{Label: "TOTAL"}}
	for _, g := range groups {
		summary.Totals.add(g)
	}
	return summary, true
}

// intAt reads a cell as an int, substituting 0 for an absent column or a
// non-numeric value.
func intAt(ds *dataset.Dataset, row int, col string) int {
	val, ok := ds.Value(row, col)
	if !ok {
		return 0
	}
	return int(val.Int())
}

// orderGroups fixes group emission order per dimension: the unit dimension
// follows the classification table order, dates run chronologically, and
// everything else runs by descending service count with first-appearance
// ties. Sorts are stable so ties keep input (first-appearance) order.
func (e *Engine) orderGroups(groups []Group, dim Dimension) {
	switch dim {
	case DimensionUnit:
		rank := make(map[classifier.Category]int)
		for i, cat := range e.table.Order() {
			rank[cat] = i
		}
		sort.SliceStable(groups, func(i, j int) bool {
			return rank[e.table.Classify(groups[i].Label)] < rank[e.table.Classify(groups[j].Label)]
		})
	case DimensionDate:
		sort.SliceStable(groups, func(i, j int) bool {
			return dateSortKey(groups[i].Label) < dateSortKey(groups[j].Label)
		})
	default:
		sort.SliceStable(groups, func(i, j int) bool {
			return groups[i].Services > groups[j].Services
		})
	}
}

// dateLayouts are tried in order when sorting and reformatting date labels
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	time.RFC3339,
}

// dateSortKey normalizes a date label to a sortable form. Unparseable
// labels sort lexicographically after parseable ones.
func dateSortKey(label string) string {
	if t, ok := parseDate(label); ok {
		return t.Format("2006-01-02")
	}
	return "~" + label
}

func parseDate(label string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, label); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayDate renders a date label in day/month/year form, passing
// unparseable labels through unchanged.
func DisplayDate(label string) string {
	if t, ok := parseDate(label); ok {
		return t.Format("02/01/2006")
	}
	return label
}

// DistinctDates counts the distinct normalized date labels in a summary
func (s *Summary) DistinctDates() int {
	seen := make(map[string]struct{})
	for _, g := range s.Groups {
		seen[dateSortKey(g.Label)] = struct{}{}
	}
	return len(seen)
}
