// Package partition derives the display projection of a reconciled dataset
// and splits it into per-category buckets for the grouped report mode.
package partition

import (
	"strings"

	"deployment-report-service/internal/classifier"
	"deployment-report-service/internal/dataset"
	"deployment-report-service/pkg/logger"
)

// DisplayColumns is the fixed wishlist of columns destined for the printed
// table, in print order. The actual display set is the ordered intersection
// of this list with the columns present.
func DisplayColumns() []string {
	return []string{
		dataset.ColOrderName,
		dataset.ColVehicles,
		dataset.ColSubOfficers,
		dataset.ColMotorcycles,
		dataset.ColMounted,
		dataset.ColPersonnelOnFoot,
		dataset.ColShockPosted,
		dataset.ColPersonnelTotal,
		dataset.ColStartTime,
		dataset.ColEndTime,
		dataset.ColSection,
	}
}

// Partitioner prepares display projections and per-category buckets
type Partitioner struct {
	table    *classifier.Table
	wishlist []string
	log      logger.Logger
}

// NewPartitioner creates a partitioner over the given classification table
// and display wishlist (nil selects the defaults).
func NewPartitioner(table *classifier.Table, wishlist []string) *Partitioner {
	if table == nil {
		table = classifier.DefaultTable()
	}
	if wishlist == nil {
		wishlist = DisplayColumns()
	}
	return &Partitioner{
		table:    table,
		wishlist: wishlist,
		log:      logger.GetGlobalLogger().WithComponent("partitioner"),
	}
}

// Prepare derives the complete and display views of a dataset.
//
// When both the operative-type and operative-name columns exist, the order
// name column is rewritten to their space-joined combination (falling back
// to whichever is non-empty, then to the original order name); the original
// value is preserved under a derived column. The display view is the
// row-aligned projection over the wishlist intersection.
//
// An empty or nil input returns empty views and a nil column list; it never
// fails.
func (p *Partitioner) Prepare(ds *dataset.Dataset) (complete, display *dataset.Dataset, displayColumns []string) {
	if ds == nil {
		empty := dataset.New(nil)
		return empty, empty.Select(nil), nil
	}

	complete = ds.Clone()
	p.combineOperativeColumns(complete)

	for _, col := range p.wishlist {
		if complete.HasColumn(col) {
			displayColumns = append(displayColumns, col)
		}
	}

	display = complete.Select(displayColumns)
	return complete, display, displayColumns
}

// combineOperativeColumns rewrites the order-name column in place on the
// (already cloned) complete view.
func (p *Partitioner) combineOperativeColumns(ds *dataset.Dataset) {
	hasType := ds.HasColumn(dataset.ColOperativeType)
	hasName := ds.HasColumn(dataset.ColOperativeName)
	if !hasType || !hasName || !ds.HasColumn(dataset.ColOrderName) {
		return
	}

	original := make([]dataset.Value, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		orig, _ := ds.Value(i, dataset.ColOrderName)
		original[i] = orig

		opType, _ := ds.Value(i, dataset.ColOperativeType)
		opName, _ := ds.Value(i, dataset.ColOperativeName)

		var combined string
		switch {
		case !opType.IsEmpty() && !opName.IsEmpty():
			combined = strings.TrimSpace(opType.Text()) + " " + strings.TrimSpace(opName.Text())
		case !opType.IsEmpty():
			combined = strings.TrimSpace(opType.Text())
		case !opName.IsEmpty():
			combined = strings.TrimSpace(opName.Text())
		default:
			continue
		}
		ds.SetValue(i, dataset.ColOrderName, dataset.String(combined))
	}

	if err := ds.AppendColumn(dataset.ColOriginalOrderName, original); err != nil {
		p.log.WithError(err).Debug("could not preserve original order name column")
	}
}

// ByCategory splits the display view into per-category buckets.
//
// Rows are classified by the unit column of the complete view. Buckets keep
// original row order; categories with no rows are omitted entirely. The two
// views normally share a row count; if they diverge (a defensive condition)
// both are truncated to the shorter length and the mismatch is logged.
// A missing unit column or malformed input yields an empty map.
func (p *Partitioner) ByCategory(complete, display *dataset.Dataset) map[classifier.Category]*dataset.Dataset {
	buckets := make(map[classifier.Category]*dataset.Dataset)
	if complete == nil || display == nil || !complete.HasColumn(dataset.ColUnit) {
		return buckets
	}

	n := complete.Len()
	if display.Len() != n {
		if display.Len() < n {
			n = display.Len()
		}
		p.log.WithFields(logger.Fields{
			"complete_rows": complete.Len(),
			"display_rows":  display.Len(),
			"kept_rows":     n,
		}).Warn("Complete and display views diverge in row count; truncating to the shorter")
	}

	indicesByCategory := make(map[classifier.Category][]int)
	unmatched := 0
	for i := 0; i < n; i++ {
		unit, _ := complete.Value(i, dataset.ColUnit)
		label := unit.Text()
		cat := p.table.Classify(label)
		if cat == classifier.CategoryOther && !p.table.IsKnown(label) {
			unmatched++
		}
		indicesByCategory[cat] = append(indicesByCategory[cat], i)
	}
	if unmatched > 0 {
		p.log.WithField("rows", unmatched).Debug("Unit labels outside the lookup table fell into the catch-all bucket")
	}

	for _, cat := range p.table.Order() {
		indices := indicesByCategory[cat]
		if len(indices) == 0 {
			continue
		}
		buckets[cat] = display.FilterRows(indices)
	}
	return buckets
}
