package partition

import (
	"testing"

	"deployment-report-service/internal/classifier"
	"deployment-report-service/internal/dataset"
)

func sampleDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	raw := dataset.FromRecords(
		[]string{
			dataset.ColUnit, dataset.ColOrderName, dataset.ColOperativeType,
			dataset.ColOperativeName, dataset.ColVehicles, dataset.ColStartTime,
		},
		[][]string{
			{"DIRECCIÓN I", "Orden A", "Saturación", "Centro", "2", "08:00"},
			{"GEO", "Orden B", "", "Estadio", "1", "18:00"},
			{"UNKNOWN_X", "Orden C", "Patrullaje", "", "0", "07:30"},
		},
	)
	out, err := dataset.NewReconciler(nil).Reconcile(raw)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	return out
}

func TestPrepare_CombinesOperativeColumns(t *testing.T) {
	p := NewPartitioner(nil, nil)
	complete, display, _ := p.Prepare(sampleDataset(t))

	tests := []struct {
		row      int
		expected string
	}{
		{0, "Saturación Centro"}, // both present: space-joined
		{1, "Estadio"},           // only name
		{2, "Patrullaje"},        // only type
	}
	for _, tt := range tests {
		if v, _ := complete.Value(tt.row, dataset.ColOrderName); v.Text() != tt.expected {
			t.Errorf("complete order name row %d = %q, want %q", tt.row, v.Text(), tt.expected)
		}
		if v, _ := display.Value(tt.row, dataset.ColOrderName); v.Text() != tt.expected {
			t.Errorf("display order name row %d = %q, want %q", tt.row, v.Text(), tt.expected)
		}
	}

	// Original values survive under the derived column.
	if v, _ := complete.Value(0, dataset.ColOriginalOrderName); v.Text() != "Orden A" {
		t.Errorf("original order name = %q, want 'Orden A'", v.Text())
	}
}

func TestPrepare_FallsBackToOriginalOrderName(t *testing.T) {
	raw := dataset.FromRecords(
		[]string{dataset.ColOrderName, dataset.ColOperativeType, dataset.ColOperativeName},
		[][]string{{"Orden Z", "", ""}},
	)

	_, display, _ := NewPartitioner(nil, nil).Prepare(raw)
	if v, _ := display.Value(0, dataset.ColOrderName); v.Text() != "Orden Z" {
		t.Errorf("order name = %q, want fallback to 'Orden Z'", v.Text())
	}
}

func TestPrepare_DisplayColumnsAreWishlistIntersection(t *testing.T) {
	// 6 of the 11 wishlist columns present.
	raw := dataset.FromRecords(
		[]string{
			dataset.ColSection, dataset.ColOrderName, dataset.ColVehicles,
			dataset.ColMotorcycles, dataset.ColStartTime, dataset.ColEndTime,
			"EXTRA COLUMN",
		},
		[][]string{{"1", "Orden A", "2", "0", "08:00", "20:00", "x"}},
	)

	_, display, cols := NewPartitioner(nil, nil).Prepare(raw)

	expected := []string{
		dataset.ColOrderName, dataset.ColVehicles, dataset.ColMotorcycles,
		dataset.ColStartTime, dataset.ColEndTime, dataset.ColSection,
	}
	if len(cols) != len(expected) {
		t.Fatalf("displayColumns length = %d, want %d", len(cols), len(expected))
	}
	for i, want := range expected {
		if cols[i] != want {
			t.Errorf("displayColumns[%d] = %q, want %q (wishlist order, not input order)", i, cols[i], want)
		}
	}
	if display.NumColumns() != len(expected) {
		t.Errorf("display has %d columns, want %d", display.NumColumns(), len(expected))
	}
}

func TestPrepare_EmptyInput(t *testing.T) {
	p := NewPartitioner(nil, nil)

	complete, display, cols := p.Prepare(dataset.New(nil))
	if complete.Len() != 0 || display.Len() != 0 || len(cols) != 0 {
		t.Error("empty input should produce empty views and no columns")
	}

	complete, display, cols = p.Prepare(nil)
	if complete == nil || display == nil || cols != nil {
		t.Error("nil input should produce empty views, not nils")
	}
}

func TestPrepare_NoWishlistColumnsKeepsRowCount(t *testing.T) {
	raw := dataset.FromRecords([]string{"A", "B"}, [][]string{{"1", "2"}, {"3", "4"}})

	_, display, cols := NewPartitioner(nil, nil).Prepare(raw)
	if len(cols) != 0 {
		t.Errorf("cols = %v, want none", cols)
	}
	if display.Len() != 2 {
		t.Errorf("display rows = %d, want 2 (alignment invariant)", display.Len())
	}
}

func TestPrepare_AlignmentInvariant(t *testing.T) {
	complete, display, _ := NewPartitioner(nil, nil).Prepare(sampleDataset(t))
	if complete.Len() != display.Len() {
		t.Errorf("complete rows %d != display rows %d", complete.Len(), display.Len())
	}
}

func TestByCategory_CoverageAndDisjointness(t *testing.T) {
	p := NewPartitioner(nil, nil)
	complete, display, _ := p.Prepare(sampleDataset(t))

	buckets := p.ByCategory(complete, display)

	total := 0
	for _, bucket := range buckets {
		total += bucket.Len()
	}
	if total != display.Len() {
		t.Errorf("bucket rows sum to %d, want %d (coverage)", total, display.Len())
	}

	if len(buckets) != 3 {
		t.Errorf("bucket count = %d, want 3 (empty categories omitted)", len(buckets))
	}
	if _, ok := buckets[classifier.CategoryDirection2]; ok {
		t.Error("empty category must be omitted, not present as empty bucket")
	}
	if b, ok := buckets[classifier.CategoryOther]; !ok || b.Len() != 1 {
		t.Error("unknown unit should land in the catch-all bucket")
	}
}

func TestByCategory_MismatchedRowCountsTruncate(t *testing.T) {
	p := NewPartitioner(nil, nil)
	complete, display, _ := p.Prepare(sampleDataset(t))

	short := display.Truncate(2)
	buckets := p.ByCategory(complete, short)

	total := 0
	for _, bucket := range buckets {
		total += bucket.Len()
	}
	if total != 2 {
		t.Errorf("bucket rows sum to %d, want 2 after truncation", total)
	}
}

func TestByCategory_MissingUnitColumn(t *testing.T) {
	p := NewPartitioner(nil, nil)
	raw := dataset.FromRecords([]string{dataset.ColOrderName}, [][]string{{"Orden A"}})

	buckets := p.ByCategory(raw, raw.Select([]string{dataset.ColOrderName}))
	if len(buckets) != 0 {
		t.Errorf("buckets = %d, want 0 when unit column is absent", len(buckets))
	}

	if got := p.ByCategory(nil, nil); len(got) != 0 {
		t.Errorf("nil inputs should yield empty map, got %d entries", len(got))
	}
}
