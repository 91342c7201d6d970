package dataset

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValue_Text(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"string", String("GEO"), "GEO"},
		{"int", Int(42), "42"},
		{"zero int", Int(0), "0"},
		{"decimal", Decimal(decimal.NewFromFloat(0.85)), "0.85"},
		{"empty string", String(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Text(); got != tt.expected {
				t.Errorf("Text() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValue_Int(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected int64
	}{
		{"int passthrough", Int(7), 7},
		{"numeric string", String("12"), 12},
		{"float string truncated", String("12.0"), 12},
		{"garbage string", String("N/A"), 0},
		{"empty string", String(""), 0},
		{"decimal truncated", Decimal(decimal.NewFromFloat(3.9)), 3},
		{"padded string", String(" 5 "), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Int(); got != tt.expected {
				t.Errorf("Int() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestValue_Decimal(t *testing.T) {
	if got := String("0.5").Decimal(); !got.Equal(decimal.NewFromFloat(0.5)) {
		t.Errorf("Decimal() = %s, want 0.5", got)
	}
	if got := String("junk").Decimal(); !got.IsZero() {
		t.Errorf("Decimal() of garbage = %s, want 0", got)
	}
	if got := Int(3).Decimal(); !got.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Decimal() = %s, want 3", got)
	}
}

func TestValue_IsEmpty(t *testing.T) {
	if !String("").IsEmpty() {
		t.Error("empty string should be empty")
	}
	if !String("  ").IsEmpty() {
		t.Error("whitespace string should be empty")
	}
	if String("x").IsEmpty() {
		t.Error("non-empty string should not be empty")
	}
	if Int(0).IsEmpty() {
		t.Error("numeric zero is a value, not empty")
	}
}

func TestNew_DeduplicatesColumns(t *testing.T) {
	d := New([]string{"A", "B", "A"})
	if d.NumColumns() != 2 {
		t.Errorf("NumColumns() = %d, want 2", d.NumColumns())
	}
}

func TestFromRecords_PadsAndTruncates(t *testing.T) {
	d := FromRecords([]string{"A", "B", "C"}, [][]string{
		{"1", "2", "3", "overflow"},
		{"4"},
	})

	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}
	if v, _ := d.Value(0, "C"); v.Text() != "3" {
		t.Errorf("row 0 C = %q, want '3'", v.Text())
	}
	if v, _ := d.Value(1, "B"); v.Text() != "" {
		t.Errorf("short record should pad with empty, got %q", v.Text())
	}
}

func TestDataset_Select(t *testing.T) {
	d := FromRecords([]string{"A", "B", "C"}, [][]string{
		{"a1", "b1", "c1"},
		{"a2", "b2", "c2"},
	})

	t.Run("preserves requested order", func(t *testing.T) {
		p := d.Select([]string{"C", "A"})
		cols := p.Columns()
		if len(cols) != 2 || cols[0] != "C" || cols[1] != "A" {
			t.Errorf("Columns() = %v, want [C A]", cols)
		}
		if v, _ := p.Value(1, "C"); v.Text() != "c2" {
			t.Errorf("projected value = %q, want 'c2'", v.Text())
		}
	})

	t.Run("skips unknown columns", func(t *testing.T) {
		p := d.Select([]string{"A", "MISSING"})
		if p.NumColumns() != 1 {
			t.Errorf("NumColumns() = %d, want 1", p.NumColumns())
		}
	})

	t.Run("zero known columns keeps row count", func(t *testing.T) {
		p := d.Select([]string{"X", "Y"})
		if p.NumColumns() != 0 {
			t.Errorf("NumColumns() = %d, want 0", p.NumColumns())
		}
		if p.Len() != d.Len() {
			t.Errorf("Len() = %d, want %d (row alignment must survive)", p.Len(), d.Len())
		}
	})
}

func TestDataset_FilterRows(t *testing.T) {
	d := FromRecords([]string{"A"}, [][]string{{"r0"}, {"r1"}, {"r2"}})

	f := d.FilterRows([]int{2, 0, 99})
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (out-of-range skipped)", f.Len())
	}
	if v, _ := f.Value(0, "A"); v.Text() != "r2" {
		t.Errorf("row 0 = %q, want 'r2' (given order preserved)", v.Text())
	}
}

func TestDataset_AppendColumn(t *testing.T) {
	d := FromRecords([]string{"A"}, [][]string{{"x"}, {"y"}})

	if err := d.AppendColumn("B", []Value{Int(1), Int(2)}); err != nil {
		t.Fatalf("AppendColumn() error = %v", err)
	}
	if v, _ := d.Value(1, "B"); v.Int() != 2 {
		t.Errorf("B[1] = %d, want 2", v.Int())
	}

	if err := d.AppendColumn("B", nil); err == nil {
		t.Error("duplicate column should error")
	}
	if err := d.AppendColumn("C", []Value{Int(1)}); err == nil {
		t.Error("length mismatch should error")
	}
	if err := d.AppendColumn("D", nil); err != nil {
		t.Errorf("nil values should default, got error %v", err)
	}
	if v, _ := d.Value(0, "D"); !v.IsEmpty() {
		t.Errorf("defaulted column should be empty, got %q", v.Text())
	}
}

func TestDataset_CloneIsDeep(t *testing.T) {
	d := FromRecords([]string{"A"}, [][]string{{"orig"}})
	c := d.Clone()
	c.SetValue(0, "A", String("changed"))

	if v, _ := d.Value(0, "A"); v.Text() != "orig" {
		t.Errorf("clone mutation leaked into original: %q", v.Text())
	}
}
