// Package dataset provides the row/column data model shared by every stage
// of the report pipeline.
//
// A Dataset is an ordered sequence of rows over a fixed ordered column set.
// Cells hold a small tagged union (string, integer, decimal) because the
// deployment sheets genuinely mix free-text schedule fields with numeric
// resource counts. Datasets are treated as immutable after reconciliation:
// downstream stages derive new datasets (projections, partitions) instead of
// mutating existing ones in place.
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies the concrete type held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindDecimal
)

// Value is a tagged union over the three cell types found in deployment
// sheets.
type Value struct {
	kind Kind
	str  string
	num  int64
	dec  decimal.Decimal
}

// String creates a string-kind value
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int creates an integer-kind value
func Int(n int64) Value {
	return Value{kind: KindInt, num: n}
}

// Decimal creates a decimal-kind value
func Decimal(d decimal.Decimal) Value {
	return Value{kind: KindDecimal, dec: d}
}

// Kind returns the concrete type tag of the value
func (v Value) Kind() Kind {
	return v.kind
}

// Text renders the value for display
func (v Value) Text() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindDecimal:
		return v.dec.String()
	default:
		return v.str
	}
}

// Int returns the value as an integer, coercing best-effort: strings are
// parsed (non-parseable becomes 0), decimals are truncated.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt:
		return v.num
	case KindDecimal:
		return v.dec.IntPart()
	default:
		n, err := parseNumeric(v.str)
		if err != nil {
			return 0
		}
		return n
	}
}

// Decimal returns the value as a decimal, coercing best-effort
// (non-parseable strings become zero).
func (v Value) Decimal() decimal.Decimal {
	switch v.kind {
	case KindDecimal:
		return v.dec
	case KindInt:
		return decimal.NewFromInt(v.num)
	default:
		d, err := decimal.NewFromString(strings.TrimSpace(v.str))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}

// IsEmpty reports whether the value is the empty string (numeric values are
// never empty, zero included).
func (v Value) IsEmpty() bool {
	return v.kind == KindString && strings.TrimSpace(v.str) == ""
}

// Equal compares two values by kind and content
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.num == other.num
	case KindDecimal:
		return v.dec.Equal(other.dec)
	default:
		return v.str == other.str
	}
}

// parseNumeric parses an integer out of free text the way spreadsheet
// exports demand: plain integers first, then float forms truncated.
func parseNumeric(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

// Dataset is an ordered sequence of rows sharing an ordered column set.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty dataset with the given column set. Duplicate column
// names keep the first occurrence's position.
func New(columns []string) *Dataset {
	d := &Dataset{
		index: make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		if _, dup := d.index[col]; dup {
			continue
		}
		d.index[col] = len(d.columns)
		d.columns = append(d.columns, col)
	}
	return d
}

// FromRecords builds a dataset of string cells from a header row and data
// records, the shape ingestion produces. Short records are padded with empty
// strings and long records truncated so every row matches the header width.
func FromRecords(header []string, records [][]string) *Dataset {
	d := New(header)
	width := len(d.columns)
	for _, rec := range records {
		row := make([]Value, width)
		for i := 0; i < width; i++ {
			if i < len(rec) {
				row[i] = String(rec[i])
			} else {
				row[i] = String("")
			}
		}
		d.rows = append(d.rows, row)
	}
	return d
}

// Columns returns a copy of the ordered column names
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the dataset carries the named column
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.rows)
}

// NumColumns returns the number of columns
func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// AppendRow appends a row. The row must match the column count exactly.
func (d *Dataset) AppendRow(values []Value) error {
	if len(values) != len(d.columns) {
		return fmt.Errorf("row has %d values, dataset has %d columns", len(values), len(d.columns))
	}
	row := make([]Value, len(values))
	copy(row, values)
	d.rows = append(d.rows, row)
	return nil
}

// Value returns the cell at (row, column). The second return is false when
// the column does not exist or the row index is out of range.
func (d *Dataset) Value(row int, column string) (Value, bool) {
	ci, ok := d.index[column]
	if !ok || row < 0 || row >= len(d.rows) {
		return Value{}, false
	}
	return d.rows[row][ci], true
}

// SetValue replaces the cell at (row, column). Used only while deriving new
// datasets; reconciled datasets are not mutated.
func (d *Dataset) SetValue(row int, column string, v Value) bool {
	ci, ok := d.index[column]
	if !ok || row < 0 || row >= len(d.rows) {
		return false
	}
	d.rows[row][ci] = v
	return true
}

// AppendColumn adds a derived column. values must either match the row count
// or be nil, in which case every cell defaults to the empty string.
func (d *Dataset) AppendColumn(name string, values []Value) error {
	if d.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	if values != nil && len(values) != len(d.rows) {
		return fmt.Errorf("column %q has %d values, dataset has %d rows", name, len(values), len(d.rows))
	}
	d.index[name] = len(d.columns)
	d.columns = append(d.columns, name)
	for i := range d.rows {
		if values == nil {
			d.rows[i] = append(d.rows[i], String(""))
		} else {
			d.rows[i] = append(d.rows[i], values[i])
		}
	}
	return nil
}

// Select derives a row-aligned projection containing only the named columns,
// in the given order. Unknown columns are skipped. A projection over zero
// known columns still preserves the row count, so complete and display views
// stay index-aligned.
func (d *Dataset) Select(columns []string) *Dataset {
	var present []string
	for _, col := range columns {
		if d.HasColumn(col) {
			present = append(present, col)
		}
	}
	out := New(present)
	out.rows = make([][]Value, len(d.rows))
	for i := range d.rows {
		row := make([]Value, len(present))
		for j, col := range present {
			row[j] = d.rows[i][d.index[col]]
		}
		out.rows[i] = row
	}
	return out
}

// FilterRows derives a new dataset keeping only the rows whose indices are
// listed, in the given order.
func (d *Dataset) FilterRows(indices []int) *Dataset {
	out := New(d.columns)
	for _, i := range indices {
		if i < 0 || i >= len(d.rows) {
			continue
		}
		row := make([]Value, len(d.rows[i]))
		copy(row, d.rows[i])
		out.rows = append(out.rows, row)
	}
	return out
}

// Truncate derives a new dataset with at most n rows
func (d *Dataset) Truncate(n int) *Dataset {
	if n < 0 {
		n = 0
	}
	if n > len(d.rows) {
		n = len(d.rows)
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return d.FilterRows(indices)
}

// Clone returns a deep copy
func (d *Dataset) Clone() *Dataset {
	out := New(d.columns)
	out.rows = make([][]Value, len(d.rows))
	for i, row := range d.rows {
		cp := make([]Value, len(row))
		copy(cp, row)
		out.rows[i] = cp
	}
	return out
}

// Row returns a copy of row i's cells in column order
func (d *Dataset) Row(i int) []Value {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	out := make([]Value, len(d.rows[i]))
	copy(out, d.rows[i])
	return out
}
