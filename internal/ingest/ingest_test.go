package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"deployment-report-service/internal/dataset"
	apperrors "deployment-report-service/pkg/errors"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  UNIDAD ", "UNIDAD"},
		{"Número Orden", "NÚMERO ORDEN"},
		{"MÓVILES", "MOVILES"},
		{"Matrícula 1", "MATRÍCULA 1"},
		{"hora inicio", "HORA INICIO"},
		{"SECC.", "SECC."},
	}
	for _, tt := range tests {
		if got := NormalizeHeader(tt.in); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveHeaders(t *testing.T) {
	got := resolveHeaders([]string{" unidad ", "MÓVILES", "ALGO PROPIO"})
	want := []string{"UNIDAD", "MOVILES", "ALGO PROPIO"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("header %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func canonicalCSV(sep string) string {
	header := strings.Join(dataset.CanonicalColumns(), sep)
	row := make([]string, len(dataset.CanonicalColumns()))
	row[0] = "GEO"
	return header + "\n" + strings.Join(row, sep) + "\n"
}

func TestLoadCSVDetectsSeparator(t *testing.T) {
	l := NewLoader()

	tests := []struct {
		name string
		sep  string
	}{
		{"comma", ","},
		{"tab", "\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := l.LoadCSV(strings.NewReader(canonicalCSV(tt.sep)), 0)
			if err != nil {
				t.Fatalf("LoadCSV failed: %v", err)
			}
			if ds.Len() != 1 {
				t.Fatalf("got %d rows, want 1", ds.Len())
			}
			unit, _ := ds.Value(0, dataset.ColUnit)
			if unit.Text() != "GEO" {
				t.Errorf("unit = %q, want GEO", unit.Text())
			}
		})
	}
}

func TestLoadCSVMissingColumns(t *testing.T) {
	l := NewLoader()

	_, err := l.LoadCSV(strings.NewReader("UNIDAD,MOVILES\nGEO,2\n"), 0)
	if err == nil {
		t.Fatal("expected structural failure")
	}
	if !apperrors.IsCode(err, apperrors.CodeMissingStructure) {
		t.Errorf("error = %v, want missing structure code", err)
	}
}

func TestLoadCSVEmpty(t *testing.T) {
	l := NewLoader()
	if _, err := l.LoadCSV(strings.NewReader(""), 0); !apperrors.IsCode(err, apperrors.CodeEmptyDataset) {
		t.Errorf("error = %v, want empty dataset code", err)
	}
}

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) *bytes.Reader {
	t.Helper()
	wb := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := wb.SetSheetName(wb.GetSheetName(0), name); err != nil {
				t.Fatal(err)
			}
			first = false
		} else {
			if _, err := wb.NewSheet(name); err != nil {
				t.Fatal(err)
			}
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := wb.SetSheetRow(name, cell, &row); err != nil {
				t.Fatal(err)
			}
		}
	}
	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

func canonicalSheet() [][]interface{} {
	cols := dataset.CanonicalColumns()
	header := make([]interface{}, len(cols))
	row := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
		row[i] = ""
	}
	row[0] = "GEO"
	return [][]interface{}{header, row}
}

func TestLoadExcelPrefersOperativesSheet(t *testing.T) {
	l := NewLoader()
	r := writeWorkbook(t, map[string][][]interface{}{
		OperativesSheet: canonicalSheet(),
	})

	ds, err := l.LoadExcel(r, "")
	if err != nil {
		t.Fatalf("LoadExcel failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("got %d rows, want 1", ds.Len())
	}
	unit, _ := ds.Value(0, dataset.ColUnit)
	if unit.Text() != "GEO" {
		t.Errorf("unit = %q, want GEO", unit.Text())
	}
}

func TestLoadExcelDaySheetAddsDayColumn(t *testing.T) {
	l := NewLoader()
	r := writeWorkbook(t, map[string][][]interface{}{
		"05": {
			{"UNIDAD", "MOVILES"},
			{"GEO", "2"},
		},
	})

	// day sheets skip structural validation
	ds, err := l.LoadExcel(r, "05")
	if err != nil {
		t.Fatalf("LoadExcel failed: %v", err)
	}
	if !ds.HasColumn(ColDay) {
		t.Fatal("day column not attached")
	}
	day, _ := ds.Value(0, ColDay)
	if day.Int() != 5 {
		t.Errorf("day = %d, want 5", day.Int())
	}
}

func TestLoadExcelUnknownSheet(t *testing.T) {
	l := NewLoader()
	r := writeWorkbook(t, map[string][][]interface{}{
		OperativesSheet: canonicalSheet(),
	})

	if _, err := l.LoadExcel(r, "NO EXISTE"); !apperrors.IsCode(err, apperrors.CodeSheetNotFound) {
		t.Errorf("error = %v, want sheet not found", err)
	}
}

func TestDaySheet(t *testing.T) {
	tests := []struct {
		name string
		day  int
		ok   bool
	}{
		{"01", 1, true},
		{"31", 31, true},
		{"32", 0, false},
		{"00", 0, false},
		{"1", 0, false},
		{"OPERATIVOS", 0, false},
	}
	for _, tt := range tests {
		day, ok := daySheet(tt.name)
		if day != tt.day || ok != tt.ok {
			t.Errorf("daySheet(%q) = (%d, %v), want (%d, %v)", tt.name, day, ok, tt.day, tt.ok)
		}
	}
}
