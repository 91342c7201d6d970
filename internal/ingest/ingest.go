// Package ingest reads deployment spreadsheets into datasets: Excel
// workbooks with sheet discovery, CSV files with separator detection, and
// header resolution against the canonical column set.
package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"deployment-report-service/internal/dataset"
	apperrors "deployment-report-service/pkg/errors"
	"deployment-report-service/pkg/logger"
)

// OperativesSheet is the preferred workbook sheet; when absent the first
// sheet is read instead. Sheets named 01 through 31 are day sheets and
// get a derived day column.
const OperativesSheet = "OPERATIVOS"

// ColDay is the derived column day sheets carry
const ColDay = "DIA"

// Loader reads raw datasets from spreadsheet files
type Loader struct {
	log logger.Logger
}

func NewLoader() *Loader {
	return &Loader{log: logger.GetGlobalLogger().WithComponent("ingest")}
}

// LoadFile reads a dataset from path, dispatching on the extension.
// An empty sheet name triggers workbook sheet discovery.
func (l *Loader) LoadFile(path, sheet string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.FileError(apperrors.CodeFileNotFound, path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return l.LoadExcel(f, sheet)
	case ".csv", ".tsv", ".txt":
		return l.LoadCSV(f, 0)
	default:
		return nil, apperrors.FileError(apperrors.CodeFileCorrupted, path, nil)
	}
}

// LoadExcel reads one sheet of a workbook. When sheet is empty the
// operatives sheet is preferred, falling back to the first sheet. Day
// sheets get a derived day column and skip structural validation.
func (l *Loader) LoadExcel(r io.Reader, sheet string) (*dataset.Dataset, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.FileError(apperrors.CodeFileCorrupted, "workbook", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.FileError(apperrors.CodeSheetNotFound, "workbook", nil)
	}

	if sheet == "" {
		sheet = sheets[0]
		for _, name := range sheets {
			if name == OperativesSheet {
				sheet = name
				break
			}
		}
		l.log.WithField("sheet", sheet).Debug("discovered workbook sheet")
	} else if !containsSheet(sheets, sheet) {
		return nil, apperrors.FileError(apperrors.CodeSheetNotFound, sheet, nil).
			WithContext("available_sheets", strings.Join(sheets, ", "))
	}

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, apperrors.FileError(apperrors.CodeFileCorrupted, sheet, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.StructuralError(apperrors.CodeEmptyDataset, sheet)
	}

	ds := dataset.FromRecords(resolveHeaders(rows[0]), rows[1:])

	if day, ok := daySheet(sheet); ok {
		values := make([]dataset.Value, ds.Len())
		for i := range values {
			values[i] = dataset.Int(int64(day))
		}
		if err := ds.AppendColumn(ColDay, values); err != nil {
			l.log.WithError(err).Warn("could not attach day column")
		}
		return ds, nil
	}

	if err := Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadCSV reads a delimited file. A zero separator is detected from the
// first kilobyte: whichever of comma and tab occurs more often wins, with
// tab on ties.
func (l *Loader) LoadCSV(r io.Reader, sep rune) (*dataset.Dataset, error) {
	br := bufio.NewReader(r)
	if sep == 0 {
		sep = detectSeparator(br)
		l.log.WithField("separator", strconv.QuoteRune(sep)).Debug("detected separator")
	}

	reader := csv.NewReader(br)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.FileError(apperrors.CodeFileCorrupted, "delimited input", err)
	}
	if len(records) == 0 {
		return nil, apperrors.StructuralError(apperrors.CodeEmptyDataset, "no rows")
	}

	ds := dataset.FromRecords(resolveHeaders(records[0]), records[1:])
	if err := Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Validate checks every canonical column is present under header
// normalization, naming the missing ones.
func Validate(ds *dataset.Dataset) error {
	present := make(map[string]struct{})
	for _, col := range ds.Columns() {
		present[NormalizeHeader(col)] = struct{}{}
	}

	var missing []string
	for _, col := range dataset.CanonicalColumns() {
		if _, ok := present[NormalizeHeader(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return apperrors.StructuralError(apperrors.CodeMissingStructure,
			fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// NormalizeHeader strips the accent and case variations seen in source
// sheets so headers can be matched against the canonical names.
func NormalizeHeader(s string) string {
	replacer := strings.NewReplacer("Ó", "O", "ó", "o", "Á", "A", "á", "a")
	return strings.ToUpper(replacer.Replace(strings.TrimSpace(s)))
}

// resolveHeaders rewrites raw headers to their canonical spelling when
// the normalized forms match; unmatched headers pass through trimmed.
func resolveHeaders(raw []string) []string {
	canonical := make(map[string]string)
	for _, col := range dataset.CanonicalColumns() {
		canonical[NormalizeHeader(col)] = col
	}

	out := make([]string, len(raw))
	for i, h := range raw {
		if name, ok := canonical[NormalizeHeader(h)]; ok {
			out[i] = name
		} else {
			out[i] = strings.TrimSpace(h)
		}
	}
	return out
}

func detectSeparator(br *bufio.Reader) rune {
	head, _ := br.Peek(1024)
	if strings.Count(string(head), ",") > strings.Count(string(head), "\t") {
		return ','
	}
	return '\t'
}

func daySheet(name string) (int, bool) {
	if len(name) != 2 {
		return 0, false
	}
	day, err := strconv.Atoi(name)
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

func containsSheet(sheets []string, name string) bool {
	for _, s := range sheets {
		if s == name {
			return true
		}
	}
	return false
}
