package aggregate

import (
	"fmt"
	"strconv"

	"deployment-report-service/internal/dataset"
	"deployment-report-service/internal/report"
	apperrors "deployment-report-service/pkg/errors"
)

// usableWidth is the printable width in mm the summary tables fill
const usableWidth = 180.0

// Sections builds the full compliance body in fixed order: general
// resume, per-unit analysis, per-operative-type analysis, temporal
// evolution. Sections whose grouping column is absent are skipped; an
// empty dataset collapses to a single informational paragraph.
func (e *Engine) Sections(ds *dataset.Dataset) []report.Block {
	if ds == nil || ds.Len() == 0 {
		return []report.Block{&report.Paragraph{
			Text:  "No hay datos disponibles para generar el reporte.",
			Style: report.TextStyle{FontSize: 10, Align: report.AlignLeft, TextColor: report.ColorBlack},
		}}
	}

	var blocks []report.Block
	blocks = append(blocks, e.ResumeSection(ds)...)
	blocks = append(blocks, e.UnitSection(ds)...)
	blocks = append(blocks, e.OperativeTypeSection(ds)...)
	blocks = append(blocks, e.TemporalSection(ds)...)
	return blocks
}

// ResumeSection emits the report-wide totals table and up to three
// binary-split pie charts. A pie whose two values are both zero is
// skipped outright rather than drawn empty.
func (e *Engine) ResumeSection(ds *dataset.Dataset) []report.Block {
	blocks := []report.Block{
		sectionTitle("RESUMEN GENERAL"),
		&report.Spacer{Height: 3},
	}

	totalPersonnel := columnSum(ds, dataset.ColPersonnelTotal)
	totalVehicles := columnSum(ds, dataset.ColVehicles)
	totalMotos := columnSum(ds, dataset.ColMotorcycles)

	resume := &report.Table{
		Rows: [][]report.Cell{
			{{Text: "Total de Servicios", Align: report.AlignLeft}, {Text: strconv.Itoa(ds.Len()), Align: report.AlignCenter}},
			{{Text: "Total de Personal", Align: report.AlignLeft}, {Text: strconv.Itoa(totalPersonnel), Align: report.AlignCenter}},
			{{Text: "Total de Móviles", Align: report.AlignLeft}, {Text: strconv.Itoa(totalVehicles), Align: report.AlignCenter}},
			{{Text: "Total de Motos", Align: report.AlignLeft}, {Text: strconv.Itoa(totalMotos), Align: report.AlignCenter}},
		},
		ColWidths: []float64{usableWidth / 2, usableWidth / 2},
		Style: report.TableStyle{
			HeaderFill:  report.ColorGold,
			HeaderText:  report.ColorWhite,
			FontSize:    12,
			LabelColumn: true,
		},
	}
	blocks = append(blocks, resume, &report.Spacer{Height: 5})

	splits := []struct {
		title          string
		colA, colB     string
		labelA, labelB string
	}{
		{"Distribución de Personal", dataset.ColPersonnelInVehicle, dataset.ColPersonnelOnFoot, "En Móvil", "Pie Tierra"},
		{"Distribución por Tipo de Choque", dataset.ColShockPosted, dataset.ColShockAlert, "Choque Apostado", "Choque Alerta"},
		{"Distribución por Tipo GEO", dataset.ColGeoPosted, dataset.ColGeoAlert, "GEO Apostado", "GEO Alerta"},
	}
	for _, split := range splits {
		if !ds.HasColumn(split.colA) || !ds.HasColumn(split.colB) {
			continue
		}
		a := columnSum(ds, split.colA)
		b := columnSum(ds, split.colB)
		if a == 0 && b == 0 {
			continue
		}
		blocks = e.appendPie(blocks, split.title, []string{split.labelA, split.labelB}, []int{a, b})
	}
	return blocks
}

// UnitSection emits the per-unit summary table with its two bar charts
// and the service-share pie.
func (e *Engine) UnitSection(ds *dataset.Dataset) []report.Block {
	summary, ok := e.Summarize(ds, DimensionUnit)
	if !ok {
		return nil
	}

	blocks := []report.Block{
		sectionTitle("ANÁLISIS POR UNIDAD"),
		&report.Spacer{Height: 3},
		summaryTable(summary, "UNIDAD", nil),
		&report.Spacer{Height: 5},
	}

	labels, services, personnel := groupSeries(summary)
	blocks = e.appendBar(blocks, "Servicios por Unidad", labels, services)
	blocks = e.appendBar(blocks, "Personal por Unidad", labels, personnel)
	blocks = e.appendPie(blocks, "Distribución de Servicios por Unidad", labels, services)
	return blocks
}

// OperativeTypeSection emits the per-operative-type summary table and
// the service-share pie.
func (e *Engine) OperativeTypeSection(ds *dataset.Dataset) []report.Block {
	summary, ok := e.Summarize(ds, DimensionOperativeType)
	if !ok {
		return nil
	}

	blocks := []report.Block{
		sectionTitle("ANÁLISIS POR TIPO DE OPERATIVO"),
		&report.Spacer{Height: 3},
		summaryTable(summary, "TIPO OPERATIVO", nil),
		&report.Spacer{Height: 5},
	}

	labels, services, _ := groupSeries(summary)
	blocks = e.appendPie(blocks, "Distribución de Servicios por Tipo Operativo", labels, services)
	return blocks
}

// TemporalSection emits the per-date summary table and, when at least two
// distinct dates exist, the two evolution line charts. A single date still
// gets its table; one point is not charted.
func (e *Engine) TemporalSection(ds *dataset.Dataset) []report.Block {
	summary, ok := e.Summarize(ds, DimensionDate)
	if !ok {
		return nil
	}

	blocks := []report.Block{
		sectionTitle("EVOLUCIÓN TEMPORAL DE SERVICIOS"),
		&report.Spacer{Height: 3},
		summaryTable(summary, "FECHA", DisplayDate),
		&report.Spacer{Height: 5},
	}

	if summary.DistinctDates() < 2 {
		e.log.Debug("fewer than two distinct dates, skipping evolution charts")
		return blocks
	}

	labels, services, personnel := groupSeries(summary)
	for i, label := range labels {
		labels[i] = DisplayDate(label)
	}
	blocks = e.appendLine(blocks, "Evolución de Servicios por Fecha", labels, services)
	blocks = e.appendLine(blocks, "Evolución de Personal Asignado por Fecha", labels, personnel)
	return blocks
}

func (e *Engine) appendBar(blocks []report.Block, title string, labels []string, values []int) []report.Block {
	png, err := BarChart(title, labels, values)
	if err != nil {
		skipped := apperrors.Wrap(err, apperrors.CategoryData, apperrors.CodeSectionSkipped,
			fmt.Sprintf("chart %q skipped", title))
		e.log.WithError(skipped).WithField("chart", title).Warn("chart rendering failed, section continues without it")
		return blocks
	}
	return append(blocks,
		&report.Image{PNG: png, Width: ChartWidthMM, Height: ChartHeightMM},
		&report.Spacer{Height: 5},
	)
}

func (e *Engine) appendPie(blocks []report.Block, title string, labels []string, values []int) []report.Block {
	png, err := PieChart(title, labels, values)
	if err != nil {
		skipped := apperrors.Wrap(err, apperrors.CategoryData, apperrors.CodeSectionSkipped,
			fmt.Sprintf("chart %q skipped", title))
		e.log.WithError(skipped).WithField("chart", title).Warn("chart rendering failed, section continues without it")
		return blocks
	}
	return append(blocks,
		&report.Image{PNG: png, Width: ChartWidthMM, Height: ChartHeightMM},
		&report.Spacer{Height: 5},
	)
}

func (e *Engine) appendLine(blocks []report.Block, title string, labels []string, values []int) []report.Block {
	png, err := LineChart(title, labels, values)
	if err != nil {
		skipped := apperrors.Wrap(err, apperrors.CategoryData, apperrors.CodeSectionSkipped,
			fmt.Sprintf("chart %q skipped", title))
		e.log.WithError(skipped).WithField("chart", title).Warn("chart rendering failed, section continues without it")
		return blocks
	}
	return append(blocks,
		&report.Image{PNG: png, Width: ChartWidthMM, Height: ChartHeightMM},
		&report.Spacer{Height: 5},
	)
}

func sectionTitle(text string) *report.Paragraph {
	return &report.Paragraph{
		Text: text,
		Style: report.TextStyle{
			FontSize:  13,
			Bold:      true,
			Align:     report.AlignCenter,
			TextColor: report.ColorNavy,
		},
		SpaceBefore: 6,
		SpaceAfter:  2,
	}
}

// summaryTable lays out a summary as a five-column table with a shaded
// bold totals row. relabel, when non-nil, rewrites group labels for
// display (dates).
func summaryTable(summary *Summary, labelHeader string, relabel func(string) string) *report.Table {
	headers := []string{labelHeader, "SERVICIOS", "PERSONAL", "MÓVILES", "MOTOS"}
	header := make([]report.HeaderCell, len(headers))
	for i, h := range headers {
		header[i] = report.HeaderCell{Text: h}
	}

	rows := make([][]report.Cell, 0, len(summary.Groups)+1)
	for _, g := range summary.Groups {
		label := g.Label
		if relabel != nil {
			label = relabel(label)
		}
		rows = append(rows, groupRow(label, g))
	}
	rows = append(rows, groupRow(summary.Totals.Label, summary.Totals))

	labelWidth := usableWidth * 0.4
	measureWidth := (usableWidth - labelWidth) / 4
	return &report.Table{
		Header:       header,
		Rows:         rows,
		ColWidths:    []float64{labelWidth, measureWidth, measureWidth, measureWidth, measureWidth},
		RepeatHeader: true,
		Style: report.TableStyle{
			HeaderFill:   report.ColorGold,
			HeaderText:   report.ColorWhite,
			BandFill:     report.ColorLightGrey,
			FontSize:     10,
			HeaderBold:   true,
			TotalRowBold: true,
		},
	}
}

func groupRow(label string, g Group) []report.Cell {
	return []report.Cell{
		{Text: label, Align: report.AlignLeft},
		{Text: strconv.Itoa(g.Services), Align: report.AlignCenter},
		{Text: strconv.Itoa(g.Personnel), Align: report.AlignCenter},
		{Text: strconv.Itoa(g.Vehicles), Align: report.AlignCenter},
		{Text: strconv.Itoa(g.Motorcycles), Align: report.AlignCenter},
	}
}

// groupSeries splits a summary into parallel label/services/personnel
// slices for charting.
func groupSeries(summary *Summary) (labels []string, services, personnel []int) {
	for _, g := range summary.Groups {
		labels = append(labels, g.Label)
		services = append(services, g.Services)
		personnel = append(personnel, g.Personnel)
	}
	return labels, services, personnel
}

// columnSum adds a column across all rows with defensive re-coercion;
// an absent column sums to 0.
func columnSum(ds *dataset.Dataset, col string) int {
	if !ds.HasColumn(col) {
		return 0
	}
	sum := 0
	for i := 0; i < ds.Len(); i++ {
		sum += intAt(ds, i, col)
	}
	return sum
}
