// Package render turns display-projected datasets into table blocks with
// icon headers, fixed column width fractions and alternating row banding.
package render

import (
	"deployment-report-service/internal/dataset"
	"deployment-report-service/internal/report"
	"deployment-report-service/pkg/logger"
)

// Config controls table geometry and typography
type Config struct {
	// UsableWidth is the printable page width in mm that column widths
	// must sum to.
	UsableWidth float64
	// IconSize is the square side of header icons in mm.
	IconSize float64
	FontSize float64
}

// DefaultConfig returns the geometry used for A4 portrait output
func DefaultConfig() *Config {
	return &Config{
		UsableWidth: 180,
		IconSize:    9,
		FontSize:    8,
	}
}

// widthFractions fixes the share of the usable width given to columns with
// special content; all other display columns split the remainder evenly.
var widthFractions = map[string]float64{
	dataset.ColOrderName: 0.25,
	dataset.ColStartTime: 0.08,
	dataset.ColEndTime:   0.08,
	dataset.ColSection:   0.11,
}

// Renderer builds report blocks for deployment tables
type Renderer struct {
	config *Config
	icons  IconResolver
	log    logger.Logger
}

// NewRenderer creates a renderer. A nil config selects DefaultConfig and a
// nil resolver disables icons entirely.
func NewRenderer(config *Config, icons IconResolver) *Renderer {
	if config == nil {
		config = DefaultConfig()
	}
	if icons == nil {
		icons = NoIcons{}
	}
	return &Renderer{
		config: config,
		icons:  icons,
		log:    logger.GetGlobalLogger().WithComponent("renderer"),
	}
}

// UnitSection renders one unit bucket: a bold section title kept together
// with the head of its table. A bucket whose display view carries no
// columns degrades to the title alone.
func (r *Renderer) UnitSection(title string, display *dataset.Dataset, displayColumns []string) []report.Block {
	heading := &report.Paragraph{
		Text: title,
		Style: report.TextStyle{
			FontSize:  12,
			Bold:      true,
			Align:     report.AlignLeft,
			TextColor: report.ColorNavy,
		},
		SpaceBefore: 6,
		SpaceAfter:  3,
	}

	if len(displayColumns) == 0 {
		r.log.WithField("section", title).Warn("no displayable columns, emitting title only")
		return []report.Block{heading}
	}

	table := r.buildTable(display, displayColumns)
	return []report.Block{
		&report.KeepTogether{Blocks: []report.Block{heading, table}},
		&report.Spacer{Height: 4},
	}
}

// FlatSection renders the ungrouped report body under a single generic title
func (r *Renderer) FlatSection(display *dataset.Dataset, displayColumns []string) []report.Block {
	return r.UnitSection("Despliegues Operativos", display, displayColumns)
}

func (r *Renderer) buildTable(display *dataset.Dataset, displayColumns []string) *report.Table {
	header := make([]report.HeaderCell, len(displayColumns))
	for i, col := range displayColumns {
		header[i] = r.headerCell(col)
	}

	rows := make([][]report.Cell, 0, display.Len())
	for i := 0; i < display.Len(); i++ {
		row := make([]report.Cell, len(displayColumns))
		for j, col := range displayColumns {
			val, _ := display.Value(i, col)
			align := report.AlignCenter
			if j == 0 {
				align = report.AlignLeft
			}
			row[j] = report.Cell{Text: val.Text(), Align: align}
		}
		rows = append(rows, row)
	}

	return &report.Table{
		Header:       header,
		Rows:         rows,
		ColWidths:    r.columnWidths(displayColumns),
		RepeatHeader: true,
		MinRowLines:  2,
		Style: report.TableStyle{
			HeaderFill: report.ColorNavy,
			HeaderText: report.ColorWhite,
			BandFill:   report.ColorLightGrey,
			FontSize:   r.config.FontSize,
			IconSize:   r.config.IconSize,
			HeaderBold: true,
			Banded:     true,
		},
	}
}

// headerCell resolves a column's icon, falling back to its short text name
// and finally to the column name itself.
func (r *Renderer) headerCell(col string) report.HeaderCell {
	if name, ok := iconNames[col]; ok {
		if png, found := r.icons.Resolve(name); found {
			return report.HeaderCell{Icon: png}
		}
	}
	if short, ok := shortHeaders[col]; ok {
		return report.HeaderCell{Text: short}
	}
	return report.HeaderCell{Text: col}
}

// columnWidths converts the width fractions into absolute millimetres over
// the columns actually present. Columns without a fixed fraction split the
// residual evenly; when every present column is fixed the fractions are
// rescaled to fill the page.
func (r *Renderer) columnWidths(displayColumns []string) []float64 {
	fixed := 0.0
	free := 0
	for _, col := range displayColumns {
		if f, ok := widthFractions[col]; ok {
			fixed += f
		} else {
			free++
		}
	}

	widths := make([]float64, len(displayColumns))
	if free == 0 {
		if fixed == 0 {
			return widths
		}
		scale := r.config.UsableWidth / fixed
		for i, col := range displayColumns {
			widths[i] = widthFractions[col] * scale
		}
		return widths
	}

	residual := (1.0 - fixed) / float64(free)
	for i, col := range displayColumns {
		if f, ok := widthFractions[col]; ok {
			widths[i] = f * r.config.UsableWidth
		} else {
			widths[i] = residual * r.config.UsableWidth
		}
	}
	return widths
}
