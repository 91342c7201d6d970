// Package assembler orchestrates the report pipeline: reconciliation,
// partitioning, table rendering and aggregation, selected by the caller's
// mode flags, producing the ordered block sequence the layout engine
// consumes.
package assembler

import (
	"fmt"
	"time"

	"deployment-report-service/internal/aggregate"
	"deployment-report-service/internal/classifier"
	"deployment-report-service/internal/dataset"
	"deployment-report-service/internal/partition"
	"deployment-report-service/internal/render"
	"deployment-report-service/internal/report"
	apperrors "deployment-report-service/pkg/errors"
	"deployment-report-service/pkg/logger"
)

// Options selects one of the three report modes. Compliance wins over
// GroupByUnit when both are set. Month and Year are display text for the
// compliance preamble only; zero values fall back to the current period.
type Options struct {
	GroupByUnit bool
	Compliance  bool
	Month       string
	Year        int
}

// Assembler builds the block sequence for one report invocation
type Assembler struct {
	reconciler  *dataset.Reconciler
	partitioner *partition.Partitioner
	renderer    *render.Renderer
	engine      *aggregate.Engine
	table       *classifier.Table
	now         func() time.Time
	log         logger.Logger
}

// New creates an assembler over the given table renderer. Nil collaborators
// select defaults; icon resolution is configured on the renderer.
func New(renderer *render.Renderer, table *classifier.Table) *Assembler {
	if table == nil {
		table = classifier.DefaultTable()
	}
	if renderer == nil {
		renderer = render.NewRenderer(nil, nil)
	}
	return &Assembler{
		reconciler:  dataset.NewReconciler(nil),
		partitioner: partition.NewPartitioner(table, nil),
		renderer:    renderer,
		engine:      aggregate.NewEngine(table),
		table:       table,
		now:         time.Now,
		log:         logger.GetGlobalLogger().WithComponent("assembler"),
	}
}

// Assemble turns a raw dataset into the ordered report blocks for the mode
// the options select. It fails only when the dataset has no rows; every
// other defect degrades to a smaller document.
func (a *Assembler) Assemble(raw *dataset.Dataset, opts Options) ([]report.Block, error) {
	if raw == nil || raw.Len() == 0 {
		return nil, apperrors.StructuralError(apperrors.CodeEmptyDataset, "no rows")
	}

	// The downgrade check must look at the raw columns: reconciliation
	// would materialize an empty unit column and mask its absence.
	grouped := opts.GroupByUnit
	if grouped && !opts.Compliance && !raw.HasColumn(dataset.ColUnit) {
		a.log.WithField("column", dataset.ColUnit).Warn("unit column absent, downgrading grouped report to flat")
		grouped = false
	}

	ds, err := a.reconciler.Reconcile(raw)
	if err != nil {
		return nil, err
	}

	switch {
	case opts.Compliance:
		return a.assembleCompliance(ds, opts), nil
	case grouped:
		return a.assembleGrouped(ds), nil
	default:
		return a.assembleFlat(ds), nil
	}
}

func (a *Assembler) assembleCompliance(ds *dataset.Dataset, opts Options) []report.Block {
	blocks := a.preamble(opts)
	return append(blocks, a.engine.Sections(ds)...)
}

func (a *Assembler) assembleGrouped(ds *dataset.Dataset) []report.Block {
	complete, display, displayColumns := a.partitioner.Prepare(ds)
	buckets := a.partitioner.ByCategory(complete, display)

	var blocks []report.Block
	for _, cat := range a.table.Order() {
		bucket, ok := buckets[cat]
		if !ok {
			continue
		}
		title := a.table.DisplayName(cat)
		blocks = append(blocks, a.renderer.UnitSection(title, bucket, displayColumns)...)
	}
	return blocks
}

func (a *Assembler) assembleFlat(ds *dataset.Dataset) []report.Block {
	_, display, displayColumns := a.partitioner.Prepare(ds)
	return a.renderer.FlatSection(display, displayColumns)
}

// preamble emits the compliance report title, the reporting period and the
// generation date.
func (a *Assembler) preamble(opts Options) []report.Block {
	now := a.now()

	month := opts.Month
	if month == "" {
		month = report.MonthName(int(now.Month()))
	}
	year := opts.Year
	if year == 0 {
		year = now.Year()
	}

	return []report.Block{
		&report.Paragraph{
			Text: "REPORTE DE CUMPLIMIENTO DE SERVICIOS",
			Style: report.TextStyle{
				FontSize:  16,
				Bold:      true,
				Align:     report.AlignCenter,
				TextColor: report.ColorGold,
			},
			SpaceAfter: 5,
		},
		&report.Paragraph{
			Text:  fmt.Sprintf("Periodo: %s %d", month, year),
			Style: report.TextStyle{FontSize: 10, Align: report.AlignLeft, TextColor: report.ColorBlack},
		},
		&report.Paragraph{
			Text:       fmt.Sprintf("Fecha de generación: %s", report.FormatDate(now)),
			Style:      report.TextStyle{FontSize: 10, Align: report.AlignLeft, TextColor: report.ColorBlack},
			SpaceAfter: 5,
		},
	}
}
