// Package report defines the renderable block model produced by the table
// renderer, the aggregation engine and the document assembler, and consumed
// in emission order by the page layout engine.
//
// Blocks are opaque to their producers: ordering is significant and final,
// and every block is consumed exactly once.
package report

// Block is a renderable unit of document content
type Block interface {
	blockMarker()
}

// Alignment of text within a cell or paragraph
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Color is an RGB triple in the 0-255 range
type Color struct {
	R, G, B int
}

// Institutional palette shared by tables, titles and page decoration.
var (
	ColorNavy      = Color{0, 0, 128}
	ColorGold      = Color{204, 170, 51}
	ColorWhite     = Color{255, 255, 255}
	ColorBlack     = Color{0, 0, 0}
	ColorLightGrey = Color{211, 211, 211}
	ColorGrey      = Color{128, 128, 128}
)

// TextStyle describes how a run of text is drawn
type TextStyle struct {
	FontSize  float64
	Bold      bool
	Align     Alignment
	TextColor Color
}

// Paragraph is a styled run of text with optional vertical spacing around it
type Paragraph struct {
	Text        string
	Style       TextStyle
	SpaceBefore float64 // mm
	SpaceAfter  float64 // mm
}

func (*Paragraph) blockMarker() {}

// Spacer is fixed vertical whitespace
type Spacer struct {
	Height float64 // mm
}

func (*Spacer) blockMarker() {}

// HeaderCell is a table header cell: either an icon (PNG bytes, drawn at a
// fixed square size) or text. Icon cells keep a neutral background so the
// icon is not tinted by the header fill.
type HeaderCell struct {
	Text string
	Icon []byte // PNG; nil means text header
}

// Cell is a table body cell
type Cell struct {
	Text  string
	Align Alignment
}

// TableStyle captures the fixed visual treatment of a rendered table
type TableStyle struct {
	HeaderFill   Color
	HeaderText   Color
	BandFill     Color // alternating data row shading
	FontSize     float64
	IconSize     float64 // square icon side in mm for icon header cells
	HeaderBold   bool
	Banded       bool // alternate BandFill on data rows
	TotalRowBold bool // last row drawn bold with BandFill when set
	// LabelColumn draws the first column like a header cell (HeaderFill
	// background, HeaderText color, bold); used by label/value tables.
	LabelColumn bool
}

// Table is a paginated table block. ColWidths are absolute millimetres
// summing to the usable page width; the header row repeats on every page
// the table spans.
type Table struct {
	Header       []HeaderCell
	Rows         [][]Cell
	ColWidths    []float64
	Style        TableStyle
	RepeatHeader bool
	// MinRowLines forces short rows up to a minimum line height so
	// icon-only columns align with the text column.
	MinRowLines int
}

func (*Table) blockMarker() {}

// Image is a pre-rendered PNG (chart) drawn at a fixed size, centered
type Image struct {
	PNG    []byte
	Width  float64 // mm
	Height float64 // mm
}

func (*Image) blockMarker() {}

// KeepTogether binds its children into one atomic page-break unit: either
// they all start on the current page or the whole group moves to the next.
// The layout engine applies it to a title and the start of its table so a
// title is never orphaned.
type KeepTogether struct {
	Blocks []Block
}

func (*KeepTogether) blockMarker() {}
