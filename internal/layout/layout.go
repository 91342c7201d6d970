// Package layout paginates report blocks into the final PDF document:
// manual page breaks, keep-together groups, repeated table headers and the
// institutional page decoration drawn on every page.
package layout

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"deployment-report-service/internal/render"
	"deployment-report-service/internal/report"
	apperrors "deployment-report-service/pkg/errors"
	"deployment-report-service/pkg/logger"
)

// Config fixes page geometry. All values are millimetres on A4 portrait.
type Config struct {
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
	FontFamily   string
	// LogoName is the icon resolved for the page header; empty disables
	// the logo.
	LogoName string
	// FooterFormat receives the page number.
	FooterFormat string
	Title        string
	Subtitle     string
}

// DefaultConfig returns the institutional page setup
func DefaultConfig() *Config {
	return &Config{
		MarginLeft:   15,
		MarginRight:  15,
		MarginTop:    30,
		MarginBottom: 20,
		FontFamily:   "Helvetica",
		LogoName:     "logo-gr-dorado",
		FooterFormat: "Estado Mayor Policial - Página %d",
		Title:        "DIRECCIÓN NACIONAL GUARDIA REPUBLICANA",
		Subtitle:     "Estado Mayor Policial",
	}
}

// Validate checks the geometry leaves a usable content area
func (c *Config) Validate() error {
	if c.MarginLeft+c.MarginRight >= 210 {
		return apperrors.ConfigurationError(apperrors.CodeInvalidConfig, "horizontal margins", nil)
	}
	if c.MarginTop+c.MarginBottom >= 297 {
		return apperrors.ConfigurationError(apperrors.CodeInvalidConfig, "vertical margins", nil)
	}
	if c.FontFamily == "" {
		return apperrors.ConfigurationError(apperrors.CodeMissingConfig, "font family", nil)
	}
	return nil
}

const (
	lineHeight  = 4.5 // mm per text line inside table cells
	cellPadding = 1.0 // mm horizontal inset inside table cells
)

// Engine lays out block sequences into PDF bytes
type Engine struct {
	config *Config
	icons  render.IconResolver
	now    func() time.Time
	log    logger.Logger
}

// NewEngine creates a layout engine. A nil config selects DefaultConfig;
// a nil resolver drops the header logo.
func NewEngine(config *Config, icons render.IconResolver) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	if icons == nil {
		icons = render.NoIcons{}
	}
	return &Engine{
		config: config,
		icons:  icons,
		now:    time.Now,
		log:    logger.GetGlobalLogger().WithComponent("layout"),
	}
}

// Render paginates the blocks into a single PDF, returned in memory.
// Blocks are consumed in order; page decoration is applied uniformly.
func (e *Engine) Render(blocks []report.Block) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	st := &state{
		engine: e,
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}

	pdf.SetMargins(e.config.MarginLeft, e.config.MarginTop, e.config.MarginRight)
	pdf.SetAutoPageBreak(false, e.config.MarginBottom)
	pdf.SetHeaderFunc(func() { st.pageHeader() })
	pdf.SetFooterFunc(func() { st.pageFooter() })
	pdf.AddPage()

	for _, block := range blocks {
		st.renderBlock(block)
	}

	if pdf.Err() {
		return nil, apperrors.Wrap(pdf.Error(), apperrors.CategoryInternal,
			apperrors.CodeRenderFailed, "document layout failed")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryInternal,
			apperrors.CodeRenderFailed, "writing document")
	}
	return buf.Bytes(), nil
}

// state carries per-document mutable layout state
type state struct {
	engine *Engine
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	imgSeq int
}

func (s *state) usableWidth() float64 {
	w, _ := s.pdf.GetPageSize()
	return w - s.engine.config.MarginLeft - s.engine.config.MarginRight
}

func (s *state) bottomY() float64 {
	_, h := s.pdf.GetPageSize()
	return h - s.engine.config.MarginBottom
}

// ensureSpace breaks the page when fewer than h millimetres remain
func (s *state) ensureSpace(h float64) {
	if s.pdf.GetY()+h > s.bottomY() {
		s.pdf.AddPage()
	}
}

func (s *state) renderBlock(block report.Block) {
	switch b := block.(type) {
	case *report.Paragraph:
		s.renderParagraph(b)
	case *report.Spacer:
		s.ensureSpace(b.Height)
		s.pdf.Ln(b.Height)
	case *report.Table:
		s.renderTable(b)
	case *report.Image:
		s.renderImage(b)
	case *report.KeepTogether:
		s.renderKeepTogether(b)
	default:
		s.engine.log.WithField("block", fmt.Sprintf("%T", block)).Warn("unknown block type skipped")
	}
}

func (s *state) renderParagraph(p *report.Paragraph) {
	h := s.paragraphHeight(p)
	s.ensureSpace(h)

	if p.SpaceBefore > 0 {
		s.pdf.Ln(p.SpaceBefore)
	}
	s.setFont(p.Style.FontSize, p.Style.Bold)
	s.pdf.SetTextColor(p.Style.TextColor.R, p.Style.TextColor.G, p.Style.TextColor.B)
	s.pdf.SetX(s.engine.config.MarginLeft)
	s.pdf.MultiCell(s.usableWidth(), p.Style.FontSize*0.5, s.tr(p.Text), "", alignString(p.Style.Align), false)
	if p.SpaceAfter > 0 {
		s.pdf.Ln(p.SpaceAfter)
	}
}

func (s *state) paragraphHeight(p *report.Paragraph) float64 {
	s.setFont(p.Style.FontSize, p.Style.Bold)
	lines := s.wrapText(p.Text, s.usableWidth())
	return p.SpaceBefore + float64(len(lines))*p.Style.FontSize*0.5 + p.SpaceAfter
}

func (s *state) renderImage(img *report.Image) {
	if len(img.PNG) == 0 {
		return
	}
	s.ensureSpace(img.Height)

	s.imgSeq++
	name := fmt.Sprintf("img-%d", s.imgSeq)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.PNG))

	x := s.engine.config.MarginLeft + (s.usableWidth()-img.Width)/2
	y := s.pdf.GetY()
	s.pdf.ImageOptions(name, x, y, img.Width, img.Height, false, opts, 0, "")
	s.pdf.SetY(y + img.Height)
}

// renderKeepTogether breaks the page up front when the group's lead-in
// cannot start on the current page. A group longer than a whole page
// still breaks mid-table; only the lead-in (everything up to and
// including a table's first data row) is atomic.
func (s *state) renderKeepTogether(kt *report.KeepTogether) {
	s.ensureSpace(s.leadInHeight(kt.Blocks))
	for _, b := range kt.Blocks {
		s.renderBlock(b)
	}
}

// leadInHeight sums child heights until (and including) the first table's
// header plus one data row.
func (s *state) leadInHeight(blocks []report.Block) float64 {
	h := 0.0
	for _, b := range blocks {
		switch blk := b.(type) {
		case *report.Paragraph:
			h += s.paragraphHeight(blk)
		case *report.Spacer:
			h += blk.Height
		case *report.Image:
			h += blk.Height
		case *report.Table:
			h += s.headerHeight(blk)
			if len(blk.Rows) > 0 {
				h += s.rowHeight(blk, blk.Rows[0], false)
			}
			return h
		}
	}
	return h
}

func (s *state) renderTable(t *report.Table) {
	if len(t.Rows) == 0 && len(t.Header) == 0 {
		return
	}

	s.ensureSpace(s.headerHeight(t) + firstRowHeight(s, t))
	s.drawTableHeader(t)

	for i, row := range t.Rows {
		totals := t.Style.TotalRowBold && i == len(t.Rows)-1
		h := s.rowHeight(t, row, totals)
		if s.pdf.GetY()+h > s.bottomY() {
			s.pdf.AddPage()
			if t.RepeatHeader {
				s.drawTableHeader(t)
			}
		}
		s.drawRow(t, row, h, i, totals)
	}
}

func firstRowHeight(s *state, t *report.Table) float64 {
	if len(t.Rows) == 0 {
		return 0
	}
	return s.rowHeight(t, t.Rows[0], false)
}

// headerHeight is the taller of the icon box and the wrapped header texts
func (s *state) headerHeight(t *report.Table) float64 {
	if len(t.Header) == 0 {
		return 0
	}
	h := 0.0
	hasIcon := false
	s.setFont(t.Style.FontSize, t.Style.HeaderBold)
	for i, cell := range t.Header {
		if cell.Icon != nil {
			hasIcon = true
			continue
		}
		lines := s.wrapText(cell.Text, t.ColWidths[i]-2*cellPadding)
		if lh := float64(len(lines)) * lineHeight; lh > h {
			h = lh
		}
	}
	if hasIcon {
		if ih := t.Style.IconSize + 2; ih > h {
			h = ih
		}
	}
	if h < lineHeight {
		h = lineHeight
	}
	return h
}

func (s *state) rowHeight(t *report.Table, row []report.Cell, totals bool) float64 {
	s.setFont(t.Style.FontSize, totals)
	maxLines := t.MinRowLines
	if maxLines < 1 {
		maxLines = 1
	}
	for i, cell := range row {
		if i >= len(t.ColWidths) {
			break
		}
		if n := len(s.wrapText(cell.Text, t.ColWidths[i]-2*cellPadding)); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines) * lineHeight
}

func (s *state) drawTableHeader(t *report.Table) {
	if len(t.Header) == 0 {
		return
	}
	h := s.headerHeight(t)
	x := s.engine.config.MarginLeft
	y := s.pdf.GetY()

	for i, cell := range t.Header {
		w := t.ColWidths[i]
		if cell.Icon != nil {
			// icon headers keep a white box so the artwork is not
			// tinted by the header fill
			s.pdf.SetFillColor(report.ColorWhite.R, report.ColorWhite.G, report.ColorWhite.B)
			s.pdf.Rect(x, y, w, h, "FD")
			s.drawHeaderIcon(cell.Icon, x, y, w, h, t.Style.IconSize)
		} else {
			s.pdf.SetFillColor(t.Style.HeaderFill.R, t.Style.HeaderFill.G, t.Style.HeaderFill.B)
			s.pdf.Rect(x, y, w, h, "FD")
			s.setFont(t.Style.FontSize, t.Style.HeaderBold)
			s.pdf.SetTextColor(t.Style.HeaderText.R, t.Style.HeaderText.G, t.Style.HeaderText.B)
			s.drawCellText(cell.Text, x, y, w, h, report.AlignCenter)
		}
		x += w
	}
	s.pdf.SetY(y + h)
}

func (s *state) drawHeaderIcon(png []byte, x, y, w, h, size float64) {
	if size <= 0 {
		size = 9
	}
	s.imgSeq++
	name := fmt.Sprintf("icon-%d", s.imgSeq)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	s.pdf.ImageOptions(name, x+(w-size)/2, y+(h-size)/2, size, size, false, opts, 0, "")
}

func (s *state) drawRow(t *report.Table, row []report.Cell, h float64, index int, totals bool) {
	x := s.engine.config.MarginLeft
	y := s.pdf.GetY()

	banded := t.Style.Banded && index%2 == 1
	for i, cell := range row {
		if i >= len(t.ColWidths) {
			break
		}
		w := t.ColWidths[i]

		fill := report.ColorWhite
		textColor := report.ColorBlack
		bold := totals
		switch {
		case t.Style.LabelColumn && i == 0:
			fill = t.Style.HeaderFill
			textColor = t.Style.HeaderText
			bold = true
		case totals || banded:
			fill = t.Style.BandFill
		}

		s.pdf.SetFillColor(fill.R, fill.G, fill.B)
		s.pdf.Rect(x, y, w, h, "FD")
		s.setFont(t.Style.FontSize, bold)
		s.pdf.SetTextColor(textColor.R, textColor.G, textColor.B)
		s.drawCellText(cell.Text, x, y, w, h, cell.Align)
		x += w
	}
	s.pdf.SetY(y + h)
}

// drawCellText wraps and vertically centers text inside a cell box
func (s *state) drawCellText(text string, x, y, w, h float64, align report.Alignment) {
	lines := s.wrapText(text, w-2*cellPadding)
	startY := y + (h-float64(len(lines))*lineHeight)/2
	for i, line := range lines {
		s.pdf.SetXY(x+cellPadding, startY+float64(i)*lineHeight)
		s.pdf.CellFormat(w-2*cellPadding, lineHeight, s.tr(line), "", 0, alignString(align), false, 0, "")
	}
}

// wrapText splits text on explicit newlines, then wraps each segment to
// the given width with the current font.
func (s *state) wrapText(text string, width float64) []string {
	var lines []string
	for _, segment := range strings.Split(text, "\n") {
		if segment == "" {
			lines = append(lines, "")
			continue
		}
		for _, line := range s.pdf.SplitLines([]byte(s.tr(segment)), width) {
			lines = append(lines, string(line))
		}
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func (s *state) setFont(size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	if size <= 0 {
		size = 10
	}
	s.pdf.SetFont(s.engine.config.FontFamily, style, size)
}

func alignString(a report.Alignment) string {
	switch a {
	case report.AlignCenter:
		return "C"
	case report.AlignRight:
		return "R"
	}
	return "L"
}

// pageHeader draws the institutional running header: logo, gold centered
// title with subtitle, right-aligned date and time, and a gold rule above
// the content area.
func (s *state) pageHeader() {
	cfg := s.engine.config
	pageW, _ := s.pdf.GetPageSize()

	titleY := cfg.MarginTop - 12
	subtitleY := cfg.MarginTop - 8
	ruleY := cfg.MarginTop - 2

	if cfg.LogoName != "" {
		if png, ok := s.engine.icons.Resolve(cfg.LogoName); ok {
			s.imgSeq++
			name := fmt.Sprintf("logo-%d", s.imgSeq)
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
			s.pdf.ImageOptions(name, cfg.MarginLeft, titleY-9, 18, 18, false, opts, 0, "")
		}
	}

	now := s.engine.now()
	dateText := s.tr(report.FormatHeaderDate(now))
	timeText := now.Format("15:04")

	s.pdf.SetFont(cfg.FontFamily, "", 9)
	s.pdf.SetTextColor(report.ColorBlack.R, report.ColorBlack.G, report.ColorBlack.B)
	s.pdf.Text(pageW-cfg.MarginRight-s.pdf.GetStringWidth(dateText), titleY, dateText)
	s.pdf.Text(pageW-cfg.MarginRight-s.pdf.GetStringWidth(timeText), subtitleY, timeText)

	title := s.tr(cfg.Title)
	s.pdf.SetFont(cfg.FontFamily, "B", 12)
	s.pdf.SetTextColor(report.ColorGold.R, report.ColorGold.G, report.ColorGold.B)
	s.pdf.Text((pageW-s.pdf.GetStringWidth(title))/2, titleY, title)

	subtitle := s.tr(cfg.Subtitle)
	s.pdf.SetFont(cfg.FontFamily, "", 10)
	s.pdf.Text((pageW-s.pdf.GetStringWidth(subtitle))/2, subtitleY, subtitle)

	s.pdf.SetDrawColor(report.ColorGold.R, report.ColorGold.G, report.ColorGold.B)
	s.pdf.SetLineWidth(0.4)
	s.pdf.Line(cfg.MarginLeft, ruleY, pageW-cfg.MarginRight, ruleY)

	s.pdf.SetLineWidth(0.2)
	s.pdf.SetDrawColor(report.ColorBlack.R, report.ColorBlack.G, report.ColorBlack.B)
	s.pdf.SetY(cfg.MarginTop)
}

// pageFooter draws the page-numbered footer under a navy rule
func (s *state) pageFooter() {
	cfg := s.engine.config
	pageW, pageH := s.pdf.GetPageSize()

	ruleY := pageH - cfg.MarginBottom + 4
	textY := pageH - cfg.MarginBottom + 8

	s.pdf.SetDrawColor(report.ColorNavy.R, report.ColorNavy.G, report.ColorNavy.B)
	s.pdf.SetLineWidth(0.3)
	s.pdf.Line(cfg.MarginLeft, ruleY, pageW-cfg.MarginRight, ruleY)

	footer := s.tr(fmt.Sprintf(cfg.FooterFormat, s.pdf.PageNo()))
	s.pdf.SetFont(cfg.FontFamily, "", 8)
	s.pdf.SetTextColor(report.ColorBlack.R, report.ColorBlack.G, report.ColorBlack.B)
	s.pdf.Text((pageW-s.pdf.GetStringWidth(footer))/2, textY, footer)
}
