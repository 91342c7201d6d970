package aggregate

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	apperrors "deployment-report-service/pkg/errors"
)

// Institutional chart palette. Gold fills, navy strokes and titles.
var (
	chartGold = drawing.Color{R: 0xCC, G: 0xAA, B: 0x33, A: 255}
	chartNavy = drawing.Color{R: 0x00, G: 0x33, B: 0x66, A: 255}

	slicePalette = []drawing.Color{
		chartGold,
		chartNavy,
		{R: 0x66, G: 0x99, B: 0x33, A: 255},
		{R: 0x99, G: 0x33, B: 0x66, A: 255},
		{R: 0x33, G: 0x66, B: 0x99, A: 255},
		{R: 0x99, G: 0x66, B: 0x33, A: 255},
	}
)

// Chart pixel dimensions; embedded at 150x100 mm on the page.
const (
	chartWidth  = 600
	chartHeight = 400

	// ChartWidthMM and ChartHeightMM are the on-page dimensions.
	ChartWidthMM  = 150
	ChartHeightMM = 100
)

func titleStyle() chart.Style {
	return chart.Style{
		FontSize:  14,
		FontColor: chartNavy,
	}
}

// yRange builds an explicit axis range from zero to just above the largest
// value. go-chart refuses to render a degenerate range, which the automatic
// range computes whenever every value is equal.
func yRange(values []int) *chart.ContinuousRange {
	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: float64(max) * 1.1}
}

// BarChart renders a gold-on-navy bar chart of the labeled values as PNG
func BarChart(title string, labels []string, values []int) ([]byte, error) {
	if len(labels) != len(values) || len(labels) == 0 {
		return nil, apperrors.New(apperrors.CategoryInternal, apperrors.CodeRenderFailed,
			fmt.Sprintf("bar chart %q needs aligned non-empty labels and values", title))
	}

	bars := make([]chart.Value, len(labels))
	for i, label := range labels {
		bars[i] = chart.Value{
			Label: label,
			Value: float64(values[i]),
			Style: chart.Style{
				FillColor:   chartGold,
				StrokeColor: chartNavy,
				StrokeWidth: 1.5,
			},
		}
	}

	bc := chart.BarChart{
		Title:      title,
		TitleStyle: titleStyle(),
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   60,
		Bars:       bars,
		YAxis: chart.YAxis{
			Range: yRange(values),
		},
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.CodeRenderFailed,
			fmt.Sprintf("rendering bar chart %q", title))
	}
	return buf.Bytes(), nil
}

// PieChart renders a pie chart whose slice labels carry the absolute value
// and the slice's share of the total to one decimal place.
func PieChart(title string, labels []string, values []int) ([]byte, error) {
	if len(labels) != len(values) || len(labels) == 0 {
		return nil, apperrors.New(apperrors.CategoryInternal, apperrors.CodeRenderFailed,
			fmt.Sprintf("pie chart %q needs aligned non-empty labels and values", title))
	}

	total := 0
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return nil, apperrors.New(apperrors.CategoryInternal, apperrors.CodeRenderFailed,
			fmt.Sprintf("pie chart %q has no non-zero slices", title))
	}

	slices := make([]chart.Value, len(labels))
	for i, label := range labels {
		pct := float64(values[i]) / float64(total) * 100
		slices[i] = chart.Value{
			Label: fmt.Sprintf("%s: %d (%.1f%%)", label, values[i], pct),
			Value: float64(values[i]),
			Style: chart.Style{
				FillColor:   slicePalette[i%len(slicePalette)],
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1.5,
			},
		}
	}

	pc := chart.PieChart{
		Title:      title,
		TitleStyle: titleStyle(),
		Width:      chartWidth,
		Height:     chartHeight,
		Values:     slices,
	}

	var buf bytes.Buffer
	if err := pc.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.CodeRenderFailed,
			fmt.Sprintf("rendering pie chart %q", title))
	}
	return buf.Bytes(), nil
}

// LineChart renders a navy time-series line with gold markers over the
// labeled points, in the order given.
func LineChart(title string, xLabels []string, values []int) ([]byte, error) {
	if len(xLabels) != len(values) || len(xLabels) < 2 {
		return nil, apperrors.New(apperrors.CategoryInternal, apperrors.CodeRenderFailed,
			fmt.Sprintf("line chart %q needs at least two aligned points", title))
	}

	xs := make([]float64, len(values))
	ys := make([]float64, len(values))
	ticks := make([]chart.Tick, len(values))
	for i, v := range values {
		xs[i] = float64(i)
		ys[i] = float64(v)
		ticks[i] = chart.Tick{Value: float64(i), Label: xLabels[i]}
	}

	lc := chart.Chart{
		Title:      title,
		TitleStyle: titleStyle(),
		Width:      chartWidth,
		Height:     chartHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: yRange(values),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chartNavy,
					StrokeWidth: 2,
					DotColor:    chartGold,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := lc.Render(chart.PNG, &buf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryInternal, apperrors.CodeRenderFailed,
			fmt.Sprintf("rendering line chart %q", title))
	}
	return buf.Bytes(), nil
}
