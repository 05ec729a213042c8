package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"deathreport/internal/models"
	"deathreport/internal/report"
)

// ErrEmptyChart is returned when there is nothing to plot.
var ErrEmptyChart = errors.New("chart has no points")

// Size is a chart canvas size in pixels.
type Size struct {
	Width  int
	Height int
}

// WriteChart renders c as a PNG.
func WriteChart(w io.Writer, c *models.Chart, size Size) error {
	if c == nil || len(c.Points) == 0 {
		return ErrEmptyChart
	}
	switch c.Kind {
	case models.ChartBar:
		labels := make([]string, len(c.Points))
		values := make([]float64, len(c.Points))
		for i, p := range c.Points {
			labels[i], values[i] = p.Label, p.Value
		}
		return BarChartPNG(w, labels, values, c.Title, size)
	case models.ChartLine:
		xs := make([]float64, len(c.Points))
		ys := make([]float64, len(c.Points))
		for i, p := range c.Points {
			xs[i], ys[i] = p.X, p.Value
		}
		return LineChartPNG(w, xs, ys, c.Title, c.Markers, size)
	}
	return fmt.Errorf("unknown chart kind %q", c.Kind)
}

func deathsFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return report.FormatDeaths(int64(math.Round(f)))
	}
	return fmt.Sprint(v)
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return fmt.Sprint(v)
}

// valueRange pads a flat range so the renderer never sees a zero-height axis.
func valueRange(values []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi * 1.05}
}

// BarChartPNG draws one bar per label, in the given order.
func BarChartPNG(w io.Writer, labels []string, values []float64, title string, size Size) error {
	if len(values) == 0 || len(labels) != len(values) {
		return ErrEmptyChart
	}

	bars := make([]chart.Value, len(values))
	for i, v := range values {
		bars[i] = chart.Value{Label: labels[i], Value: v}
	}

	// leave room for the y axis labels
	slot := max((size.Width-120)/len(bars), 6)
	barWidth := max(slot*2/3, 4)

	bc := chart.BarChart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth,
		BarSpacing: max(slot-barWidth, 2),
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 160}},
		XAxis:      chart.Style{TextRotationDegrees: 45.0},
		YAxis: chart.YAxis{
			Range:          valueRange(values),
			ValueFormatter: deathsFormatter,
		},
		Bars: bars,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

// LineChartPNG draws ys against xs, optionally marking every point.
func LineChartPNG(w io.Writer, xs, ys []float64, title string, markers bool, size Size) error {
	if len(xs) == 0 || len(xs) != len(ys) {
		return ErrEmptyChart
	}

	st := chart.Style{
		StrokeWidth: 2,
		StrokeColor: chart.ColorBlue,
	}
	if markers {
		st.DotWidth = 4
		st.DotColor = chart.ColorBlue
	}

	xRange := &chart.ContinuousRange{Min: xs[0], Max: xs[len(xs)-1]}
	if xRange.Min == xRange.Max {
		xRange.Min--
		xRange.Max++
	}

	ch := chart.Chart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 24, Bottom: 24}},
		XAxis: chart.XAxis{
			Name:           "Year",
			Range:          xRange,
			ValueFormatter: yearFormatter,
		},
		YAxis: chart.YAxis{
			Range:          valueRange(ys),
			ValueFormatter: deathsFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: title, XValues: xs, YValues: ys, Style: st},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render line chart: %w", err)
	}
	return nil
}
