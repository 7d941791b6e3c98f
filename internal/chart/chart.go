// Package chart renders the price and decomposition charts as PNG images.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"StockAnalyzer/internal/model"
)

// Size is the rendered size of one chart.
type Size struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultSize fits two charts side by side in a 1400x850 window.
var DefaultSize = Size{Width: 8.5 * vg.Inch, Height: 9.5 * vg.Inch}

var (
	blue  = color.RGBA{B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 128, A: 255}
	grey  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

const lineWidth = 0.5

// xys pairs dates with values, skipping undefined entries.
func xys(dates []time.Time, values []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if i >= len(dates) || !model.Defined(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(dates[i].Unix()), Y: v})
	}
	return pts
}

func newLine(pts plotter.XYs, c color.Color, dashed bool) (*plotter.Line, error) {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(lineWidth)
	line.LineStyle.Color = c
	if dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	}
	return line, nil
}

func newPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(10)
	p.Y.Label.Text = ylabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(8)
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.X.Tick.Label.Font.Size = vg.Points(6)
	p.Y.Tick.Label.Font.Size = vg.Points(6)
	p.Add(plotter.NewGrid())
	return p
}

// addSeries adds a line when it has at least one defined point.
func addSeries(p *plot.Plot, label string, pts plotter.XYs, c color.Color, dashed bool) error {
	if len(pts) == 0 {
		return nil
	}
	line, err := newLine(pts, c, dashed)
	if err != nil {
		return fmt.Errorf("%s line: %w", label, err)
	}
	p.Add(line)
	if label != "" {
		p.Legend.Add(label, line)
	}
	return nil
}

func encodePNG(c *vgimg.Canvas) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPrice draws the closing price with both moving averages and the Bollinger envelope.
func RenderPrice(series *model.PriceSeries, size Size) ([]byte, error) {
	if series.Len() == 0 {
		return nil, fmt.Errorf("no price data for %s", series.Symbol)
	}
	ind := series.Indicators
	if ind == nil {
		ind = &model.Indicators{}
	}
	dates := series.Dates()

	p := newPlot(fmt.Sprintf("%s Stock Price with Moving Averages and Bollinger Bands", series.Symbol), "Price")
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Font.Size = vg.Points(7)

	layers := []struct {
		label  string
		values []float64
		color  color.Color
		dashed bool
	}{
		{"Close", series.Closes(), blue, false},
		{"SMA 20", ind.SMA20, red, false},
		{"SMA 50", ind.SMA50, green, false},
		{"Bollinger Bands", ind.BBUpper, grey, true},
		{"", ind.BBLower, grey, true},
	}
	for _, l := range layers {
		if err := addSeries(p, l.label, xys(dates, l.values), l.color, l.dashed); err != nil {
			return nil, err
		}
	}

	img := vgimg.New(size.Width, size.Height)
	p.Draw(draw.New(img))
	return encodePNG(img)
}

// RenderDecomposition stacks trend, seasonal and residual panes over the same dates.
func RenderDecomposition(dec *model.Decomposition, size Size) ([]byte, error) {
	if dec == nil || len(dec.Dates) == 0 {
		return nil, fmt.Errorf("no decomposition to render")
	}

	panes := []struct {
		title  string
		label  string
		values []float64
		color  color.Color
	}{
		{"Trend Component", "Trend", dec.Trend, blue},
		{"Seasonal Component", "Seasonality", dec.Seasonal, green},
		{"Residual Component", "Residuals", dec.Residual, red},
	}

	plots := make([][]*plot.Plot, len(panes))
	for i, pane := range panes {
		p := newPlot(pane.title, "")
		p.Title.TextStyle.Font.Size = vg.Points(8)
		p.Legend.Top = true
		p.Legend.TextStyle.Font.Size = vg.Points(7)
		if err := addSeries(p, pane.label, xys(dec.Dates, pane.values), pane.color, false); err != nil {
			return nil, err
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(size.Width, size.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(panes),
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
		PadY:      vg.Points(6),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return encodePNG(img)
}
