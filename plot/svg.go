package plot

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/gogpu/odeglue"
)

// RenderSVG writes traces to w as an SVG chart. It uses the same window,
// ticks and legend as the raster Plotter.
func RenderSVG(w io.Writer, traces []odeglue.Trace, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	win := o.window(traces)

	series := []chart.Series{axisSeries(win)}
	for _, t := range traces {
		series = append(series, traceSeries(t, win)...)
	}

	ch := chart.Chart{
		Title:      o.title,
		Width:      o.width,
		Height:     o.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "x",
			Range: &chart.ContinuousRange{Min: win.XMin, Max: win.XMax},
			Ticks: chartTicks(ticks(win.XMin, win.XMax, 10)),
		},
		YAxis: chart.YAxis{
			Name:  "y",
			Range: &chart.ContinuousRange{Min: win.YMin, Max: win.YMax},
			Ticks: chartTicks(ticks(win.YMin, win.YMax, 8)),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{legendElement(Legend(traces))}

	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("plot: render svg: %w", err)
	}
	odeglue.Logger().Debug("plot: rendered svg", "traces", len(traces), "series", len(series))
	return nil
}

func chartColor(c gg.RGBA) drawing.Color {
	u := func(v float64) uint8 { return uint8(math.Round(min(max(v, 0), 1) * 255)) }
	return drawing.Color{R: u(c.R), G: u(c.G), B: u(c.B), A: u(c.A)}
}

func chartTicks(vs []float64) []chart.Tick {
	out := make([]chart.Tick, len(vs))
	for i, v := range vs {
		out[i] = chart.Tick{Value: v, Label: odeglue.FormatNumber(v)}
	}
	return out
}

// axisSeries is the dashed y = 0 line. It also keeps the chart non-empty,
// which go-chart requires.
func axisSeries(win Window) chart.Series {
	return chart.ContinuousSeries{
		XValues: []float64{win.XMin, win.XMax},
		YValues: []float64{0, 0},
		Style: chart.Style{
			StrokeColor:     chartColor(axisColor),
			StrokeWidth:     0.8,
			StrokeDashArray: []float64{4, 3},
		},
	}
}

// traceSeries splits t into series of consecutive samples that are finite
// and inside win. go-chart neither clips nor tolerates Inf, so the split
// replaces both. Series carry at least two values; lone samples are doubled.
func traceSeries(t odeglue.Trace, win Window) []chart.Series {
	if t.Empty() {
		return nil
	}
	col := chartColor(t.Color)
	style := chart.Style{StrokeColor: col, StrokeWidth: branchLineWidth}
	if t.Kind == odeglue.KindZero {
		style.StrokeWidth = zeroLineWidth
	}
	if t.Marker || len(t.Points) == 1 {
		style = chart.Style{StrokeWidth: 0, DotWidth: markerRadius, DotColor: col}
	}

	inside := func(p odeglue.Point) bool {
		return p.IsFinite() &&
			p.X >= win.XMin && p.X <= win.XMax &&
			p.Y >= win.YMin && p.Y <= win.YMax
	}

	var out []chart.Series
	var xs, ys []float64
	flush := func() {
		switch len(xs) {
		case 0:
			return
		case 1:
			xs, ys = append(xs, xs[0]), append(ys, ys[0])
		}
		out = append(out, chart.ContinuousSeries{
			Name:    t.Label,
			XValues: xs,
			YValues: ys,
			Style:   style,
		})
		xs, ys = nil, nil
	}
	for _, p := range t.Points {
		if !inside(p) {
			flush()
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
	}
	flush()
	return out
}

// legendElement draws entries in a box at the top center of the canvas.
func legendElement(entries []LegendEntry) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		if len(entries) == 0 {
			return
		}
		const (
			pad    = 6
			swatch = 20
			gap    = 6
		)
		r.SetFont(defaults.Font)
		r.SetFontSize(10)

		var textW, lineH int
		for _, e := range entries {
			tb := r.MeasureText(e.Label)
			textW = max(textW, tb.Width())
			lineH = max(lineH, tb.Height())
		}
		lineH += 4
		boxW := 2*pad + swatch + gap + textW
		boxH := 2*pad + lineH*len(entries)
		left := box.Left + (box.Width()-boxW)/2
		top := box.Top + pad

		r.SetFillColor(drawing.ColorWhite)
		r.SetStrokeColor(chartColor(legendFrame))
		r.SetStrokeWidth(1)
		r.MoveTo(left, top)
		r.LineTo(left+boxW, top)
		r.LineTo(left+boxW, top+boxH)
		r.LineTo(left, top+boxH)
		r.LineTo(left, top)
		r.FillStroke()

		for i, e := range entries {
			cy := top + pad + lineH*i + lineH/2
			col := chartColor(e.Color)
			if e.Marker {
				r.SetFillColor(col)
				r.SetStrokeColor(col)
				r.Circle(4, left+pad+swatch/2, cy)
				r.FillStroke()
			} else {
				r.SetStrokeColor(col)
				r.SetStrokeWidth(branchLineWidth)
				r.MoveTo(left+pad, cy)
				r.LineTo(left+pad+swatch, cy)
				r.Stroke()
			}
			r.SetFontColor(chartColor(labelColor))
			r.Text(e.Label, left+pad+swatch+gap, cy+lineH/2-3)
		}
	}
}
