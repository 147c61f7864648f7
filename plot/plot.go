// Package plot draws evaluated pieces as a 2D figure: PNG through the gg
// software rasterizer, SVG through go-chart, plus the textual piece list.
package plot

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/odeglue"
)

// Line widths in pixels. Zero segments are drawn heavier so that branches
// glued onto them stay visible.
const (
	zeroLineWidth   = 3
	branchLineWidth = 2
	markerRadius    = 5
)

var (
	axisColor   = gg.RGB(0.5, 0.5, 0.5)
	gridColor   = gg.RGBA2(0, 0, 0, 0.12)
	labelColor  = gg.RGB(0.2, 0.2, 0.2)
	legendFrame = gg.RGB(0.8, 0.8, 0.8)
)

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
)

// face returns the Go Regular face at size, or nil if the embedded font
// could not be parsed. Text is skipped without a face; the curves still draw.
func face(size float64) text.Face {
	fontOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			odeglue.Logger().Warn("plot: loading embedded font", "err", err)
			return
		}
		fontSource = src
	})
	if fontSource == nil {
		return nil
	}
	return fontSource.Face(size)
}

// Plotter renders traces as a raster image.
type Plotter struct {
	opts options
}

// New creates a Plotter. Without options it draws an 800x500 image of
// x ∈ [-2.5, 2.5] with an auto-scaled y axis.
func New(opts ...Option) *Plotter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Plotter{opts: o}
}

// Size returns the image size in pixels.
func (p *Plotter) Size() (width, height int) {
	return p.opts.width, p.opts.height
}

// Window returns the data region the traces would be drawn in.
func (p *Plotter) Window(traces []odeglue.Trace) Window {
	return p.opts.window(traces)
}

// Draw renders traces onto a new context. The caller owns the context and
// should Close it.
func (p *Plotter) Draw(traces []odeglue.Trace) *gg.Context {
	f := newFrame(p.opts, p.Window(traces))
	dc := gg.NewContext(p.opts.width, p.opts.height)
	dc.ClearWithColor(gg.White)

	f.drawGrid(dc)
	f.drawAxes(dc)

	dc.Push()
	dc.ClipRect(f.left, f.top, f.plotW, f.plotH)
	for _, t := range traces {
		f.drawTrace(dc, t)
	}
	dc.Pop()

	f.drawFrame(dc)
	f.drawLegend(dc, Legend(traces))
	f.drawTitle(dc, p.opts.title)

	odeglue.Logger().Debug("plot: drew traces",
		"traces", len(traces), "ymin", f.win.YMin, "ymax", f.win.YMax)
	return dc
}

// Render draws traces and writes the image to w as PNG.
func (p *Plotter) Render(w io.Writer, traces []odeglue.Trace) error {
	dc := p.Draw(traces)
	defer func() { _ = dc.Close() }()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("plot: encode png: %w", err)
	}
	return nil
}

// SavePNG draws traces and writes the image to path.
func (p *Plotter) SavePNG(path string, traces []odeglue.Trace) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("plot: %w", cerr)
		}
	}()
	return p.Render(f, traces)
}

// frame maps data coordinates to pixels.
type frame struct {
	win                     Window
	width, height           float64
	left, top, plotW, plotH float64
}

func newFrame(o options, win Window) frame {
	const (
		marginLeft   = 64
		marginRight  = 24
		marginTop    = 40
		marginBottom = 44
	)
	w, h := float64(o.width), float64(o.height)
	return frame{
		win:    win,
		width:  w,
		height: h,
		left:   marginLeft,
		top:    marginTop,
		plotW:  max(1, w-marginLeft-marginRight),
		plotH:  max(1, h-marginTop-marginBottom),
	}
}

// px returns the pixel x of data x.
func (f frame) px(x float64) float64 {
	return f.left + (x-f.win.XMin)/(f.win.XMax-f.win.XMin)*f.plotW
}

// py returns the pixel y of data y. Pixel y grows downwards.
func (f frame) py(y float64) float64 {
	return f.top + (f.win.YMax-y)/(f.win.YMax-f.win.YMin)*f.plotH
}

func (f frame) drawGrid(dc *gg.Context) {
	ft := face(11)
	dc.SetLineWidth(1)
	for _, x := range ticks(f.win.XMin, f.win.XMax, 10) {
		dc.SetColor(gridColor.Color())
		dc.DrawLine(f.px(x), f.top, f.px(x), f.top+f.plotH)
		_ = dc.Stroke()
		if ft != nil {
			dc.SetFont(ft)
			dc.SetColor(labelColor.Color())
			dc.DrawStringAnchored(odeglue.FormatNumber(x), f.px(x), f.top+f.plotH+6, 0.5, 1)
		}
	}
	for _, y := range ticks(f.win.YMin, f.win.YMax, 8) {
		dc.SetColor(gridColor.Color())
		dc.DrawLine(f.left, f.py(y), f.left+f.plotW, f.py(y))
		_ = dc.Stroke()
		if ft != nil {
			dc.SetFont(ft)
			dc.SetColor(labelColor.Color())
			dc.DrawStringAnchored(odeglue.FormatNumber(y), f.left-6, f.py(y), 1, 0.35)
		}
	}
	if ft != nil {
		dc.SetFont(ft)
		dc.SetColor(labelColor.Color())
		dc.DrawStringAnchored("x", f.left+f.plotW/2, f.height-8, 0.5, 0)
		dc.DrawStringAnchored("y", 14, f.top+f.plotH/2, 0.5, 0.35)
	}
}

// drawAxes draws dashed lines through the origin when it is in view.
func (f frame) drawAxes(dc *gg.Context) {
	dc.SetColor(axisColor.Color())
	dc.SetLineWidth(0.8)
	dc.SetDash(4, 3)
	if f.win.YMin <= 0 && 0 <= f.win.YMax {
		dc.DrawLine(f.left, f.py(0), f.left+f.plotW, f.py(0))
		_ = dc.Stroke()
	}
	if f.win.XMin <= 0 && 0 <= f.win.XMax {
		dc.DrawLine(f.px(0), f.top, f.px(0), f.top+f.plotH)
		_ = dc.Stroke()
	}
	dc.ClearDash()
}

func (f frame) drawFrame(dc *gg.Context) {
	dc.SetColor(axisColor.Color())
	dc.SetLineWidth(1)
	dc.DrawRectangle(f.left, f.top, f.plotW, f.plotH)
	_ = dc.Stroke()
}

// drawTrace strokes a polyline through the finite samples of t, breaking
// the line at non-finite ones. Markers and single-sample curves become dots.
func (f frame) drawTrace(dc *gg.Context, t odeglue.Trace) {
	if t.Empty() {
		return
	}
	dc.SetColor(t.Color.Color())
	if t.Marker {
		for _, p := range t.Points {
			if p.IsFinite() {
				dc.DrawCircle(f.px(p.X), f.py(p.Y), markerRadius)
				_ = dc.Fill()
			}
		}
		return
	}

	width := float64(branchLineWidth)
	if t.Kind == odeglue.KindZero {
		width = zeroLineWidth
	}
	dc.SetLineWidth(width)

	if len(t.Points) == 1 {
		if p := t.Points[0]; p.IsFinite() {
			dc.DrawCircle(f.px(p.X), f.py(p.Y), width)
			_ = dc.Fill()
		}
		return
	}

	pen := false
	for _, p := range t.Points {
		if !p.IsFinite() {
			pen = false
			continue
		}
		if pen {
			dc.LineTo(f.px(p.X), f.py(p.Y))
		} else {
			dc.MoveTo(f.px(p.X), f.py(p.Y))
			pen = true
		}
	}
	_ = dc.Stroke()
}

// drawLegend draws the deduplicated legend in a box at the top center of
// the plot area.
func (f frame) drawLegend(dc *gg.Context, entries []LegendEntry) {
	ft := face(12)
	if len(entries) == 0 || ft == nil {
		return
	}
	dc.SetFont(ft)

	const (
		pad    = 8.0
		swatch = 24.0
		gap    = 6.0
	)
	var textW, lineH float64
	for _, e := range entries {
		w, h := dc.MeasureString(e.Label)
		textW = max(textW, w)
		lineH = max(lineH, h)
	}
	boxW := pad*2 + swatch + gap + textW
	boxH := pad*2 + lineH*float64(len(entries))
	x0 := f.left + (f.plotW-boxW)/2
	y0 := f.top + pad

	dc.SetColor(gg.RGBA2(1, 1, 1, 0.85).Color())
	dc.DrawRectangle(x0, y0, boxW, boxH)
	_ = dc.Fill()
	dc.SetColor(legendFrame.Color())
	dc.SetLineWidth(1)
	dc.DrawRectangle(x0, y0, boxW, boxH)
	_ = dc.Stroke()

	for i, e := range entries {
		cy := y0 + pad + lineH*(float64(i)+0.5)
		dc.SetColor(e.Color.Color())
		if e.Marker {
			dc.DrawCircle(x0+pad+swatch/2, cy, 4)
			_ = dc.Fill()
		} else {
			dc.SetLineWidth(branchLineWidth)
			dc.DrawLine(x0+pad, cy, x0+pad+swatch, cy)
			_ = dc.Stroke()
		}
		dc.SetColor(labelColor.Color())
		dc.DrawStringAnchored(e.Label, x0+pad+swatch+gap, cy, 0, 0.35)
	}
}

func (f frame) drawTitle(dc *gg.Context, title string) {
	ft := face(15)
	if title == "" || ft == nil {
		return
	}
	dc.SetFont(ft)
	dc.SetColor(labelColor.Color())
	dc.DrawStringAnchored(title, f.width/2, f.top-12, 0.5, 0)
}
