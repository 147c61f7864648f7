package plot

import (
	"bytes"
	"image/png"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/odeglue"
)

func must(p odeglue.Piece, err error) odeglue.Piece {
	if err != nil {
		panic(err)
	}
	return p
}

func evaluate(pieces ...odeglue.Piece) []odeglue.Trace {
	return odeglue.NewEvaluator().EvaluateAll(pieces)
}

func TestLegendDeduplicates(t *testing.T) {
	a := must(odeglue.NewPositiveBranch(1))
	b := must(odeglue.NewPositiveBranch(1))
	b.Color = odeglue.ColorNegative
	z := must(odeglue.NewZeroSegment(-1, 0))

	got := Legend(evaluate(a, z, b))
	want := []LegendEntry{
		{Label: a.Label, Color: odeglue.ColorPositive},
		{Label: "y = 0", Color: odeglue.ColorZero},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Legend mismatch (-want +got):\n%s", diff)
	}
}

func TestLegendSkipsEmptyLabels(t *testing.T) {
	traces := []odeglue.Trace{{Label: ""}, {Label: "y(0) = 0", Marker: true}}
	got := Legend(traces)
	if len(got) != 1 || !got[0].Marker {
		t.Errorf("Legend = %+v, want the single marker entry", got)
	}
}

func TestRenderPNGSize(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		w, h int
	}{
		{"default", nil, DefaultWidth, DefaultHeight},
		{"custom", []Option{WithSize(320, 200)}, 320, 200},
		{"ignored", []Option{WithSize(0, -1)}, DefaultWidth, DefaultHeight},
	}
	traces := evaluate(
		must(odeglue.NewZeroSegment(-2, 0)),
		must(odeglue.NewPositiveBranch(1)),
		must(odeglue.NewInitialPoint(0, 0)),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := New(tt.opts...).Render(&buf, traces); err != nil {
				t.Fatalf("Render: %v", err)
			}
			img, err := png.Decode(&buf)
			if err != nil {
				t.Fatalf("png.Decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestRenderPointMarker(t *testing.T) {
	p := New(WithYRange(DefaultYMin, DefaultYMax), WithTitle(""))
	traces := evaluate(must(odeglue.NewInitialPoint(0, 0)))

	var buf bytes.Buffer
	if err := p.Render(&buf, traces); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}

	w, h := p.Size()
	f := newFrame(p.opts, p.Window(traces))
	if f.width != float64(w) || f.height != float64(h) {
		t.Fatalf("frame size %vx%v, want %dx%d", f.width, f.height, w, h)
	}
	r, g, b, _ := img.At(int(math.Round(f.px(0))), int(math.Round(f.py(0)))).RGBA()
	if g <= r || g <= b {
		t.Errorf("pixel at origin = (%d, %d, %d), want green dominant", r>>8, g>>8, b>>8)
	}
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Render(&buf, nil); err != nil {
		t.Fatalf("Render(nil): %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("png.Decode: %v", err)
	}
}

func TestRenderOverflowingTrace(t *testing.T) {
	traces := evaluate(must(odeglue.Toolbox{}.Positive(1e100, 2e100)), must(odeglue.NewZeroSegment(-1, 1)))
	if !traces[0].Overflow {
		t.Fatal("expected an overflowing trace")
	}
	var buf bytes.Buffer
	if err := New().Render(&buf, traces); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := RenderSVG(&buf, traces); err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.png")
	if err := New(WithSize(100, 80)).SavePNG(path, evaluate(must(odeglue.NewZeroSegment(-1, 1)))); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if err := New().SavePNG(filepath.Join(t.TempDir(), "missing", "plot.png"), nil); err == nil {
		t.Error("SavePNG into a missing directory succeeded")
	}
}

func TestRenderSVG(t *testing.T) {
	a := must(odeglue.NewNegativeBranch(-1))
	traces := evaluate(a, a, must(odeglue.NewInitialPoint(0, 0)))

	var buf bytes.Buffer
	if err := RenderSVG(&buf, traces, WithSize(640, 400)); err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("output is not SVG: %.80q", out)
	}
	if !strings.Contains(out, DefaultTitle) {
		t.Error("title missing from SVG")
	}
}

func TestTraceSeriesSplits(t *testing.T) {
	win := Window{XMin: -1, XMax: 1, YMin: 0, YMax: 1}
	tr := odeglue.Trace{
		Label: "l",
		Points: []odeglue.Point{
			{X: -1, Y: 0}, {X: -0.5, Y: 0.5},
			{X: 0, Y: math.Inf(1)},
			{X: 0.5, Y: 0.2},
			{X: 0.8, Y: 5},
		},
	}
	got := traceSeries(tr, win)
	if len(got) != 2 {
		t.Fatalf("got %d series, want 2", len(got))
	}
	for i, s := range got {
		if s.GetName() != "l" {
			t.Errorf("series %d name = %q", i, s.GetName())
		}
	}
	if got := traceSeries(odeglue.Trace{}, win); got != nil {
		t.Errorf("empty trace produced %d series", len(got))
	}
}
