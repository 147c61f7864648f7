package plot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/odeglue"
)

func TestWindowFixed(t *testing.T) {
	o := defaultOptions()
	WithYRange(-1, 3)(&o)
	traces := evaluate(must(odeglue.NewPositiveBranch(1)))
	got := o.window(traces)
	want := Window{XMin: DefaultXMin, XMax: DefaultXMax, YMin: -1, YMax: 3}
	if got != want {
		t.Errorf("window = %+v, want %+v", got, want)
	}
}

func TestWindowAutoScale(t *testing.T) {
	tests := []struct {
		name   string
		pieces []odeglue.Piece
		want   Window
	}{
		{
			name: "empty",
			want: Window{XMin: DefaultXMin, XMax: DefaultXMax, YMin: DefaultYMin, YMax: DefaultYMax},
		},
		{
			name:   "flat",
			pieces: []odeglue.Piece{must(odeglue.NewZeroSegment(-2, 2))},
			want:   Window{XMin: DefaultXMin, XMax: DefaultXMax, YMin: DefaultYMin, YMax: DefaultYMax},
		},
		{
			name:   "branch",
			pieces: []odeglue.Piece{must(odeglue.NewPositiveBranch(1))},
			// 0 .. 6.25·14.625² padded by 5%.
			want: Window{
				XMin: DefaultXMin, XMax: DefaultXMax,
				YMin: -0.05 * 1336.81640625, YMax: 1.05 * 1336.81640625,
			},
		},
		{
			name:   "out of view",
			pieces: []odeglue.Piece{must(odeglue.NewPositiveBranch(1e200))},
			want: Window{
				XMin: DefaultXMin, XMax: DefaultXMax,
				YMin: DefaultYMin, YMax: DefaultYMax,
			},
		},
		{
			name:   "capped",
			pieces: []odeglue.Piece{must(odeglue.NewInitialPoint(0, 1e9))},
			want: Window{
				XMin: DefaultXMin, XMax: DefaultXMax,
				YMin: -0.05 * MaxAutoY, YMax: 1.05 * MaxAutoY,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultOptions().window(evaluate(tt.pieces...))
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(1e-12, 1e-9)); diff != "" {
				t.Errorf("window mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		min, max float64
		n        int
		want     []float64
	}{
		{-2.5, 2.5, 10, []float64{-2.5, -2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5, 2, 2.5}},
		{-0.5, 6, 8, []float64{0, 1, 2, 3, 4, 5, 6}},
		{0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
	}
	for _, tt := range tests {
		got := ticks(tt.min, tt.max, tt.n)
		if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("ticks(%v, %v, %d) mismatch (-want +got):\n%s", tt.min, tt.max, tt.n, diff)
		}
	}
}

func TestNiceStep(t *testing.T) {
	for _, tt := range []struct {
		span float64
		n    int
		want float64
	}{
		{10, 10, 1},
		{6.5, 8, 1},
		{5, 10, 0.5},
		{100, 5, 20},
		{0, 5, 1},
	} {
		if got := niceStep(tt.span, tt.n); got != tt.want {
			t.Errorf("niceStep(%v, %d) = %v, want %v", tt.span, tt.n, got, tt.want)
		}
	}
}
