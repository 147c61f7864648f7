package odeglue

import (
	"math"

	"github.com/gogpu/gg"
)

// Trace is the renderable form of a piece: a sampled polyline, or a single
// marker for points.
type Trace struct {
	Kind   Kind
	Points []Point
	// Marker is set for pieces drawn as a point marker rather than a line.
	Marker bool
	// Overflow is set when a sample evaluated to ±Inf or NaN. Such samples
	// are kept as computed; renderers skip them.
	Overflow bool
	Label    string
	Color    gg.RGBA
}

// Empty reports whether the trace has nothing to draw.
func (t Trace) Empty() bool {
	return len(t.Points) == 0
}

// Evaluator maps pieces to traces. It holds only configuration, so one
// Evaluator can be reused for any number of pieces.
type Evaluator struct {
	samples          int
	viewMin, viewMax float64
}

// NewEvaluator creates an evaluator. Without options it samples 200 points
// per curve on the view [-2.5, 2.5].
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	o := defaultEvaluatorOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Evaluator{
		samples: o.samples,
		viewMin: o.viewMin,
		viewMax: o.viewMax,
	}
}

// Samples returns the number of samples per curve piece.
func (e *Evaluator) Samples() int { return e.samples }

// View returns the x bounds branches extend to by default.
func (e *Evaluator) View() (min, max float64) { return e.viewMin, e.viewMax }

// cubeDiff returns x³ − x0³, exactly 0 at x == x0. The factored form
// overflows to ±Inf instead of Inf − Inf = NaN for large arguments.
func cubeDiff(x, x0 float64) float64 {
	if x == x0 {
		return 0
	}
	return (x - x0) * (x*x + x*x0 + x0*x0)
}

// BranchValue returns x²(x³ − x0³)².
func BranchValue(x, x0 float64) float64 {
	d := cubeDiff(x, x0)
	if d == 0 {
		return 0
	}
	return x * x * d * d
}

// BranchSlope returns the derivative of [BranchValue] with respect to x:
// 2x(x³ − x0³)² + 6x⁴(x³ − x0³).
func BranchSlope(x, x0 float64) float64 {
	d := cubeDiff(x, x0)
	if d == 0 {
		return 0
	}
	x2 := x * x
	return 2*x*d*d + 6*x2*x2*d
}

// Value returns y(x) for a curve piece, ignoring its domain. Points and
// invalid pieces yield NaN.
func Value(p Piece, x float64) float64 {
	switch q := p.Params.(type) {
	case ZeroSegment:
		return 0
	case PositiveBranch:
		return BranchValue(x, q.X0)
	case NegativeBranch:
		return BranchValue(x, q.X0)
	}
	return math.NaN()
}

// Derivative returns y'(x) for a curve piece, ignoring its domain. Points
// and invalid pieces yield NaN.
func Derivative(p Piece, x float64) float64 {
	switch q := p.Params.(type) {
	case ZeroSegment:
		return 0
	case PositiveBranch:
		return BranchSlope(x, q.X0)
	case NegativeBranch:
		return BranchSlope(x, q.X0)
	}
	return math.NaN()
}

// Domain returns the x range a curve piece is sampled on, in sampling
// order. For zero segments from > to when the range was given reversed.
// ok is false for points and invalid pieces.
//
// A branch whose gluing point lies beyond the view (and which has no
// explicit limit) has the degenerate domain [x0, x0].
func (e *Evaluator) Domain(p Piece) (from, to float64, ok bool) {
	switch q := p.Params.(type) {
	case ZeroSegment:
		return q.A, q.B, true
	case PositiveBranch:
		hi := q.Limit
		if hi == 0 {
			hi = e.viewMax
		}
		if hi < q.X0 {
			hi = q.X0
		}
		return q.X0, hi, true
	case NegativeBranch:
		lo := q.Limit
		if lo == 0 {
			lo = e.viewMin
		}
		if lo > q.X0 {
			lo = q.X0
		}
		return lo, q.X0, true
	}
	return 0, 0, false
}

// Evaluate produces the trace of p. It never fails: invalid pieces yield an
// empty trace, degenerate ranges a single sample, and overflowing values are
// kept as ±Inf with Trace.Overflow set.
func (e *Evaluator) Evaluate(p Piece) Trace {
	t := Trace{
		Kind:  p.Kind(),
		Label: p.DisplayLabel(),
		Color: p.Color,
	}
	if q, ok := p.Params.(InitialPoint); ok {
		t.Marker = true
		t.Points = []Point{{X: q.X, Y: q.Y}}
		return t
	}
	from, to, ok := e.Domain(p)
	if !ok {
		Logger().Debug("odeglue: skipping piece without parameters", "label", p.Label)
		return t
	}

	xs := linspace(from, to, e.samples)
	t.Points = make([]Point, len(xs))
	for i, x := range xs {
		y := Value(p, x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			t.Overflow = true
		}
		t.Points[i] = Point{X: x, Y: y}
	}
	if t.Overflow {
		Logger().Warn("odeglue: trace overflows float64", "label", t.Label)
	}
	Logger().Debug("odeglue: evaluated piece",
		"kind", t.Kind, "from", from, "to", to, "samples", len(t.Points))
	return t
}

// EvaluateAll evaluates pieces in order. A piece that cannot be evaluated
// produces an empty trace and does not affect the others.
func (e *Evaluator) EvaluateAll(pieces []Piece) []Trace {
	traces := make([]Trace, len(pieces))
	for i, p := range pieces {
		traces[i] = e.Evaluate(p)
	}
	return traces
}
