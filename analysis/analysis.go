// Package analysis checks a catalog of pieces against the initial value
// problem
//
//	x·y' = 2y − 6x⁴√y,  y(0) = 0
//
// on a closed interval. It reports, per piece, whether the sampled curve
// satisfies the equation, and for the catalog as a whole whether the glued
// pieces form a solution: the initial condition holds, the interval is
// covered, overlapping pieces agree and every junction is smooth.
//
// Substituting y = x²(x³ − x0³)² into the equation leaves the residual
// 12x⁴·max(0, x(x³ − x0³)), so a branch solves it only where x and
// x³ − x0³ have opposite signs, that is between 0 and x0.
package analysis

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gogpu/odeglue"
)

// Interval is a closed range of x.
type Interval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Len returns Hi − Lo.
func (iv Interval) Len() float64 { return iv.Hi - iv.Lo }

// Contains reports whether x lies in the interval.
func (iv Interval) Contains(x float64) bool { return iv.Lo <= x && x <= iv.Hi }

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s]", odeglue.FormatNumber(iv.Lo), odeglue.FormatNumber(iv.Hi))
}

// PieceReport is the verdict for one catalog entry.
type PieceReport struct {
	Index int          `json:"index"`
	Kind  odeglue.Kind `json:"kind"`
	Label string       `json:"label"`
	// Covers is the part of the checked interval the piece is drawn on.
	// It is nil for points and for pieces drawn entirely outside.
	Covers *Interval `json:"covers,omitempty"`
	// Valid is set when every sample inside the interval satisfies the
	// equation within tolerance.
	Valid bool `json:"valid"`
	// MaxResidual is the largest finite |residual| seen.
	MaxResidual float64 `json:"max_residual"`
	// Violation spans the first to the last failing sample.
	Violation *Interval `json:"violation,omitempty"`
	// Overflow is set when a sample could not be evaluated in float64.
	Overflow bool `json:"overflow,omitempty"`
}

// Conflict records two overlapping curve pieces that disagree at X.
type Conflict struct {
	A int     `json:"a"`
	B int     `json:"b"`
	X float64 `json:"x"`
}

// Junction is a point where one curve piece ends and the next begins.
type Junction struct {
	X              float64 `json:"x"`
	Left           int     `json:"left"`
	Right          int     `json:"right"`
	Continuous     bool    `json:"continuous"`
	Differentiable bool    `json:"differentiable"`
}

// Report is the result of Check.
type Report struct {
	Interval         Interval      `json:"interval"`
	Pieces           []PieceReport `json:"pieces"`
	InitialCondition bool          `json:"initial_condition"`
	Gaps             []Interval    `json:"gaps"`
	Conflicts        []Conflict    `json:"conflicts"`
	Junctions        []Junction    `json:"junctions"`
}

// Solved reports whether the pieces form a solution of the problem on the
// whole interval.
func (r Report) Solved() bool {
	if !r.InitialCondition || len(r.Gaps) > 0 || len(r.Conflicts) > 0 {
		return false
	}
	for _, p := range r.Pieces {
		if !p.Valid {
			return false
		}
	}
	for _, j := range r.Junctions {
		if !j.Differentiable {
			return false
		}
	}
	return true
}

// Summary renders the report as short human readable lines.
func (r Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "interval %v: ", r.Interval)
	if r.Solved() {
		sb.WriteString("solved\n")
	} else {
		sb.WriteString("not solved\n")
	}
	if !r.InitialCondition {
		sb.WriteString("  initial condition y(0) = 0 not met\n")
	}
	for _, p := range r.Pieces {
		switch {
		case p.Overflow:
			fmt.Fprintf(&sb, "  #%d %s: overflows\n", p.Index, p.Label)
		case !p.Valid && p.Violation != nil:
			fmt.Fprintf(&sb, "  #%d %s: fails the equation on %v\n", p.Index, p.Label, *p.Violation)
		case !p.Valid:
			fmt.Fprintf(&sb, "  #%d %s: invalid\n", p.Index, p.Label)
		}
	}
	for _, g := range r.Gaps {
		fmt.Fprintf(&sb, "  gap %v\n", g)
	}
	for _, c := range r.Conflicts {
		fmt.Fprintf(&sb, "  #%d and #%d disagree at x=%s\n", c.A, c.B, odeglue.FormatNumber(c.X))
	}
	for _, j := range r.Junctions {
		switch {
		case !j.Continuous:
			fmt.Fprintf(&sb, "  jump at x=%s\n", odeglue.FormatNumber(j.X))
		case !j.Differentiable:
			fmt.Fprintf(&sb, "  corner at x=%s\n", odeglue.FormatNumber(j.X))
		}
	}
	return sb.String()
}

// Residual returns x·y' − 2y + 6x⁴√y. Negative y is treated as 0 under
// the root.
func Residual(x, y, dy float64) float64 {
	x2 := x * x
	return x*dy - 2*y + 6*x2*x2*math.Sqrt(math.Max(y, 0))
}

// residualScale is the magnitude the residual is compared against.
func residualScale(x, y, dy float64) float64 {
	x2 := x * x
	return math.Abs(x*dy) + math.Abs(2*y) + math.Abs(6*x2*x2*math.Sqrt(math.Max(y, 0)))
}

type span struct {
	index  int
	iv     Interval
	piece  odeglue.Piece
	points []odeglue.Point
}

// Check analyses pieces in catalog order. It never fails; pieces that
// cannot be evaluated are reported invalid.
func Check(pieces []odeglue.Piece, opts ...Option) Report {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := Report{
		Interval:  o.interval,
		Pieces:    make([]PieceReport, len(pieces)),
		Gaps:      []Interval{},
		Conflicts: []Conflict{},
		Junctions: []Junction{},
	}

	var curves []span
	for i, p := range pieces {
		pr, sp := o.checkPiece(i, p)
		r.Pieces[i] = pr
		if sp != nil {
			curves = append(curves, *sp)
		}
	}
	o.checkPoints(pieces, curves, r.Pieces)

	r.InitialCondition = o.initialCondition(pieces, curves)
	r.Gaps = o.gaps(curves, r.Pieces)
	r.Conflicts = o.conflicts(curves)
	r.Junctions = o.junctions(curves)

	odeglue.Logger().Debug("analysis: checked pieces",
		"pieces", len(pieces), "gaps", len(r.Gaps), "conflicts", len(r.Conflicts),
		"junctions", len(r.Junctions), "solved", r.Solved())
	return r
}

func (o options) close(a, b float64) bool {
	return math.Abs(a-b) <= o.tol*(1+math.Abs(a)+math.Abs(b))
}

// checkPiece evaluates one piece. It returns the span for curve pieces
// that reach into the interval.
func (o options) checkPiece(i int, p odeglue.Piece) (PieceReport, *span) {
	pr := PieceReport{Index: i, Kind: p.Kind(), Label: p.DisplayLabel()}
	switch {
	case p.Kind() == odeglue.KindPoint:
		pr.Valid = true
		return pr, nil
	case !p.Kind().IsCurve():
		return pr, nil
	}

	from, to, _ := o.ev.Domain(p)
	lo, hi := math.Max(math.Min(from, to), o.interval.Lo), math.Min(math.Max(from, to), o.interval.Hi)
	pr.Valid = true
	if lo > hi {
		return pr, nil
	}
	pr.Covers = &Interval{Lo: lo, Hi: hi}

	tr := o.ev.Evaluate(p)
	var inside []odeglue.Point
	for _, pt := range tr.Points {
		if !pr.Covers.Contains(pt.X) {
			continue
		}
		inside = append(inside, pt)
		if !pt.IsFinite() {
			pr.Overflow = true
			pr.Valid = false
			continue
		}
		dy := odeglue.Derivative(p, pt.X)
		res := math.Abs(Residual(pt.X, pt.Y, dy))
		if math.IsNaN(res) || math.IsInf(res, 0) {
			pr.Overflow = true
			pr.Valid = false
			continue
		}
		pr.MaxResidual = math.Max(pr.MaxResidual, res)
		if res > o.tol*(1+residualScale(pt.X, pt.Y, dy)) {
			pr.Valid = false
			if pr.Violation == nil {
				pr.Violation = &Interval{Lo: pt.X, Hi: pt.X}
			}
			pr.Violation.Lo = math.Min(pr.Violation.Lo, pt.X)
			pr.Violation.Hi = math.Max(pr.Violation.Hi, pt.X)
		}
	}
	return pr, &span{index: i, iv: *pr.Covers, piece: p, points: inside}
}

// checkPoints invalidates marked points that lie off a curve piece drawn
// through their x.
func (o options) checkPoints(pieces []odeglue.Piece, curves []span, reports []PieceReport) {
	for i, p := range pieces {
		q, ok := p.Params.(odeglue.InitialPoint)
		if !ok {
			continue
		}
		for _, c := range curves {
			if c.iv.Contains(q.X) && !o.close(odeglue.Value(c.piece, q.X), q.Y) {
				reports[i].Valid = false
				break
			}
		}
	}
}

func (o options) initialCondition(pieces []odeglue.Piece, curves []span) bool {
	if !o.interval.Contains(0) {
		return true
	}
	for _, p := range pieces {
		if q, ok := p.Params.(odeglue.InitialPoint); ok && o.close(q.X, 0) && o.close(q.Y, 0) {
			return true
		}
	}
	for _, c := range curves {
		if c.iv.Contains(0) && o.close(odeglue.Value(c.piece, 0), 0) {
			return true
		}
	}
	return false
}

// gaps returns the parts of the interval no valid curve piece covers.
func (o options) gaps(curves []span, reports []PieceReport) []Interval {
	var covered []Interval
	for _, c := range curves {
		if reports[c.index].Valid {
			covered = append(covered, c.iv)
		}
	}
	slices.SortFunc(covered, func(a, b Interval) int {
		switch {
		case a.Lo < b.Lo:
			return -1
		case a.Lo > b.Lo:
			return 1
		}
		return 0
	})

	gaps := []Interval{}
	at := o.interval.Lo
	for _, iv := range covered {
		if iv.Lo > at && !o.close(iv.Lo, at) {
			gaps = append(gaps, Interval{Lo: at, Hi: iv.Lo})
		}
		at = math.Max(at, iv.Hi)
	}
	if at < o.interval.Hi && !o.close(at, o.interval.Hi) {
		gaps = append(gaps, Interval{Lo: at, Hi: o.interval.Hi})
	}
	return gaps
}

// conflicts compares every pair of overlapping curve pieces at the ends
// and middle of their overlap.
func (o options) conflicts(curves []span) []Conflict {
	out := []Conflict{}
	for i := range curves {
		for j := i + 1; j < len(curves); j++ {
			a, b := curves[i], curves[j]
			lo, hi := math.Max(a.iv.Lo, b.iv.Lo), math.Min(a.iv.Hi, b.iv.Hi)
			if lo > hi {
				continue
			}
			for _, x := range []float64{lo, (lo + hi) / 2, hi} {
				if !o.close(odeglue.Value(a.piece, x), odeglue.Value(b.piece, x)) {
					out = append(out, Conflict{A: a.index, B: b.index, X: x})
					break
				}
			}
		}
	}
	return out
}

// junctions finds curve pieces that end where another begins, in order
// of x, and compares values and slopes there.
func (o options) junctions(curves []span) []Junction {
	sorted := slices.Clone(curves)
	slices.SortStableFunc(sorted, func(a, b span) int {
		switch {
		case a.iv.Lo < b.iv.Lo:
			return -1
		case a.iv.Lo > b.iv.Lo:
			return 1
		}
		return 0
	})

	out := []Junction{}
	for i := range sorted {
		for j := range sorted {
			a, b := sorted[i], sorted[j]
			if i == j || a.iv.Len() == 0 || b.iv.Len() == 0 {
				continue
			}
			if !o.close(a.iv.Hi, b.iv.Lo) {
				continue
			}
			x := b.iv.Lo
			if x == o.interval.Lo || x == o.interval.Hi {
				continue
			}
			jn := Junction{X: x, Left: a.index, Right: b.index}
			jn.Continuous = o.close(odeglue.Value(a.piece, x), odeglue.Value(b.piece, x))
			jn.Differentiable = jn.Continuous &&
				o.close(odeglue.Derivative(a.piece, x), odeglue.Derivative(b.piece, x))
			out = append(out, jn)
		}
	}
	return out
}
