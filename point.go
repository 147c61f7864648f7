package odeglue

import "math"

// Point is one sampled (x, y) coordinate of a trace.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// linspace returns n points evenly spaced from a to b inclusive, in the
// order given. The last value is exactly b. n < 1 is treated as 1, and a
// degenerate range yields the single value a.
func linspace(a, b float64, n int) []float64 {
	if n < 1 || a == b {
		n = 1
	}
	xs := make([]float64, n)
	if n == 1 {
		xs[0] = a
		return xs
	}
	step := (b - a) / float64(n-1)
	for i := range xs {
		xs[i] = a + step*float64(i)
	}
	xs[n-1] = b
	return xs
}
