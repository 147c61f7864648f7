// Package odeglue assembles piecewise candidate solutions of the initial
// value problem
//
//	x·y' = 2y − 6x⁴·√y,   y(0) = 0
//
// and turns them into renderable curves.
//
// # Overview
//
// A user picks pieces from a small toolbox: the zero solution on an
// interval, a branch y = x²(x³ − x0³)² glued to the zero solution at x0, or
// a marked initial point. Pieces are appended to a [Catalog] and every
// render re-evaluates the whole catalog with an [Evaluator].
//
//	tb := odeglue.NewToolbox(language.English)
//	var cat odeglue.Catalog
//
//	zero, _ := tb.Zero(-2, 1)
//	branch, _ := tb.Positive(1, 0)
//	cat.Append(zero)
//	cat.Append(branch)
//
//	ev := odeglue.NewEvaluator(odeglue.WithSamples(200))
//	traces := ev.EvaluateAll(cat.List())
//
// The plot sub-package draws traces with github.com/gogpu/gg, the analysis
// sub-package checks whether the assembled pieces actually solve the problem.
//
// # Domains
//
// A positive branch is drawn on [x0, view max] and a negative branch on
// [view min, x0]. Either can be cut short with an explicit limit.
//
// # Concurrency
//
// [Piece], [Catalog], [Toolbox] and [Evaluator] belong to a single session
// and are not safe for concurrent mutation. [Sessions] isolates catalogs of
// concurrent sessions keyed by a UUID.
package odeglue
