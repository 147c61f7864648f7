package analysis

import (
	"math"

	"github.com/gogpu/odeglue"
)

// Defaults for Check.
const (
	DefaultLo = -2.0
	DefaultHi = 2.0
	// DefaultTolerance is relative to the magnitude of the terms compared.
	DefaultTolerance = 1e-9
)

// Option configures Check.
type Option func(*options)

type options struct {
	ev       *odeglue.Evaluator
	interval Interval
	tol      float64
}

func defaultOptions() options {
	return options{
		ev:       odeglue.NewEvaluator(),
		interval: Interval{Lo: DefaultLo, Hi: DefaultHi},
		tol:      DefaultTolerance,
	}
}

// WithEvaluator samples pieces with ev instead of a default evaluator.
func WithEvaluator(ev *odeglue.Evaluator) Option {
	return func(o *options) {
		if ev != nil {
			o.ev = ev
		}
	}
}

// WithInterval sets the interval the problem is posed on. Reversed bounds
// are swapped; empty or non-finite intervals are ignored.
func WithInterval(lo, hi float64) Option {
	return func(o *options) {
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo == hi {
			return
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		o.interval = Interval{Lo: lo, Hi: hi}
	}
}

// WithTolerance sets the relative tolerance. Non-positive values are
// ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 && !math.IsInf(tol, 0) {
			o.tol = tol
		}
	}
}
