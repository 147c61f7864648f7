package odeglue

// Default evaluator settings.
const (
	DefaultSamples = 200
	DefaultViewMin = -2.5
	DefaultViewMax = 2.5
)

// EvaluatorOption configures an Evaluator during creation.
//
// Example:
//
//	ev := odeglue.NewEvaluator(
//	    odeglue.WithSamples(400),
//	    odeglue.WithView(-3, 3),
//	)
type EvaluatorOption func(*evaluatorOptions)

type evaluatorOptions struct {
	samples          int
	viewMin, viewMax float64
}

func defaultEvaluatorOptions() evaluatorOptions {
	return evaluatorOptions{
		samples: DefaultSamples,
		viewMin: DefaultViewMin,
		viewMax: DefaultViewMax,
	}
}

// WithSamples sets the number of samples per curve piece. Values below 2
// are raised to 2; degenerate ranges still yield a single sample.
func WithSamples(n int) EvaluatorOption {
	return func(o *evaluatorOptions) {
		if n < 2 {
			n = 2
		}
		o.samples = n
	}
}

// WithView sets the x bounds that branches extend to when they carry no
// explicit limit. Reversed bounds are swapped; an empty or non-finite window
// is ignored.
func WithView(min, max float64) EvaluatorOption {
	return func(o *evaluatorOptions) {
		if !finite(min, max) || min == max {
			return
		}
		if min > max {
			min, max = max, min
		}
		o.viewMin, o.viewMax = min, max
	}
}
