package server

import (
	"golang.org/x/text/language"

	"github.com/gogpu/odeglue"
	"github.com/gogpu/odeglue/plot"
)

const (
	// DefaultMaxBody caps request bodies at 1 MiB.
	DefaultMaxBody = 1 << 20
	// DefaultMaxSize caps the plot size a request may ask for.
	DefaultMaxSize = 4096
)

// Option configures a Server.
type Option func(*options)

type options struct {
	ev      *odeglue.Evaluator
	plot    []plot.Option
	lang    language.Tag
	maxBody int64
	maxSize int
}

func defaultOptions() options {
	return options{
		ev:      odeglue.NewEvaluator(),
		lang:    language.English,
		maxBody: DefaultMaxBody,
		maxSize: DefaultMaxSize,
	}
}

// WithEvaluator sets the evaluator used for plots and analysis.
func WithEvaluator(ev *odeglue.Evaluator) Option {
	return func(o *options) {
		if ev != nil {
			o.ev = ev
		}
	}
}

// WithPlotOptions sets the options every plot is rendered with.
func WithPlotOptions(opts ...plot.Option) Option {
	return func(o *options) {
		o.plot = append(o.plot, opts...)
	}
}

// WithLanguage sets the language of sessions created without one.
func WithLanguage(lang language.Tag) Option {
	return func(o *options) {
		o.lang = lang
	}
}

// WithMaxBody sets the request body limit in bytes.
func WithMaxBody(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBody = n
		}
	}
}
