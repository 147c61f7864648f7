package plot

// Defaults for the plot window and image size.
const (
	DefaultWidth  = 800
	DefaultHeight = 500
	DefaultXMin   = -2.5
	DefaultXMax   = 2.5
	// Fixed y window used when auto-scaling is off or nothing is drawn.
	DefaultYMin = -0.5
	DefaultYMax = 6.0
	// MaxAutoY caps the auto-scaled window so that one steep branch does
	// not flatten every other piece against the axis.
	MaxAutoY = 1e6
	// DefaultTitle matches the original figure title.
	DefaultTitle = "Visualization of Selected Solutions"
)

// Option configures a Plotter.
//
// Example:
//
//	p := plot.New(plot.WithSize(1600, 1000), plot.WithYRange(-0.5, 6))
type Option func(*options)

type options struct {
	width, height int
	xmin, xmax    float64
	ymin, ymax    float64
	autoScale     bool
	title         string
}

func defaultOptions() options {
	return options{
		width:     DefaultWidth,
		height:    DefaultHeight,
		xmin:      DefaultXMin,
		xmax:      DefaultXMax,
		ymin:      DefaultYMin,
		ymax:      DefaultYMax,
		autoScale: true,
		title:     DefaultTitle,
	}
}

// WithSize sets the image size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// WithXRange sets the x window. Empty or reversed ranges are ignored.
func WithXRange(min, max float64) Option {
	return func(o *options) {
		if min < max {
			o.xmin, o.xmax = min, max
		}
	}
}

// WithYRange fixes the y window and turns auto-scaling off. Empty or
// reversed ranges are ignored.
func WithYRange(min, max float64) Option {
	return func(o *options) {
		if min < max {
			o.ymin, o.ymax = min, max
			o.autoScale = false
		}
	}
}

// WithAutoScale fits the y window to the drawn samples. It is the default.
func WithAutoScale() Option {
	return func(o *options) {
		o.autoScale = true
	}
}

// WithTitle sets the plot title. An empty title draws none.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}
