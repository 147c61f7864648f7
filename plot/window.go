package plot

import (
	"math"

	"github.com/gogpu/odeglue"
)

// Window is the visible region of the plot in data coordinates.
type Window struct {
	XMin, XMax float64
	YMin, YMax float64
}

// window returns the region traces are drawn in. With auto-scaling the
// y range covers every finite sample inside the x window plus 5% padding,
// always includes y = 0 and never exceeds MaxAutoY.
func (o options) window(traces []odeglue.Trace) Window {
	w := Window{XMin: o.xmin, XMax: o.xmax, YMin: o.ymin, YMax: o.ymax}
	if !o.autoScale {
		return w
	}

	lo, hi := 0.0, 0.0
	found := false
	for _, t := range traces {
		for _, p := range t.Points {
			if !p.IsFinite() || p.X < o.xmin || p.X > o.xmax {
				continue
			}
			found = true
			lo = math.Min(lo, p.Y)
			hi = math.Max(hi, p.Y)
		}
	}
	if !found {
		return w
	}
	hi = math.Min(hi, MaxAutoY)
	lo = math.Max(lo, -MaxAutoY)
	if hi-lo < 1 {
		// Only flat pieces: keep the familiar fixed window.
		w.YMin = math.Min(o.ymin, lo-0.5)
		w.YMax = math.Max(o.ymax, hi+0.5)
		return w
	}
	pad := 0.05 * (hi - lo)
	w.YMin, w.YMax = lo-pad, hi+pad
	return w
}

// niceStep returns a tick spacing of 1, 2 or 5 times a power of ten that
// splits span into roughly n intervals.
func niceStep(span float64, n int) float64 {
	if span <= 0 || n <= 0 {
		return 1
	}
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f < 1.5:
		return mag
	case f < 3:
		return 2 * mag
	case f < 7:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// ticks returns the multiples of niceStep inside [min, max].
func ticks(min, max float64, n int) []float64 {
	step := niceStep(max-min, n)
	start := math.Ceil(min / step)
	var ts []float64
	for i := 0; i < 1000; i++ {
		v := (start + float64(i)) * step
		if v > max+step*1e-9 {
			break
		}
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ts = append(ts, v)
	}
	return ts
}
