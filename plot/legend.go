package plot

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/odeglue"
)

// LegendEntry is one line of the plot legend.
type LegendEntry struct {
	Label  string
	Color  gg.RGBA
	Marker bool
}

// Legend returns one entry per distinct label, in first-seen order. When
// several traces share a label the first one's color and style win.
// Traces without a label are left out.
func Legend(traces []odeglue.Trace) []LegendEntry {
	seen := make(map[string]bool, len(traces))
	var entries []LegendEntry
	for _, t := range traces {
		if t.Label == "" || seen[t.Label] {
			continue
		}
		seen[t.Label] = true
		entries = append(entries, LegendEntry{Label: t.Label, Color: t.Color, Marker: t.Marker})
	}
	return entries
}
