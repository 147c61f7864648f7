package odeglue

import (
	"strings"

	"github.com/gogpu/gg"
)

// Kind colors. Green follows the conventional plotting green (#008000)
// rather than pure RGB green, which is unreadable on white.
var (
	ColorZero     = gg.Black
	ColorPositive = gg.Blue
	ColorNegative = gg.Red
	ColorPoint    = gg.Hex("#008000")
)

// KindColor returns the fixed display color of a kind.
func KindColor(k Kind) gg.RGBA {
	switch k {
	case KindZero:
		return ColorZero
	case KindPositive:
		return ColorPositive
	case KindNegative:
		return ColorNegative
	case KindPoint:
		return ColorPoint
	}
	return gg.RGB(0.5, 0.5, 0.5)
}

// KindColorName returns the color name used by the dictionary format.
func KindColorName(k Kind) string {
	switch k {
	case KindZero:
		return "black"
	case KindPositive:
		return "blue"
	case KindNegative:
		return "red"
	case KindPoint:
		return "green"
	}
	return "gray"
}

// ParseColor resolves a color name or a "#rgb" or "#rrggbb" hex string.
// Unknown names and malformed hex report false.
func ParseColor(s string) (gg.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if h, ok := strings.CutPrefix(s, "#"); ok {
		if !isHexColor(h) {
			return gg.RGBA{}, false
		}
		return gg.Hex(s), true
	}
	switch s {
	case "black":
		return ColorZero, true
	case "blue":
		return ColorPositive, true
	case "red":
		return ColorNegative, true
	case "green":
		return ColorPoint, true
	case "gray", "grey":
		return gg.RGB(0.5, 0.5, 0.5), true
	}
	return gg.RGBA{}, false
}

func isHexColor(h string) bool {
	if len(h) != 3 && len(h) != 6 {
		return false
	}
	for _, c := range h {
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// HexColor formats c as "#rrggbb".
func HexColor(c gg.RGBA) string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []float64{c.R, c.G, c.B} {
		n := int(clamp01(v)*255 + 0.5)
		b[1+2*i] = digits[n>>4]
		b[2+2*i] = digits[n&0x0f]
	}
	return string(b)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
