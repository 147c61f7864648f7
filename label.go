package odeglue

import (
	"fmt"
	"strconv"
)

// DescriptionPlaceholder stands in for the description of pieces that were
// stored without one.
const DescriptionPlaceholder = "(no description)"

// FormatNumber formats v in the shortest form that round-trips, so that
// equal parameters always produce equal labels (1.0 formats as "1").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func branchLabel(x0 float64) string {
	return fmt.Sprintf("y = x^2(x^3 - (%s)^3)^2", FormatNumber(x0))
}

func branchLaTeX(x0 float64) string {
	return fmt.Sprintf("y = x^{2}(x^{3} - (%s)^{3})^{2}", FormatNumber(x0))
}

func (ZeroSegment) label() string { return "y = 0" }
func (ZeroSegment) latex() string { return "y = 0" }

func (b PositiveBranch) label() string { return branchLabel(b.X0) }
func (b PositiveBranch) latex() string { return branchLaTeX(b.X0) }

func (b NegativeBranch) label() string { return branchLabel(b.X0) }
func (b NegativeBranch) latex() string { return branchLaTeX(b.X0) }

func (p InitialPoint) label() string {
	return fmt.Sprintf("y(%s) = %s", FormatNumber(p.X), FormatNumber(p.Y))
}

func (p InitialPoint) latex() string {
	return fmt.Sprintf("y(%s) = %s", FormatNumber(p.X), FormatNumber(p.Y))
}

// Label returns the formula label for params. It is the only place labels
// are built, which keeps legend deduplication by string equality sound.
func Label(params Params) string {
	if params == nil {
		return ""
	}
	return params.label()
}
