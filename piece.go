package odeglue

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

// SchemaVersion is the version stamped on pieces built by a [Toolbox].
// Pieces decoded from the original dictionary format carry version 0.
const SchemaVersion = 1

// Kind identifies the variant of a [Piece].
type Kind int

const (
	// KindInvalid marks a piece without parameters. It evaluates to nothing.
	KindInvalid Kind = iota
	// KindZero is the zero solution y = 0 on [a, b].
	KindZero
	// KindPositive is the branch y = x²(x³ − x0³)² glued at x0 > 0.
	KindPositive
	// KindNegative is the branch y = x²(x³ − x0³)² glued at x0 < 0.
	KindNegative
	// KindPoint is a marked point, not a curve.
	KindPoint
)

// String returns the canonical lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindZero:
		return "zero"
	case KindPositive:
		return "positive"
	case KindNegative:
		return "negative"
	case KindPoint:
		return "point"
	default:
		return "invalid"
	}
}

// IsCurve reports whether pieces of this kind are drawn as lines.
func (k Kind) IsCurve() bool {
	return k == KindZero || k == KindPositive || k == KindNegative
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using [ParseKind].
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses a kind name. Besides the canonical names it accepts the
// short forms "pos" and "neg" and the original toolbox names "right",
// "left" and "initial".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero":
		return KindZero, nil
	case "positive", "pos", "right":
		return KindPositive, nil
	case "negative", "neg", "left":
		return KindNegative, nil
	case "point", "initial":
		return KindPoint, nil
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Params holds the kind-specific parameters of a piece. The set of
// implementations is closed: [ZeroSegment], [PositiveBranch],
// [NegativeBranch] and [InitialPoint].
type Params interface {
	Kind() Kind
	label() string
	latex() string
}

// ZeroSegment is y = 0 on the range from A to B. A > B is accepted and
// sampled in reverse.
type ZeroSegment struct {
	A, B float64
}

// PositiveBranch is y = x²(x³ − X0³)² on [X0, Limit]. A zero Limit means
// the right edge of the view.
type PositiveBranch struct {
	X0    float64
	Limit float64
}

// NegativeBranch is y = x²(x³ − X0³)² on [Limit, X0]. A zero Limit means
// the left edge of the view.
type NegativeBranch struct {
	X0    float64
	Limit float64
}

// InitialPoint marks (X, Y).
type InitialPoint struct {
	X, Y float64
}

func (ZeroSegment) Kind() Kind    { return KindZero }
func (PositiveBranch) Kind() Kind { return KindPositive }
func (NegativeBranch) Kind() Kind { return KindNegative }
func (InitialPoint) Kind() Kind   { return KindPoint }

// Piece is one user-added candidate curve segment or point. Color, Label
// and Description are fixed when the piece is built and never recomputed.
type Piece struct {
	Params      Params
	Color       gg.RGBA
	Label       string
	Description string
	Version     int
}

// Kind returns the kind of the piece parameters, or KindInvalid for a piece
// without parameters.
func (p Piece) Kind() Kind {
	if p.Params == nil {
		return KindInvalid
	}
	return p.Params.Kind()
}

// LaTeX returns the formula label of the piece in LaTeX notation.
func (p Piece) LaTeX() string {
	if p.Params == nil {
		return ""
	}
	return p.Params.latex()
}

// DisplayLabel returns the label, rebuilding it from the parameters when the
// piece came without one.
func (p Piece) DisplayLabel() string {
	if p.Label != "" || p.Params == nil {
		return p.Label
	}
	return p.Params.label()
}

// DisplayDescription returns the description or [DescriptionPlaceholder].
func (p Piece) DisplayDescription() string {
	if p.Description == "" {
		return DescriptionPlaceholder
	}
	return p.Description
}

// String implements fmt.Stringer.
func (p Piece) String() string {
	return fmt.Sprintf("%s{%s}", p.Kind(), p.DisplayLabel())
}

// X0 returns the gluing point of a branch piece.
func (p Piece) X0() (float64, bool) {
	switch q := p.Params.(type) {
	case PositiveBranch:
		return q.X0, true
	case NegativeBranch:
		return q.X0, true
	}
	return 0, false
}
