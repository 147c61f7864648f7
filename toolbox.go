package odeglue

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Toolbox builds validated pieces. Descriptions are rendered once, in the
// toolbox language, when a piece is built.
//
// Every constructor either returns a complete piece or an error; a failed
// call never yields a partially built piece.
type Toolbox struct {
	lang    language.Tag
	printer *message.Printer
}

// NewToolbox returns a toolbox producing descriptions in lang. Unsupported
// languages fall back to English.
func NewToolbox(lang language.Tag) Toolbox {
	return Toolbox{
		lang:    lang,
		printer: message.NewPrinter(lang, message.Catalog(messages)),
	}
}

var defaultToolbox = NewToolbox(language.English)

// Language returns the language descriptions are written in.
func (t Toolbox) Language() language.Tag {
	if t.printer == nil {
		return language.English
	}
	return t.lang
}

func (t Toolbox) sprintf(key string, args ...any) string {
	p := t.printer
	if p == nil {
		p = defaultToolbox.printer
	}
	return p.Sprintf(key, args...)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (t Toolbox) build(params Params, desc string) Piece {
	return Piece{
		Params:      params,
		Color:       KindColor(params.Kind()),
		Label:       params.label(),
		Description: desc,
		Version:     SchemaVersion,
	}
}

// Zero builds the zero solution on the range from a to b. Any order of a
// and b is accepted.
func (t Toolbox) Zero(a, b float64) (Piece, error) {
	if !finite(a, b) {
		return Piece{}, fmt.Errorf("zero segment [%v, %v]: %w", a, b, ErrNotFinite)
	}
	desc := t.sprintf(msgZero, FormatNumber(a), FormatNumber(b))
	return t.build(ZeroSegment{A: a, B: b}, desc), nil
}

// Positive builds a branch glued at x0 > 0 and drawn up to limit, or up to
// the view edge when limit is 0.
func (t Toolbox) Positive(x0, limit float64) (Piece, error) {
	if !finite(x0, limit) {
		return Piece{}, fmt.Errorf("positive branch x0=%v limit=%v: %w", x0, limit, ErrNotFinite)
	}
	if x0 <= 0 {
		return Piece{}, fmt.Errorf("x0=%v: %w", x0, ErrNonPositiveX0)
	}
	if limit != 0 && limit <= x0 {
		return Piece{}, fmt.Errorf("positive branch x0=%v limit=%v: %w", x0, limit, ErrBadLimit)
	}
	desc := t.sprintf(msgPositive, FormatNumber(x0))
	return t.build(PositiveBranch{X0: x0, Limit: limit}, desc), nil
}

// Negative builds a branch glued at x0 < 0 and drawn down to limit, or down
// to the view edge when limit is 0.
func (t Toolbox) Negative(x0, limit float64) (Piece, error) {
	if !finite(x0, limit) {
		return Piece{}, fmt.Errorf("negative branch x0=%v limit=%v: %w", x0, limit, ErrNotFinite)
	}
	if x0 >= 0 {
		return Piece{}, fmt.Errorf("x0=%v: %w", x0, ErrNonNegativeX0)
	}
	if limit != 0 && limit >= x0 {
		return Piece{}, fmt.Errorf("negative branch x0=%v limit=%v: %w", x0, limit, ErrBadLimit)
	}
	desc := t.sprintf(msgNegative, FormatNumber(x0))
	return t.build(NegativeBranch{X0: x0, Limit: limit}, desc), nil
}

// Point builds a marked point at (x, y).
func (t Toolbox) Point(x, y float64) (Piece, error) {
	if !finite(x, y) {
		return Piece{}, fmt.Errorf("point (%v, %v): %w", x, y, ErrNotFinite)
	}
	desc := t.sprintf(msgPoint, FormatNumber(x), FormatNumber(y))
	return t.build(InitialPoint{X: x, Y: y}, desc), nil
}

// Build dispatches to the constructor for kind. Arguments are (a, b) for
// zero, (x0[, limit]) for branches and (x, y) for points.
func (t Toolbox) Build(kind Kind, args ...float64) (Piece, error) {
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s needs %d parameters, got %d: %w", kind, n, len(args), ErrMissingField)
		}
		return nil
	}
	switch kind {
	case KindZero:
		if err := need(2); err != nil {
			return Piece{}, err
		}
		return t.Zero(args[0], args[1])
	case KindPositive, KindNegative:
		if err := need(1); err != nil {
			return Piece{}, err
		}
		var limit float64
		if len(args) > 1 {
			limit = args[1]
		}
		if kind == KindPositive {
			return t.Positive(args[0], limit)
		}
		return t.Negative(args[0], limit)
	case KindPoint:
		if err := need(2); err != nil {
			return Piece{}, err
		}
		return t.Point(args[0], args[1])
	}
	return Piece{}, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}

// NewZeroSegment builds a zero segment with an English description.
func NewZeroSegment(a, b float64) (Piece, error) { return defaultToolbox.Zero(a, b) }

// NewPositiveBranch builds a positive branch drawn to the view edge.
func NewPositiveBranch(x0 float64) (Piece, error) { return defaultToolbox.Positive(x0, 0) }

// NewNegativeBranch builds a negative branch drawn to the view edge.
func NewNegativeBranch(x0 float64) (Piece, error) { return defaultToolbox.Negative(x0, 0) }

// NewInitialPoint builds a marked point.
func NewInitialPoint(x, y float64) (Piece, error) { return defaultToolbox.Point(x, y) }
