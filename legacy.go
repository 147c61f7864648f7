package odeglue

import (
	"encoding/json"
	"errors"
	"fmt"
)

// legacyPiece mirrors the dictionary shape stored by the original session
// state. Every field is optional on the wire.
type legacyPiece struct {
	Type  string    `json:"type"`
	Range []float64 `json:"range"`
	X0    *float64  `json:"x0"`
	X     *float64  `json:"x"`
	Y     *float64  `json:"y"`
	Color string    `json:"color"`
	Label string    `json:"label"`
	Desc  string    `json:"desc"`
}

// DecodeLegacy decodes one piece stored in the dictionary format
//
//	{"type": "right", "x0": 1, "range": [1, 2], "color": "blue",
//	 "label": "$y = ...$", "desc": "..."}
//
// Types are "zero", "right", "left" and "point". Parameters go through the
// same checks as [Toolbox.Build] and the same errors are returned. A missing
// description is replaced by [DescriptionPlaceholder]. Stored labels and
// colors are replaced by the canonical label and the kind color so that
// legend deduplication stays consistent with freshly built pieces. Decoded
// pieces carry version 0.
func DecodeLegacy(data []byte) (Piece, error) {
	var lp legacyPiece
	if err := json.Unmarshal(data, &lp); err != nil {
		return Piece{}, fmt.Errorf("odeglue: decode legacy piece: %w", err)
	}
	return lp.piece()
}

// DecodeLegacyList decodes a JSON array of legacy pieces. Entries that fail
// to decode are skipped; the returned error joins the failures and the
// slice holds every entry that decoded.
func DecodeLegacyList(data []byte) ([]Piece, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("odeglue: decode legacy list: %w", err)
	}
	pieces := make([]Piece, 0, len(raw))
	var errs []error
	for i, r := range raw {
		p, err := DecodeLegacy(r)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		pieces = append(pieces, p)
	}
	return pieces, errors.Join(errs...)
}

func (lp legacyPiece) piece() (Piece, error) {
	kind, err := ParseKind(lp.Type)
	if err != nil {
		return Piece{}, err
	}

	var args []float64
	switch kind {
	case KindZero:
		if len(lp.Range) < 2 {
			return Piece{}, fmt.Errorf("zero piece range: %w", ErrMissingField)
		}
		args = lp.Range[:2]
	case KindPositive, KindNegative:
		if lp.X0 == nil {
			return Piece{}, fmt.Errorf("%s piece x0: %w", kind, ErrMissingField)
		}
		args = []float64{*lp.X0}
		// The original stored [x0, limit] for right branches and
		// [limit, x0] for left ones.
		if len(lp.Range) == 2 {
			if kind == KindPositive {
				args = append(args, lp.Range[1])
			} else {
				args = append(args, lp.Range[0])
			}
		}
	case KindPoint:
		if lp.X == nil || lp.Y == nil {
			return Piece{}, fmt.Errorf("point piece x/y: %w", ErrMissingField)
		}
		args = []float64{*lp.X, *lp.Y}
	}

	p, err := defaultToolbox.Build(kind, args...)
	if err != nil {
		return Piece{}, fmt.Errorf("odeglue: legacy %s piece: %w", lp.Type, err)
	}
	p.Version = 0
	p.Description = lp.Desc
	if lp.Desc == "" {
		p.Description = DescriptionPlaceholder
		Logger().Warn("odeglue: legacy piece without description", "kind", kind)
	}
	if c, ok := ParseColor(lp.Color); ok && HexColor(c) != HexColor(p.Color) {
		Logger().Warn("odeglue: legacy piece color ignored", "kind", kind, "color", lp.Color)
	}
	return p, nil
}
