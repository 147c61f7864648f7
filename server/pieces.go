package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gogpu/odeglue"
)

// pieceRequest is the body of POST /sessions/{id}/pieces:
//
//	{"kind": "zero", "a": -1, "b": 1}
//	{"kind": "positive", "x0": 1, "limit": 2}
//	{"kind": "negative", "x0": -1.5}
//	{"kind": "point", "x": 0, "y": 0}
//
// Colors are fixed per kind; a "color" field is an unknown field and is
// rejected. Bodies carrying a "type" field are read as the legacy
// dictionary format instead.
type pieceRequest struct {
	Kind  string   `json:"kind"`
	A     *float64 `json:"a"`
	B     *float64 `json:"b"`
	X0    *float64 `json:"x0"`
	Limit *float64 `json:"limit"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
}

func decodePiece(body []byte, tb odeglue.Toolbox) (odeglue.Piece, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return odeglue.Piece{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if probe.Type != "" {
		return odeglue.DecodeLegacy(body)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	var req pieceRequest
	if err := dec.Decode(&req); err != nil {
		return odeglue.Piece{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return odeglue.Piece{}, fmt.Errorf("invalid JSON: trailing data")
	}

	kind, err := odeglue.ParseKind(req.Kind)
	if err != nil {
		return odeglue.Piece{}, err
	}
	args, err := req.args(kind)
	if err != nil {
		return odeglue.Piece{}, err
	}
	return tb.Build(kind, args...)
}

func (req pieceRequest) args(kind odeglue.Kind) ([]float64, error) {
	need := func(names string, vs ...*float64) ([]float64, error) {
		out := make([]float64, len(vs))
		for i, v := range vs {
			if v == nil {
				return nil, fmt.Errorf("%s needs %s: %w", kind, names, odeglue.ErrMissingField)
			}
			out[i] = *v
		}
		return out, nil
	}
	switch kind {
	case odeglue.KindZero:
		return need("a and b", req.A, req.B)
	case odeglue.KindPositive, odeglue.KindNegative:
		args, err := need("x0", req.X0)
		if err == nil && req.Limit != nil {
			args = append(args, *req.Limit)
		}
		return args, err
	case odeglue.KindPoint:
		return need("x and y", req.X, req.Y)
	}
	return nil, fmt.Errorf("%w: %v", odeglue.ErrUnknownKind, kind)
}

// pieceJSON is the wire form of a stored piece.
type pieceJSON struct {
	Kind        odeglue.Kind `json:"kind"`
	A           *float64     `json:"a,omitempty"`
	B           *float64     `json:"b,omitempty"`
	X0          *float64     `json:"x0,omitempty"`
	Limit       *float64     `json:"limit,omitempty"`
	X           *float64     `json:"x,omitempty"`
	Y           *float64     `json:"y,omitempty"`
	Label       string       `json:"label"`
	LaTeX       string       `json:"latex"`
	Description string       `json:"description"`
	Color       string       `json:"color"`
	Version     int          `json:"version"`
}

func encodePiece(p odeglue.Piece) pieceJSON {
	out := pieceJSON{
		Kind:        p.Kind(),
		Label:       p.DisplayLabel(),
		LaTeX:       p.LaTeX(),
		Description: p.DisplayDescription(),
		Color:       odeglue.HexColor(p.Color),
		Version:     p.Version,
	}
	ptr := func(v float64) *float64 { return &v }
	switch q := p.Params.(type) {
	case odeglue.ZeroSegment:
		out.A, out.B = ptr(q.A), ptr(q.B)
	case odeglue.PositiveBranch:
		out.X0 = ptr(q.X0)
		if q.Limit != 0 {
			out.Limit = ptr(q.Limit)
		}
	case odeglue.NegativeBranch:
		out.X0 = ptr(q.X0)
		if q.Limit != 0 {
			out.Limit = ptr(q.Limit)
		}
	case odeglue.InitialPoint:
		out.X, out.Y = ptr(q.X), ptr(q.Y)
	}
	return out
}
