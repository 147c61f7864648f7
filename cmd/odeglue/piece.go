package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/odeglue"
)

// pieceFlags collects repeated -piece flags.
type pieceFlags []string

func (p *pieceFlags) String() string { return strings.Join(*p, " ") }

func (p *pieceFlags) Set(s string) error {
	*p = append(*p, s)
	return nil
}

// parsePiece builds a piece from "kind:v1,v2", e.g. "zero:-1,1", "pos:1",
// "neg:-1.5,-2" or "point:0,0".
func parsePiece(arg string, tb odeglue.Toolbox) (odeglue.Piece, error) {
	name, params, _ := strings.Cut(arg, ":")
	kind, err := odeglue.ParseKind(name)
	if err != nil {
		return odeglue.Piece{}, err
	}
	var args []float64
	if params = strings.TrimSpace(params); params != "" {
		for _, f := range strings.Split(params, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return odeglue.Piece{}, fmt.Errorf("parameter %q: %w", f, err)
			}
			args = append(args, v)
		}
	}
	return tb.Build(kind, args...)
}
