package odeglue

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// must unwraps a constructor result in tests that only use valid parameters.
func must(p Piece, err error) Piece {
	if err != nil {
		panic(err)
	}
	return p
}
