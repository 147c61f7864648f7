package odeglue

import (
	"errors"
	"testing"
)

func TestDecodeLegacy(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		params Params
		label  string
		desc   string
		color  string
	}{
		{
			name:   "zero",
			in:     `{"type":"zero","range":[-1,1],"color":"black","label":"$y=0$","desc":"y=0 on [-1, 1]"}`,
			params: ZeroSegment{A: -1, B: 1},
			label:  "y = 0",
			desc:   "y=0 on [-1, 1]",
			color:  "#000000",
		},
		{
			name:   "right with limit",
			in:     `{"type":"right","x0":1,"range":[1,2],"color":"blue","label":"$y = x^2(x^3 - (1.0)^3)^2$","desc":"right"}`,
			params: PositiveBranch{X0: 1, Limit: 2},
			label:  "y = x^2(x^3 - (1)^3)^2",
			desc:   "right",
			color:  "#0000ff",
		},
		{
			name:   "left without desc or color",
			in:     `{"type":"left","x0":-1,"range":[-2,-1]}`,
			params: NegativeBranch{X0: -1, Limit: -2},
			label:  "y = x^2(x^3 - (-1)^3)^2",
			desc:   DescriptionPlaceholder,
			color:  "#ff0000",
		},
		{
			name:   "stored color replaced by kind color",
			in:     `{"type":"zero","range":[0,1],"color":"#ff00ff","desc":"magenta"}`,
			params: ZeroSegment{A: 0, B: 1},
			label:  "y = 0",
			desc:   "magenta",
			color:  "#000000",
		},
		{
			name:   "point with unknown color",
			in:     `{"type":"point","x":0,"y":0,"color":"chartreuse-ish"}`,
			params: InitialPoint{X: 0, Y: 0},
			label:  "y(0) = 0",
			desc:   DescriptionPlaceholder,
			color:  "#008000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodeLegacy([]byte(tt.in))
			if err != nil {
				t.Fatalf("DecodeLegacy: %v", err)
			}
			diff(t, tt.params, p.Params)
			if p.Label != tt.label {
				t.Errorf("Label = %q, want %q", p.Label, tt.label)
			}
			if p.Description != tt.desc {
				t.Errorf("Description = %q, want %q", p.Description, tt.desc)
			}
			if got := HexColor(p.Color); got != tt.color {
				t.Errorf("Color = %s, want %s", got, tt.color)
			}
			if p.Version != 0 {
				t.Errorf("Version = %d, want 0", p.Version)
			}
		})
	}
}

func TestDecodeLegacyErrors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{`{"type":"spline"}`, ErrUnknownKind},
		{`{"range":[0,1]}`, ErrUnknownKind},
		{`{"type":"zero","range":[0]}`, ErrMissingField},
		{`{"type":"right","range":[1,2]}`, ErrMissingField},
		{`{"type":"point","x":1}`, ErrMissingField},
		{`{"type":"right","x0":-1}`, ErrNonPositiveX0},
		{`{"type":"right","x0":0}`, ErrNonPositiveX0},
		{`{"type":"left","x0":2}`, ErrNonNegativeX0},
		{`{"type":"right","x0":1,"range":[1,0.5]}`, ErrBadLimit},
		{`{"type":"left","x0":-1,"range":[-0.5,-1]}`, ErrBadLimit},
	}
	for _, tt := range tests {
		if _, err := DecodeLegacy([]byte(tt.in)); !errors.Is(err, tt.wantErr) {
			t.Errorf("DecodeLegacy(%s) error = %v, want %v", tt.in, err, tt.wantErr)
		}
	}
	if _, err := DecodeLegacy([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDecodeLegacyListSkipsBadEntries(t *testing.T) {
	in := `[
		{"type":"zero","range":[-2,0],"desc":"first"},
		{"type":"mystery"},
		{"type":"left","x0":2},
		{"type":"right","x0":0.5}
	]`
	pieces, err := DecodeLegacyList([]byte(in))
	if !errors.Is(err, ErrUnknownKind) || !errors.Is(err, ErrNonNegativeX0) {
		t.Errorf("error = %v, want ErrUnknownKind and ErrNonNegativeX0", err)
	}
	if len(pieces) != 2 {
		t.Fatalf("decoded %d pieces, want 2", len(pieces))
	}
	if pieces[0].Description != "first" || pieces[1].Kind() != KindPositive {
		t.Errorf("unexpected pieces %v", pieces)
	}

	// The surviving pieces still evaluate.
	traces := NewEvaluator().EvaluateAll(pieces)
	for i, tr := range traces {
		if tr.Empty() {
			t.Errorf("trace %d is empty", i)
		}
	}
}
