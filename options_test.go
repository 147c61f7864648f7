package odeglue

import "testing"

func TestNewEvaluatorDefaults(t *testing.T) {
	ev := NewEvaluator()
	if ev.Samples() != DefaultSamples {
		t.Errorf("Samples() = %d, want %d", ev.Samples(), DefaultSamples)
	}
	if lo, hi := ev.View(); lo != DefaultViewMin || hi != DefaultViewMax {
		t.Errorf("View() = [%v, %v], want [%v, %v]", lo, hi, DefaultViewMin, DefaultViewMax)
	}
}

func TestEvaluatorOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []EvaluatorOption
		wantSamples int
		wantLo      float64
		wantHi      float64
	}{
		{"samples", []EvaluatorOption{WithSamples(500)}, 500, -2.5, 2.5},
		{"samples raised to two", []EvaluatorOption{WithSamples(0)}, 2, -2.5, 2.5},
		{"view", []EvaluatorOption{WithView(-3, 4)}, DefaultSamples, -3, 4},
		{"reversed view", []EvaluatorOption{WithView(2, -1)}, DefaultSamples, -1, 2},
		{"empty view ignored", []EvaluatorOption{WithView(1, 1)}, DefaultSamples, -2.5, 2.5},
		{"last option wins", []EvaluatorOption{WithSamples(10), WithSamples(20)}, 20, -2.5, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := NewEvaluator(tt.opts...)
			if ev.Samples() != tt.wantSamples {
				t.Errorf("Samples() = %d, want %d", ev.Samples(), tt.wantSamples)
			}
			if lo, hi := ev.View(); lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("View() = [%v, %v], want [%v, %v]", lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}
