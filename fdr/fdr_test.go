package fdr

import (
	"math"
	"testing"
)

func TestBonferroniThreshold(t *testing.T) {
	if got := BonferroniThreshold(0.05, 100); math.Abs(got-5e-4) > 1e-15 {
		t.Fatalf("Got %g", got)
	}

	if got := BonferroniThreshold(0.05, 0); got != 0 {
		t.Fatalf("Expected 0 for no tests, got %g", got)
	}
}

// Truth values calculated with R's p.adjust(p, method = "BH")
func TestBenjaminiHochberg(t *testing.T) {
	for _, v := range []struct {
		P []float64
		Q []float64
	}{
		{
			[]float64{0.01, 0.04, 0.03, 0.005},
			[]float64{0.02, 0.04, 0.04, 0.02},
		},
		{
			[]float64{0.5, 0.9, 0.01},
			[]float64{0.75, 0.9, 0.03},
		},
		{
			[]float64{0.8, 0.9},
			[]float64{0.9, 0.9},
		},
		{
			[]float64{},
			[]float64{},
		},
	} {
		q := BenjaminiHochberg(v.P)
		if len(q) != len(v.Q) {
			t.Fatalf("%v: got %d values", v.P, len(q))
		}
		for i := range q {
			if math.Abs(q[i]-v.Q[i]) > 1e-12 {
				t.Fatalf("%v: got %v, expected %v", v.P, q, v.Q)
			}
		}
	}
}

func TestBenjaminiHochbergLeavesInputAlone(t *testing.T) {
	p := []float64{0.3, 0.1, 0.2}
	BenjaminiHochberg(p)

	if p[0] != 0.3 || p[1] != 0.1 || p[2] != 0.2 {
		t.Fatalf("Input was modified: %v", p)
	}
}
