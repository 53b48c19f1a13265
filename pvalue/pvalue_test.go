package pvalue

import (
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, p := range []float64{1, 0.05, 1e-6, 5e-8, 1e-300} {
		if got := FromNegLog10(ToNegLog10(p)); math.Abs(got-p)/p > 1e-9 {
			t.Fatalf("P %g round-tripped to %g", p, got)
		}
	}

	if !math.IsInf(ToNegLog10(0), 1) {
		t.Error("Expected +Inf for P of 0")
	}
}

func TestScientificFromNegLog10(t *testing.T) {
	for _, v := range []struct {
		In       string
		Expected string
	}{
		{"2", "1.0E-2"},
		{"7.30103", "5.0E-8"},
		{"2.001", "1.0E-2"},
		{"310", "1.0E-310"},
	} {
		got, err := ScientificFromNegLog10(v.In)
		if err != nil {
			t.Fatal(err)
		}
		if got != v.Expected {
			t.Fatalf("%+v: got %s", v, got)
		}
	}

	if _, err := ScientificFromNegLog10("NA"); err == nil {
		t.Error("Expected an error for a non-numeric value")
	}
}
