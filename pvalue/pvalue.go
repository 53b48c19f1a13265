// Package pvalue converts between P values and the -log10(P) scale used by
// REGENIE, SAIGE and most plotting tools.
package pvalue

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// FromNegLog10 back-transforms -log10(P) to P. Values beyond float64 range
// underflow to 0.
func FromNegLog10(negLogP float64) float64 {
	return math.Pow(10, -negLogP)
}

// ToNegLog10 forward-transforms P to -log10(P). A P of 0 yields +Inf.
func ToNegLog10(p float64) float64 {
	return -math.Log10(p)
}

// ScientificFromNegLog10 renders a -log10(P) string as a BOLT-LMM style
// "[Mantissa]E[Exponent]" P value, e.g. "2.5E-310", which would underflow if
// it were computed as a float64.
func ScientificFromNegLog10(negLogPString string) (string, error) {
	negLogP, err := strconv.ParseFloat(negLogPString, 64)
	if err != nil {
		return "", fmt.Errorf("ScientificFromNegLog10: %w", err)
	}

	mantissa := math.Pow(10.0, math.Mod(-1*negLogP, 1.0))
	exponent := math.Ceil(-1 * negLogP)

	// Get the mantissa into the 1-10 range. If you don't round during this
	// comparison check, then you end up with things like "10.0E-3" when the
	// -logP is 2.001. Via https://stackoverflow.com/a/49175144/199475
	f := new(big.Float).SetMode(big.ToNearestEven).SetFloat64(mantissa)
	f = f.SetPrec(1)
	mantissaRounded, _ := f.Float64()
	if mantissaRounded < 1.0 {
		mantissa *= 10.0
		exponent -= 1.0
	}

	return fmt.Sprintf("%.1fE%.0f", mantissa, exponent), nil
}

// Format writes a float the way the rest of the toolchain expects: shortest
// round-trip representation, exponent when that is shorter.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
