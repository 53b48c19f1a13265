// Package fdr implements multiple-testing corrections.
package fdr

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// BonferroniThreshold is the per-test significance threshold that keeps the
// family-wise error rate at alpha across n tests. With no tests nothing can be
// significant, so 0 is returned.
func BonferroniThreshold(alpha float64, n int) float64 {
	if n <= 0 {
		return 0
	}

	return alpha / float64(n)
}

// BenjaminiHochberg returns the BH-adjusted q value of each P value, in input
// order. P values must not be NaN.
func BenjaminiHochberg(p []float64) []float64 {
	m := len(p)
	q := make([]float64, m)
	if m == 0 {
		return q
	}

	sorted := make([]float64, m)
	copy(sorted, p)
	order := make([]int, m)
	floats.Argsort(sorted, order)

	running := math.Inf(1)
	for rank := m - 1; rank >= 0; rank-- {
		adjusted := sorted[rank] * float64(m) / float64(rank+1)
		if adjusted < running {
			running = adjusted
		}
		q[order[rank]] = math.Min(running, 1)
	}

	return q
}
