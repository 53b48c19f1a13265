package main

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/runningvariance"
	"github.com/gwasmisc/gwasmisc/fdr"
	"github.com/gwasmisc/gwasmisc/pvalue"
	"github.com/gwasmisc/gwasmisc/table"
	"github.com/montanaflynn/stats"
)

const (
	ConsequenceColumn = "Consequence"
	SymbolColumn      = "SYMBOL"
)

type Method int

const (
	MethodBonferroni Method = iota
	MethodBH
)

var methods = map[string]Method{
	"bonferroni": MethodBonferroni,
	"bh":         MethodBH,
}

func ParseMethod(s string) (Method, error) {
	m, ok := methods[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown correction method %q; expected one of %v", s, methodNames())
	}

	return m, nil
}

type filter struct {
	cfg            config
	consequenceCol int
	symbolCol      int
	idCol          int
	pCols          []int
}

func newFilter(header []string, cfg config) (*filter, error) {
	f := &filter{cfg: cfg, symbolCol: -1}

	var err error
	if f.consequenceCol, err = table.ColumnIndex(header, ConsequenceColumn); err != nil {
		return nil, err
	}

	if len(cfg.Symbols) > 0 {
		if f.symbolCol, err = table.ColumnIndex(header, SymbolColumn); err != nil {
			return nil, err
		}
	}

	if f.idCol, err = table.ColumnIndex(header, cfg.IDCol); err != nil {
		return nil, err
	}

	if len(cfg.PCols) == 0 {
		return nil, fmt.Errorf("at least one P value column is required")
	}
	if f.pCols, err = table.ColumnIndices(header, cfg.PCols, 0); err != nil {
		return nil, err
	}

	return f, nil
}

// Apply returns the rows that pass every filter, in input order.
func (f *filter) Apply(rows [][]string) ([][]string, error) {
	rows = f.byAnnotation(rows)

	pvals, err := f.pValues(rows)
	if err != nil {
		return nil, err
	}

	var pass func(col, row int) bool
	switch f.cfg.Method {
	case MethodBonferroni:
		ids := make(map[string]struct{})
		for _, row := range rows {
			ids[row[f.idCol]] = struct{}{}
		}
		cutoff := fdr.BonferroniThreshold(f.cfg.Alpha, len(ids))
		log.Printf("%d unique variants; P value cutoff is %g (-log10: %g)\n", len(ids), cutoff, pvalue.ToNegLog10(cutoff))

		pass = func(col, row int) bool {
			return pvals[col][row] < cutoff
		}
	case MethodBH:
		qvals := make([][]float64, len(pvals))
		for col, ps := range pvals {
			qvals[col] = adjustPresent(ps)
		}
		log.Printf("Keeping rows with q < %g\n", f.cfg.Alpha)

		pass = func(col, row int) bool {
			return qvals[col][row] < f.cfg.Alpha
		}
	default:
		return nil, fmt.Errorf("unknown correction method %d", f.cfg.Method)
	}

	kept := make([][]string, 0)
	best := make([]float64, 0)
	strength := runningvariance.NewRunningStat()
	for i, row := range rows {
		ok := true
		minP := math.Inf(1)
		for col := range f.pCols {
			if !pass(col, i) {
				ok = false
				break
			}
			minP = math.Min(minP, pvals[col][i])
		}

		if ok {
			kept = append(kept, row)
			best = append(best, minP)
			strength.Push(pvalue.ToNegLog10(minP))
		}
	}

	log.Printf("%d rows pass the P value filter\n", len(kept))
	if median, err := stats.Median(best); err == nil {
		log.Printf("Median of the smallest P value among kept rows: %g\n", median)
		log.Printf("-log10 of the smallest P value among kept rows: mean %.3f, SD %.3f\n", strength.Mean(), strength.StandardDeviation())
	}

	return kept, nil
}

func (f *filter) byAnnotation(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if containsAny(row[f.consequenceCol], f.cfg.Consequences) {
			continue
		}

		if f.symbolCol >= 0 && !containsAny(row[f.symbolCol], f.cfg.Symbols) {
			continue
		}

		out = append(out, row)
	}
	log.Printf("%d rows remain after consequence and gene filtering\n", len(out))

	return out
}

// pValues parses every P value column into P (not -log10 P). Missing values
// become NaN, which never passes a threshold.
func (f *filter) pValues(rows [][]string) ([][]float64, error) {
	out := make([][]float64, len(f.pCols))
	for c, col := range f.pCols {
		out[c] = make([]float64, len(rows))
		for i, row := range rows {
			if row[col] == f.cfg.NA {
				out[c][i] = math.NaN()
				continue
			}

			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("variant %s: P value %q: %w", row[f.idCol], row[col], err)
			}

			if !f.cfg.RawP {
				v = pvalue.FromNegLog10(v)
			}
			out[c][i] = v
		}
	}

	return out, nil
}

// adjustPresent BH-adjusts the non-NaN entries of p; NaN entries stay NaN.
func adjustPresent(p []float64) []float64 {
	present := make([]float64, 0, len(p))
	at := make([]int, 0, len(p))
	for i, v := range p {
		if !math.IsNaN(v) {
			present = append(present, v)
			at = append(at, i)
		}
	}

	q := make([]float64, len(p))
	for i := range q {
		q[i] = math.NaN()
	}
	for j, v := range fdr.BenjaminiHochberg(present) {
		q[at[j]] = v
	}

	return q
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}
