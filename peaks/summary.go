package peaks

import (
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/gwasmisc/gwasmisc"
	"github.com/gwasmisc/gwasmisc/pvalue"
	"github.com/montanaflynn/stats"
)

// ChromSummary describes the picking outcome on one chromosome.
type ChromSummary struct {
	Chromosome   string `csv:"CHROM"`
	Hits         int    `csv:"N_HITS"`
	Significant  int    `csv:"N_SIGNIFICANT"`
	Loci         int    `csv:"N_LOCI"`
	BestP        string `csv:"BEST_P"`
	MedianLocusP string `csv:"MEDIAN_LOCUS_P"`
}

// Summarize counts hits and loci per chromosome. Chromosomes are in natural
// order. na is written where a statistic is undefined. The median locus P is
// taken on the -log10 scale, so P values beyond float64 range still count.
func Summarize(hits, loci []Hit, opts Options, na string) []ChromSummary {
	byChrom := make(map[string]*ChromSummary)
	best := make(map[string]Hit)
	locusScores := make(map[string][]float64)
	minScore := pvalue.ToNegLog10(opts.MinP)

	get := func(chrom string) *ChromSummary {
		s, exists := byChrom[chrom]
		if !exists {
			s = &ChromSummary{Chromosome: chrom}
			byChrom[chrom] = s
		}
		return s
	}

	for _, h := range hits {
		s := get(h.Chromosome)
		s.Hits++
		if h.NegLog10P > minScore {
			s.Significant++
		}

		if b, exists := best[h.Chromosome]; !exists || h.NegLog10P > b.NegLog10P {
			best[h.Chromosome] = h
		}
	}

	for _, l := range loci {
		get(l.Chromosome).Loci++
		locusScores[l.Chromosome] = append(locusScores[l.Chromosome], l.NegLog10P)
	}

	out := make([]ChromSummary, 0, len(byChrom))
	for chrom, s := range byChrom {
		s.BestP = na
		if b, exists := best[chrom]; exists {
			s.BestP = formatP(b.P, b.NegLog10P)
		}

		s.MedianLocusP = na
		if median, err := stats.Median(locusScores[chrom]); err == nil {
			s.MedianLocusP = formatP(pvalue.FromNegLog10(median), median)
		}

		out = append(out, *s)
	}

	sort.Slice(out, func(i, j int) bool {
		return gwasmisc.ChromLess(out[i].Chromosome, out[j].Chromosome)
	})

	return out
}

// formatP writes p, or the exact mantissa/exponent form when p underflowed.
func formatP(p, negLog10P float64) string {
	if p > 0 || math.IsInf(negLog10P, 1) {
		return pvalue.Format(p)
	}

	s, err := pvalue.ScientificFromNegLog10(strconv.FormatFloat(negLog10P, 'f', -1, 64))
	if err != nil {
		return pvalue.Format(p)
	}

	return s
}

// WriteSummary writes summaries as a tab-delimited table with a header.
func WriteSummary(w io.Writer, summaries []ChromSummary) error {
	cw := gocsv.DefaultCSVWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(&summaries, cw); err != nil {
		return pfx.Err(err)
	}

	cw.Flush()
	return cw.Error()
}
