// Package peaks picks independent GWAS loci: the most significant hit on a
// chromosome is kept, everything within a fixed distance of it is discarded,
// and the process repeats until nothing is left.
package peaks

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/gwasmisc/gwasmisc"
	"github.com/gwasmisc/gwasmisc/pvalue"
)

const (
	DefaultMinP        = 1e-6
	DefaultMinDistance = 2e6
)

type Options struct {
	// Hits must have P strictly below MinP to be considered.
	MinP float64

	// Loci on the same chromosome are more than MinDistance bp apart.
	MinDistance float64
}

func DefaultOptions() Options {
	return Options{
		MinP:        DefaultMinP,
		MinDistance: DefaultMinDistance,
	}
}

func (o Options) Validate() error {
	if math.IsNaN(o.MinP) {
		return fmt.Errorf("minimum P value is NaN")
	}

	if math.IsNaN(o.MinDistance) || o.MinDistance < 0 {
		return fmt.Errorf("minimum peak distance must be a non-negative number, not %v", o.MinDistance)
	}

	return nil
}

// Each emits loci one at a time. Chromosomes are processed in the order in
// which they first appear in hits; within a chromosome loci are emitted from
// most to least significant. If emit returns an error, picking stops and the
// error is returned.
//
// Hits are compared on NegLog10P, so P values too small for a float64 still
// rank correctly. When several hits share the lowest P value, the one with the
// smallest position wins, then the one that came first in hits.
func Each(hits []Hit, opts Options, emit func(Hit) error) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	for _, group := range groupSignificant(hits, opts.MinP) {
		if err := pickGroup(group, opts.MinDistance, emit); err != nil {
			return err
		}
	}

	return nil
}

// Pick returns every locus, in the order Each would emit them.
func Pick(hits []Hit, opts Options) ([]Hit, error) {
	out := make([]Hit, 0)
	err := Each(hits, opts, func(h Hit) error {
		out = append(out, h)
		return nil
	})

	return out, err
}

// PickParallel is Pick with chromosomes spread across up to threads workers.
// The result is identical to Pick.
func PickParallel(hits []Hit, opts Options, threads int) ([]Hit, error) {
	if threads <= 1 {
		return Pick(hits, opts)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	groups := groupSignificant(hits, opts.MinP)
	results := make([][]Hit, len(groups))

	concurrencyLimit := make(chan struct{}, threads)
	var pool sync.WaitGroup

	for i, group := range groups {
		pool.Add(1)
		concurrencyLimit <- struct{}{}

		go func(i int, group []Hit) {
			defer func() {
				<-concurrencyLimit
				pool.Done()
			}()

			loci := make([]Hit, 0)
			// The emitter never fails, so neither does pickGroup.
			pickGroup(group, opts.MinDistance, func(h Hit) error {
				loci = append(loci, h)
				return nil
			})
			results[i] = loci
		}(i, group)
	}
	pool.Wait()

	out := make([]Hit, 0)
	for _, loci := range results {
		out = append(out, loci...)
	}

	return out, nil
}

// Sort orders loci by chromosome (naturally: 1, 2, ..., 10, X, Y, MT) and
// then position.
func Sort(loci []Hit) {
	sort.SliceStable(loci, func(i, j int) bool {
		if loci[i].Chromosome != loci[j].Chromosome {
			return gwasmisc.ChromLess(loci[i].Chromosome, loci[j].Chromosome)
		}

		return loci[i].Position < loci[j].Position
	})
}

// groupSignificant keeps hits with P < minP, that is -log10(P) above
// -log10(minP), and buckets them by chromosome, preserving first-appearance
// order of chromosomes and input order within each bucket.
func groupSignificant(hits []Hit, minP float64) [][]Hit {
	index := make(map[string]int)
	groups := make([][]Hit, 0)
	minScore := pvalue.ToNegLog10(minP)

	for _, hit := range hits {
		if !(hit.NegLog10P > minScore) {
			continue
		}

		i, exists := index[hit.Chromosome]
		if !exists {
			i = len(groups)
			index[hit.Chromosome] = i
			groups = append(groups, make([]Hit, 0))
		}
		groups[i] = append(groups[i], hit)
	}

	return groups
}

// pickGroup consumes group, which must not be shared with the caller.
func pickGroup(group []Hit, minDistance float64, emit func(Hit) error) error {
	remaining := group
	for len(remaining) > 0 {
		best := remaining[0]
		for _, h := range remaining[1:] {
			if h.NegLog10P > best.NegLog10P || (h.NegLog10P == best.NegLog10P && h.Position < best.Position) {
				best = h
			}
		}

		if err := emit(best); err != nil {
			return err
		}

		// The best hit is at distance 0, so it is always dropped here.
		kept := remaining[:0]
		for _, h := range remaining {
			if math.Abs(float64(h.Position-best.Position)) > minDistance {
				kept = append(kept, h)
			}
		}
		remaining = kept
	}

	return nil
}
