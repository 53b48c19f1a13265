package peaks

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gwasmisc/gwasmisc/pvalue"
)

// Hit is one association test result. Row holds the original fields, which
// are carried through untouched.
//
// Hits are ranked on NegLog10P. P is kept for display and underflows to 0
// once -log10(P) passes about 323, so it must not be used for ranking.
type Hit struct {
	Chromosome string
	Position   int64
	P          float64
	NegLog10P  float64
	Row        []string
}

// NewHit builds a Hit from a P value.
func NewHit(chrom string, pos int64, p float64) Hit {
	return Hit{
		Chromosome: chrom,
		Position:   pos,
		P:          p,
		NegLog10P:  pvalue.ToNegLog10(p),
	}
}

// Columns locates the hit fields within a row (0-based).
type Columns struct {
	Chromosome int
	Position   int
	P          int

	// NegLog10 means the P column holds -log10(P).
	NegLog10 bool

	// P values equal to NA mark a missing test. Empty disables the check.
	NA string
}

// HitFromRow builds a Hit from a table row. ok is false if the P value is
// missing (equal to c.NA); such rows are not hits but are not errors either.
// Anything else that cannot be parsed is an error naming line.
func (c Columns) HitFromRow(row []string, line int) (hit Hit, ok bool, err error) {
	for _, col := range []int{c.Chromosome, c.Position, c.P} {
		if col < 0 || col >= len(row) {
			return Hit{}, false, fmt.Errorf("line %d: column %d is missing (row has %d fields)", line, col+1, len(row))
		}
	}

	if c.NA != "" && row[c.P] == c.NA {
		return Hit{}, false, nil
	}

	pos, err := strconv.ParseInt(row[c.Position], 10, 64)
	if err != nil {
		return Hit{}, false, fmt.Errorf("line %d: position %q is not an integer: %w", line, row[c.Position], err)
	}

	p, err := strconv.ParseFloat(row[c.P], 64)
	if err != nil {
		return Hit{}, false, fmt.Errorf("line %d: P value %q is not a number: %w", line, row[c.P], err)
	}

	if math.IsNaN(p) {
		return Hit{}, false, fmt.Errorf("line %d: P value is NaN", line)
	}

	if !c.NegLog10 && p < 0 {
		return Hit{}, false, fmt.Errorf("line %d: P value %g is negative", line, p)
	}

	hit = NewHit(row[c.Chromosome], pos, p)
	if c.NegLog10 {
		hit.P = pvalue.FromNegLog10(p)
		hit.NegLog10P = p
	}
	hit.Row = row

	return hit, true, nil
}
