// Package variantid rewrites variant identifiers into the chr:pos:ref:alt
// form and expands such identifiers into BED-like coordinates.
package variantid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gwasmisc/gwasmisc"
)

const Separator = ":"

// Resetter rewrites the ID column of a row as chr:pos:ref:alt. Column indices
// are 0-based.
type Resetter struct {
	IDCol, ChrCol, PosCol, RefCol, AltCol int

	// IDOnly takes chr, pos and both alleles from the existing ID instead of
	// from other columns.
	IDOnly bool

	// KeepOld appends the previous ID, e.g. 1:100:A:G:rs123.
	KeepOld bool

	// SortAlleles orders the two alleles lexically so that IDs do not depend
	// on which allele is the reference.
	SortAlleles bool

	// AddChr writes chromosomes in UCSC form (chr1, chrX). Otherwise any
	// "chr" is removed.
	AddChr bool
}

// DefaultOrder is the 1-based ID, CHR, POS, REF, ALT order of a PLINK2 .pvar.
var DefaultOrder = []int{3, 1, 2, 4, 5}

// NewResetter takes 1-based column numbers: either just the ID column, or the
// ID, chromosome, position, ref and alt columns in that order.
func NewResetter(order []int) (*Resetter, error) {
	for _, v := range order {
		if v < 1 {
			return nil, fmt.Errorf("column numbers are 1-based, got %d", v)
		}
	}

	switch len(order) {
	case 1:
		return &Resetter{IDCol: order[0] - 1, IDOnly: true}, nil
	case 5:
		return &Resetter{
			IDCol:  order[0] - 1,
			ChrCol: order[1] - 1,
			PosCol: order[2] - 1,
			RefCol: order[3] - 1,
			AltCol: order[4] - 1,
		}, nil
	}

	return nil, fmt.Errorf("expected either 1 column (ID) or 5 columns (ID CHR POS REF ALT), got %d: %v", len(order), order)
}

// Reset rewrites fields in place.
func (r *Resetter) Reset(fields []string) error {
	cols := []int{r.IDCol}
	if !r.IDOnly {
		cols = append(cols, r.ChrCol, r.PosCol, r.RefCol, r.AltCol)
	}
	for _, c := range cols {
		if c >= len(fields) {
			return fmt.Errorf("column %d requested, but the row only has %d fields", c+1, len(fields))
		}
	}

	oldID := fields[r.IDCol]

	var chrom, pos, a0, a1 string
	if r.IDOnly {
		parts := strings.Split(oldID, Separator)
		if len(parts) != 4 {
			return fmt.Errorf("ID %q is not of the form chr:pos:ref:alt", oldID)
		}
		chrom, pos, a0, a1 = parts[0], parts[1], parts[2], parts[3]
	} else {
		chrom, pos, a0, a1 = fields[r.ChrCol], fields[r.PosCol], fields[r.RefCol], fields[r.AltCol]
	}

	alleles := []string{a0, a1}
	if r.SortAlleles {
		sort.Strings(alleles)
	}

	if r.AddChr {
		var err error
		if chrom, err = gwasmisc.AddChrPrefix(chrom); err != nil {
			return err
		}
	} else {
		chrom = gwasmisc.StripChrPrefix(chrom)
	}

	newID := strings.Join([]string{chrom, pos, alleles[0], alleles[1]}, Separator)
	if r.KeepOld {
		newID += Separator + oldID
	}
	fields[r.IDCol] = newID

	return nil
}
