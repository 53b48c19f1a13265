// Package regenie knows the column layout of REGENIE step 2 output and how to
// build it from other summary statistic formats.
package regenie

import (
	"fmt"
	"strconv"

	"github.com/gwasmisc/gwasmisc/pvalue"
)

// Header is the REGENIE v2 output header.
var Header = []string{
	"CHROM",
	"GENPOS",
	"ID",
	"ALLELE0",
	"ALLELE1",
	"A1FREQ",
	"N",
	"TEST",
	"BETA",
	"SE",
	"CHISQ",
	"LOG10P",
	"EXTRA",
}

// Source maps a REGENIE column to a 1-based column of the input. Zero means
// the input has no such column.
type Source struct {
	Name   string
	Column int
}

// FormattedLayout is where each REGENIE column lives in a GWAS-SSF style
// "formatted" summary statistics file.
var FormattedLayout = []Source{
	{"CHROM", 1},
	{"GENPOS", 2},
	{"ID", 12},
	{"ALLELE0", 4},
	{"ALLELE1", 3},
	{"A1FREQ", 7},
	{"N", 15},
	{"TEST", 0},
	{"BETA", 5},
	{"SE", 6},
	{"CHISQ", 0},
	{"LOG10P", 8},
	{"EXTRA", 0},
}

// Converter turns input rows into REGENIE rows.
type Converter struct {
	Layout []Source

	// PToLog10 means the input LOG10P source column holds a raw P value that
	// must be transformed.
	PToLog10 bool

	// NA fills columns the input does not have, and is passed through
	// unchanged in the P column.
	NA string
}

// HeaderRow returns the output header in layout order.
func (c Converter) HeaderRow() []string {
	out := make([]string, 0, len(c.Layout))
	for _, src := range c.Layout {
		out = append(out, src.Name)
	}

	return out
}

// Convert maps one input row.
func (c Converter) Convert(fields []string) ([]string, error) {
	out := make([]string, 0, len(c.Layout))

	for _, src := range c.Layout {
		if src.Column == 0 {
			out = append(out, c.NA)
			continue
		}

		if src.Column > len(fields) {
			return nil, fmt.Errorf("%s comes from column %d, but the row has %d fields", src.Name, src.Column, len(fields))
		}

		value := fields[src.Column-1]
		if src.Name == "LOG10P" && c.PToLog10 && value != c.NA {
			p, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("P value %q: %w", value, err)
			}
			value = pvalue.Format(pvalue.ToNegLog10(p))
		}

		out = append(out, value)
	}

	return out, nil
}
