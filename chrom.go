package gwasmisc

import (
	"fmt"
	"strconv"
	"strings"
)

// AddChrPrefix converts a chromosome name to its UCSC "chr" form. Numeric
// PLINK codes are translated: 1-22 become chr1-chr22 (leading zeroes are
// dropped), 23 and 25 become chrX, 24 becomes chrY and 26 becomes chrMT.
// Names that already start with "chr" and non-numeric names are returned
// unchanged.
func AddChrPrefix(chrom string) (string, error) {
	if strings.HasPrefix(chrom, "chr") || !isDigits(chrom) {
		return chrom, nil
	}

	n, err := strconv.Atoi(chrom)
	if err != nil {
		return "", fmt.Errorf("AddChrPrefix: %w", err)
	}

	switch {
	case n < 23:
		return "chr" + strconv.Itoa(n), nil
	case n == 23, n == 25:
		return "chrX", nil
	case n == 24:
		return "chrY", nil
	case n == 26:
		return "chrMT", nil
	}

	return "", fmt.Errorf("AddChrPrefix: chromosome code %q has no UCSC name", chrom)
}

// StripChrPrefix removes every occurrence of "chr" from a chromosome name.
func StripChrPrefix(chrom string) string {
	return strings.ReplaceAll(chrom, "chr", "")
}

// ChromLess orders chromosome names naturally: numbered chromosomes first in
// numeric order, then X, Y and the mitochondrial chromosome, then anything
// else lexically. A "chr" prefix is ignored.
func ChromLess(a, b string) bool {
	ra, na := chromRank(a)
	rb, nb := chromRank(b)
	if ra != rb {
		return ra < rb
	}

	if ra == 0 && na != nb {
		return na < nb
	}

	return a < b
}

// chromRank returns a sort class and, for numbered chromosomes, the number.
func chromRank(chrom string) (int, int) {
	c := strings.TrimPrefix(strings.TrimPrefix(chrom, "chr"), "Chr")

	if isDigits(c) {
		n, err := strconv.Atoi(c)
		if err == nil {
			return 0, n
		}
	}

	switch strings.ToUpper(c) {
	case "X":
		return 1, 0
	case "Y":
		return 2, 0
	case "M", "MT":
		return 3, 0
	}

	return 4, 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
