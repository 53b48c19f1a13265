package variantid

import (
	"fmt"
	"strings"

	"github.com/gwasmisc/gwasmisc"
)

// BEDHeader names the columns that ToBED prepends.
var BEDHeader = []string{"chr", "start", "end", "ref", "alt"}

// ToBED parses the chr<sep>pos<sep>ref<sep>alt ID found in the 1-based
// column idCol and returns the row with chr, start, end, ref and alt
// prepended. start and end are both the ID's position. Unless noChr is set,
// chromosomes are written in UCSC form.
func ToBED(fields []string, idCol int, sep string, noChr bool) ([]string, error) {
	if idCol < 1 || idCol > len(fields) {
		return nil, fmt.Errorf("ID column %d requested, but the row has %d fields", idCol, len(fields))
	}

	id := fields[idCol-1]
	parts := strings.Split(id, sep)
	if len(parts) < 4 {
		return nil, fmt.Errorf("ID %q does not have 4 %q-separated parts", id, sep)
	}

	chrom := parts[0]
	if !noChr {
		var err error
		if chrom, err = gwasmisc.AddChrPrefix(chrom); err != nil {
			return nil, err
		}
	}

	out := make([]string, 0, len(BEDHeader)+len(fields))
	out = append(out, chrom, parts[1], parts[1], parts[2], parts[3])
	return append(out, fields...), nil
}
