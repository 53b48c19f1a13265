package table

import (
	"fmt"
	"strconv"
	"strings"
)

// ColumnIndex maps a column reference onto a 0-based index into header.
// The reference is either a header name, a 1-based index, or a negative
// index counting back from the last column (-1 is the last column).
func ColumnIndex(header []string, spec string) (int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return -1, fmt.Errorf("empty column reference")
	}

	if idx, err := strconv.Atoi(spec); err == nil {
		switch {
		case idx == 0:
			return -1, fmt.Errorf("column %q: indices are 1-based (or negative, counting from the end)", spec)
		case idx < 0:
			idx = len(header) + idx
		default:
			idx--
		}

		if idx < 0 || idx >= len(header) {
			return -1, fmt.Errorf("column %q is out of range for a table with %d columns", spec, len(header))
		}

		return idx, nil
	}

	for i, name := range header {
		if name == spec {
			return i, nil
		}
	}

	return -1, fmt.Errorf("column %q was not found in the header %v", spec, header)
}

// ColumnIndices resolves a list of references, failing unless exactly
// want are given. A want of 0 accepts any number.
func ColumnIndices(header []string, specs []string, want int) ([]int, error) {
	if want > 0 && len(specs) != want {
		return nil, fmt.Errorf("expected %d columns, but %d were given: %v", want, len(specs), specs)
	}

	out := make([]int, 0, len(specs))
	for _, spec := range specs {
		idx, err := ColumnIndex(header, spec)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}

	return out, nil
}

// SplitList splits a comma-separated command line value, dropping empty
// entries.
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
