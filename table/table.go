// Package table reads, writes and joins the delimited text tables that
// summary statistics, BIM/PVAR files and annotation dumps are shipped as.
package table

import (
	"fmt"
	"sort"
	"strconv"
)

// Table is a fully materialized table.
type Table struct {
	Header []string
	Rows   [][]string
}

// How selects the rows kept by Join.
type How int

const (
	HowLeft How = iota
	HowRight
	HowInner
	HowOuter
)

var joinHows = map[string]How{
	"left":  HowLeft,
	"right": HowRight,
	"inner": HowInner,
	"outer": HowOuter,
}

func ParseJoinHow(s string) (How, error) {
	h, ok := joinHows[s]
	if !ok {
		known := make([]string, 0, len(joinHows))
		for k := range joinHows {
			known = append(known, k)
		}
		sort.Strings(known)
		return 0, fmt.Errorf("unknown join type %q; expected one of %v", s, known)
	}

	return h, nil
}

// GeneratedHeader names headerless columns "0<suffix>", "1<suffix>", ...
func GeneratedHeader(width int, suffix string) []string {
	out := make([]string, width)
	for i := range out {
		out[i] = strconv.Itoa(i) + suffix
	}

	return out
}

// Width is the number of columns.
func (t *Table) Width() int {
	if t.Header != nil {
		return len(t.Header)
	}

	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}

	return 0
}
