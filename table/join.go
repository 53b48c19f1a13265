package table

import (
	"fmt"
	"strings"
)

// Join merges two tables. leftOn and rightOn are 0-based key columns and
// must be the same length. Key columns that have the same name on both sides
// are emitted once. Other column names found on both sides get "_x" / "_y"
// suffixes. Cells with no counterpart are filled with na.
//
// Row order: left, inner and outer joins follow the left table (with right
// matches in right table order); outer joins then append right rows that
// matched nothing. Right joins follow the right table. Duplicate keys yield
// every pairing.
//
// With no key columns the tables are joined by row position.
func Join(left, right *Table, leftOn, rightOn []int, how How, na string) (*Table, error) {
	if len(leftOn) != len(rightOn) {
		return nil, fmt.Errorf("Join: %d left key columns but %d right key columns", len(leftOn), len(rightOn))
	}

	lw, rw := left.Width(), right.Width()
	for _, c := range leftOn {
		if c < 0 || c >= lw {
			return nil, fmt.Errorf("Join: left key column %d is out of range (%d columns)", c, lw)
		}
	}
	for _, c := range rightOn {
		if c < 0 || c >= rw {
			return nil, fmt.Errorf("Join: right key column %d is out of range (%d columns)", c, rw)
		}
	}

	lh := left.Header
	if lh == nil {
		lh = GeneratedHeader(lw, "_l")
	}
	rh := right.Header
	if rh == nil {
		rh = GeneratedHeader(rw, "_r")
	}

	// Right key columns sharing a name with their left counterpart collapse
	// into the left column.
	sharedFromRight := make(map[int]int)
	dropRight := make(map[int]bool)
	for i := range leftOn {
		if lh[leftOn[i]] == rh[rightOn[i]] {
			sharedFromRight[leftOn[i]] = rightOn[i]
			dropRight[rightOn[i]] = true
		}
	}

	rightKeep := make([]int, 0, rw)
	for j := 0; j < rw; j++ {
		if !dropRight[j] {
			rightKeep = append(rightKeep, j)
		}
	}

	m := &merger{
		left:            left,
		right:           right,
		lw:              lw,
		rightKeep:       rightKeep,
		sharedFromRight: sharedFromRight,
		na:              na,
	}

	out := &Table{}
	if left.Header != nil || right.Header != nil {
		out.Header = mergedHeader(lh, rh, rightKeep, sharedFromRight)
	}

	if len(leftOn) == 0 {
		out.Rows = m.byPosition(how)
	} else {
		out.Rows = m.byKey(leftOn, rightOn, how)
	}

	return out, nil
}

type merger struct {
	left, right     *Table
	lw              int
	rightKeep       []int
	sharedFromRight map[int]int
	na              string
}

func (m *merger) row(l, r []string) []string {
	out := make([]string, 0, m.lw+len(m.rightKeep))
	for j := 0; j < m.lw; j++ {
		switch {
		case l != nil:
			out = append(out, l[j])
		case r != nil:
			if rj, ok := m.sharedFromRight[j]; ok {
				out = append(out, r[rj])
				continue
			}
			out = append(out, m.na)
		default:
			out = append(out, m.na)
		}
	}

	for _, rj := range m.rightKeep {
		if r != nil {
			out = append(out, r[rj])
		} else {
			out = append(out, m.na)
		}
	}

	return out
}

func (m *merger) byPosition(how How) [][]string {
	nl, nr := len(m.left.Rows), len(m.right.Rows)

	n := nl
	switch how {
	case HowRight:
		n = nr
	case HowInner:
		if nr < n {
			n = nr
		}
	case HowOuter:
		if nr > n {
			n = nr
		}
	}

	out := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		var l, r []string
		if i < nl {
			l = m.left.Rows[i]
		}
		if i < nr {
			r = m.right.Rows[i]
		}
		out = append(out, m.row(l, r))
	}

	return out
}

func (m *merger) byKey(leftOn, rightOn []int, how How) [][]string {
	rightIndex := make(map[string][]int)
	for i, r := range m.right.Rows {
		k := key(r, rightOn)
		rightIndex[k] = append(rightIndex[k], i)
	}

	out := make([][]string, 0, len(m.left.Rows))

	if how == HowRight {
		leftIndex := make(map[string][]int)
		for i, l := range m.left.Rows {
			k := key(l, leftOn)
			leftIndex[k] = append(leftIndex[k], i)
		}

		for _, r := range m.right.Rows {
			matches := leftIndex[key(r, rightOn)]
			if len(matches) == 0 {
				out = append(out, m.row(nil, r))
				continue
			}
			for _, li := range matches {
				out = append(out, m.row(m.left.Rows[li], r))
			}
		}

		return out
	}

	matchedRight := make([]bool, len(m.right.Rows))
	for _, l := range m.left.Rows {
		matches := rightIndex[key(l, leftOn)]
		if len(matches) == 0 {
			if how != HowInner {
				out = append(out, m.row(l, nil))
			}
			continue
		}
		for _, ri := range matches {
			matchedRight[ri] = true
			out = append(out, m.row(l, m.right.Rows[ri]))
		}
	}

	if how == HowOuter {
		for ri, r := range m.right.Rows {
			if !matchedRight[ri] {
				out = append(out, m.row(nil, r))
			}
		}
	}

	return out
}

func key(row []string, cols []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = row[c]
	}

	return strings.Join(parts, "\x00")
}

func mergedHeader(lh, rh []string, rightKeep []int, sharedFromRight map[int]int) []string {
	rightNames := make(map[string]bool)
	for _, j := range rightKeep {
		rightNames[rh[j]] = true
	}

	leftNames := make(map[string]bool)
	for _, name := range lh {
		leftNames[name] = true
	}

	out := make([]string, 0, len(lh)+len(rightKeep))
	for j, name := range lh {
		if _, shared := sharedFromRight[j]; !shared && rightNames[name] {
			name += "_x"
		}
		out = append(out, name)
	}

	for _, j := range rightKeep {
		name := rh[j]
		if leftNames[name] {
			name += "_y"
		}
		out = append(out, name)
	}

	return out
}
