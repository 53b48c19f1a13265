package main

import (
	"fmt"

	"github.com/gwasmisc/gwasmisc/table"
)

// mergePhenos folds each table into the first. Columns from index shared on
// are suffixed with _<pheno>. Variants already present gain the new
// phenotype's columns; variants seen for the first time are appended with
// their shared columns filled in, and na elsewhere.
func mergePhenos(tables []*table.Table, phenos []string, idColumn string, shared int, na string) (*table.Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to merge")
	}

	for i, tbl := range tables {
		suffixColumns(tbl, shared, phenos[i])
	}

	res := tables[0]
	for i, right := range tables[1:] {
		resID, err := table.ColumnIndex(res.Header, idColumn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", phenos[0], err)
		}
		rightID, err := table.ColumnIndex(right.Header, idColumn)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", phenos[i+1], err)
		}

		known := make(map[string]struct{}, len(res.Rows))
		for _, row := range res.Rows {
			known[row[resID]] = struct{}{}
		}

		both := &table.Table{Header: statColumns(right.Header, rightID, shared)}
		unique := make([][]string, 0)
		for _, row := range right.Rows {
			if _, exists := known[row[rightID]]; exists {
				both.Rows = append(both.Rows, statColumns(row, rightID, shared))
			} else {
				unique = append(unique, row)
			}
		}

		res, err = table.Join(res, both, []int{resID}, []int{0}, table.HowLeft, na)
		if err != nil {
			return nil, err
		}

		appendByName(res, right.Header, unique, na)
	}

	return res, nil
}

func suffixColumns(tbl *table.Table, shared int, pheno string) {
	for j := shared; j < len(tbl.Header); j++ {
		tbl.Header[j] += "_" + pheno
	}
}

// statColumns returns the ID followed by every column from shared on.
func statColumns(row []string, idCol, shared int) []string {
	out := []string{row[idCol]}
	if shared < len(row) {
		out = append(out, row[shared:]...)
	}

	return out
}

// appendByName adds rows laid out by header to res, matching columns by
// name. Columns res lacks are added, filled with na for existing rows.
func appendByName(res *table.Table, header []string, rows [][]string, na string) {
	if len(rows) == 0 {
		return
	}

	at := make(map[string]int, len(res.Header))
	for j, name := range res.Header {
		at[name] = j
	}

	for _, name := range header {
		if _, exists := at[name]; exists {
			continue
		}
		at[name] = len(res.Header)
		res.Header = append(res.Header, name)
		for i := range res.Rows {
			res.Rows[i] = append(res.Rows[i], na)
		}
	}

	for _, row := range rows {
		out := make([]string, len(res.Header))
		for j := range out {
			out[j] = na
		}
		for j, name := range header {
			out[at[name]] = row[j]
		}
		res.Rows = append(res.Rows, out)
	}
}
