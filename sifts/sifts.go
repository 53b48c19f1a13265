// Package sifts flattens SIFTS UniProt mapping documents, as served by
// https://www.ebi.ac.uk/pdbe/api/mappings/uniprot/<pdb>, into rows with one
// entry per PDB chain segment.
package sifts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/carbocation/pfx"
	"github.com/gwasmisc/gwasmisc/table"
)

const (
	UniProtAccessionColumn = "UniProt Accession"
	PDBAccessionColumn     = "PDB Accession"
)

// Row is one flattened mapping. Nested objects are joined with dots, e.g.
// "start.residue_number".
type Row map[string]string

// ParseMapping flattens one SIFTS document. Every PDB entry and every UniProt
// accession in it is emitted, in sorted order. An accession with no mappings
// yields a single row of its own attributes; an empty "UniProt" object yields
// nothing.
func ParseMapping(r io.Reader) ([]Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc map[string]map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			return nil, pfx.Err(fmt.Errorf("syntax error at byte offset %d: %w", e.Offset, err))
		}
		return nil, pfx.Err(err)
	}

	out := make([]Row, 0)
	for _, pdb := range sortedKeys(doc) {
		rawAccessions, exists := doc[pdb]["UniProt"]
		if !exists || rawAccessions == nil {
			continue
		}

		accessions, ok := rawAccessions.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: UniProt is a %T, not an object", pdb, rawAccessions)
		}

		for _, accession := range sortedKeys(accessions) {
			attrs, ok := accessions[accession].(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s/%s: expected an object, found a %T", pdb, accession, accessions[accession])
			}

			rows, err := flattenAccession(pdb, accession, attrs)
			if err != nil {
				return nil, err
			}
			out = append(out, rows...)
		}
	}

	return out, nil
}

func flattenAccession(pdb, accession string, attrs map[string]interface{}) ([]Row, error) {
	base := Row{}
	for k, v := range attrs {
		if k == "mappings" {
			continue
		}
		flatten(base, k, v)
	}
	base[UniProtAccessionColumn] = accession
	base[PDBAccessionColumn] = pdb

	rawMappings, exists := attrs["mappings"]
	if !exists || rawMappings == nil {
		return []Row{base}, nil
	}

	mappings, ok := rawMappings.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s/%s: mappings is a %T, not a list", pdb, accession, rawMappings)
	}

	if len(mappings) == 0 {
		return []Row{base}, nil
	}

	out := make([]Row, 0, len(mappings))
	for _, m := range mappings {
		mapping := Row{}
		flatten(mapping, "", m)

		row := Row{}
		for k, v := range base {
			if _, clash := mapping[k]; clash {
				k += "_x"
			}
			row[k] = v
		}
		for k, v := range mapping {
			if _, clash := base[k]; clash {
				k += "_y"
			}
			row[k] = v
		}
		out = append(out, row)
	}

	return out, nil
}

// flatten writes v into dst. Objects recurse with dotted keys, lists are kept
// as compact JSON and null becomes an empty string.
func flatten(dst Row, prefix string, v interface{}) {
	switch x := v.(type) {
	case map[string]interface{}:
		for k, child := range x {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(dst, key, child)
		}
	case []interface{}:
		b, _ := json.Marshal(x)
		dst[prefix] = string(b)
	case json.Number:
		dst[prefix] = x.String()
	case string:
		dst[prefix] = x
	case bool:
		dst[prefix] = strconv.FormatBool(x)
	case nil:
		dst[prefix] = ""
	default:
		dst[prefix] = fmt.Sprint(x)
	}
}

// ParseFile parses the SIFTS document at path.
func ParseFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	rows, err := ParseMapping(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rows, nil
}

// ParseFiles parses each path independently on up to workers goroutines. The
// rows are returned in the order of paths. If any file fails, the error of the
// earliest failing path is returned.
func ParseFiles(paths []string, workers int) ([]Row, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([][]Row, len(paths))
	errs := make([]error, len(paths))

	concurrencyLimit := make(chan struct{}, workers)
	var pool sync.WaitGroup

	for i, path := range paths {
		pool.Add(1)
		concurrencyLimit <- struct{}{}

		go func(i int, path string) {
			defer func() {
				<-concurrencyLimit
				pool.Done()
			}()

			results[i], errs[i] = ParseFile(path)
		}(i, path)
	}
	pool.Wait()

	out := make([]Row, 0)
	for i := range paths {
		if errs[i] != nil {
			return nil, errs[i]
		}
		out = append(out, results[i]...)
	}

	return out, nil
}

// ToTable lays rows out with the accession columns first and all other
// columns sorted. Cells a row lacks are filled with na.
func ToTable(rows []Row, na string) *table.Table {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for k := range row {
			seen[k] = struct{}{}
		}
	}
	delete(seen, UniProtAccessionColumn)
	delete(seen, PDBAccessionColumn)

	header := []string{UniProtAccessionColumn, PDBAccessionColumn}
	header = append(header, sortedKeys(seen)...)

	out := &table.Table{Header: header, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, col := range header {
			v, exists := row[col]
			if !exists {
				v = na
			}
			record[i] = v
		}
		out.Rows = append(out.Rows, record)
	}

	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
