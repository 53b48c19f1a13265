package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gwasmisc/gwasmisc/table"
)

func TestFilter(t *testing.T) {
	tbl := &table.Table{Rows: [][]string{
		{"rs1", "1", "100"},
		{"rs2", "1", "200"},
		{"rs3", "2", "300"},
	}}

	for _, v := range []struct {
		Name     string
		Keys     [][]string
		KeyCol   int
		Expected [][]string
	}{
		{"single column", [][]string{{"rs3"}, {"rs1"}, {"rs9"}}, 0, [][]string{{"rs1", "1", "100"}, {"rs3", "2", "300"}}},
		{"extra columns", [][]string{{"LDLR", "rs2"}}, 1, [][]string{{"rs2", "1", "200", "LDLR"}}},
		{"no keys", nil, 0, nil},
	} {
		got, err := filter(tbl, &table.Table{Rows: v.Keys}, 0, v.KeyCol)
		if err != nil {
			t.Fatalf("%s: %v", v.Name, err)
		}

		if got.Header != nil {
			t.Fatalf("%s: expected no header, got %v", v.Name, got.Header)
		}

		if len(got.Rows) != len(v.Expected) {
			t.Fatalf("%s: got %v, expected %v", v.Name, got.Rows, v.Expected)
		}
		for i := range got.Rows {
			if table.Tab.Join(got.Rows[i]) != table.Tab.Join(v.Expected[i]) {
				t.Fatalf("%s: got %v, expected %v", v.Name, got.Rows, v.Expected)
			}
		}
	}

	if _, err := filter(tbl, &table.Table{Rows: [][]string{{"rs1"}}}, 3, 0); err == nil {
		t.Fatal("Expected an error for an out of range table column")
	}
	if _, err := filter(tbl, &table.Table{Rows: [][]string{{"rs1"}}}, 0, 1); err == nil {
		t.Fatal("Expected an error for an out of range key column")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	tablePath := filepath.Join(dir, "table.tsv")
	keysPath := filepath.Join(dir, "keys.txt")
	if err := os.WriteFile(tablePath, []byte("SNP\tCHR\tBP\nrs1\t1\t100\nrs2\t1\t200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(keysPath, []byte("rs2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config{
		Table:     tablePath,
		Keys:      keysPath,
		Header:    true,
		Delimiter: table.Tab,
		KeysDelim: table.Whitespace,
		Output:    filepath.Join(dir, "out.tsv"),
	}
	if err := run(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}

	if expected := "SNP\tCHR\tBP\nrs2\t1\t200\n"; string(got) != expected {
		t.Fatalf("Got:\n%s\nExpected:\n%s", got, expected)
	}
}
