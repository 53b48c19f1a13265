package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestAssignLocusIDs(t *testing.T) {
	snps := []snp{
		{"1", 100},
		{"1", 400},
		{"2", 100},
		{"1", 800},
		{"1", 450},
	}

	// 800 is within 500 of 400 but not of 100, the SNP that opened locus 1.
	expected := []int{1, 1, 2, 3, 1}
	if got := assignLocusIDs(snps, 500); !reflect.DeepEqual(got, expected) {
		t.Fatalf("Got %v, expected %v", got, expected)
	}

	if got := assignLocusIDs(nil, 500); len(got) != 0 {
		t.Fatalf("Expected no IDs, got %v", got)
	}
}

func TestChainLocusIDs(t *testing.T) {
	snps := []snp{
		{"1", 100},
		{"1", 400},
		{"2", 100},
		{"1", 800},
		{"1", 2000},
		{"2", 550},
	}

	// 800 chains to 100 through 400.
	expected := []int{1, 1, 2, 1, 3, 2}
	if got := chainLocusIDs(snps, 500); !reflect.DeepEqual(got, expected) {
		t.Fatalf("Got %v, expected %v", got, expected)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "snps.tsv")
	if err := os.WriteFile(input, []byte("SNP\tCHR\tBP\nrs1\tchr1\t1000\nrs2\t1\t2000\nrs3\t2\t1000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config{
		SNPFile:           input,
		Output:            filepath.Join(dir, "out.tsv"),
		Chr:               "CHR",
		Pos:               "3",
		Delimiter:         "tab",
		LocusIDName:       "GlobalLocusID",
		DistanceThreshold: 5000,
	}
	if err := run(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}

	expected := "SNP\tCHR\tBP\tGlobalLocusID\nrs1\tchr1\t1000\t1\nrs2\t1\t2000\t1\nrs3\t2\t1000\t2\n"
	if string(got) != expected {
		t.Fatalf("Got:\n%s\nExpected:\n%s", got, expected)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	for name, contents := range map[string]string{
		"empty.tsv":  "SNP\tCHR\tBP\n",
		"badpos.tsv": "SNP\tCHR\tBP\nrs1\t1\tabc\n",
		"nocol.tsv":  "SNP\tCHROM\tBP\nrs1\t1\t5\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}

		cfg := config{SNPFile: path, Output: filepath.Join(dir, "out.tsv"), Chr: "CHR", Pos: "BP", Delimiter: "tab", LocusIDName: "ID", DistanceThreshold: 1}
		if err := run(cfg); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}
