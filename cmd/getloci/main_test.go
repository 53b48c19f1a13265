package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeInput(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sumstats.txt")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runToString(t *testing.T, cfg config) string {
	t.Helper()
	cfg.Output = filepath.Join(t.TempDir(), "loci.tsv")
	if cfg.Delimiter == "" {
		cfg.Delimiter = "ws"
	}
	if cfg.MinP == 0 {
		cfg.MinP = 1e-6
	}
	if cfg.MinDistance == 0 {
		cfg.MinDistance = 2e6
	}
	if cfg.NA == "" {
		cfg.NA = "NA"
	}

	if err := run(cfg); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestGetLoci(t *testing.T) {
	input := writeInput(t, `SNP CHR BP P
rs3 chr1 5000000 1e-9
rs1 chr1 100 1e-8
rs2 chr1 150 1e-7
rs4 chr2 100 0.5
rs5 chr2 200 NA
`)

	got := runToString(t, config{Input: input, Cols: "CHR,BP,P", Threads: 2})
	expected := "SNP\tCHR\tBP\tP\nrs1\tchr1\t100\t1e-8\nrs3\tchr1\t5000000\t1e-9\n"
	if got != expected {
		t.Fatalf("Got:\n%s\nExpected:\n%s", got, expected)
	}
}

func TestGetLociLog10PKeepsOriginalValues(t *testing.T) {
	input := writeInput(t, "CHROM\tGENPOS\tLOG10P\n1\t100\t8\n1\t200\t7\n2\t100\t3\n")

	got := runToString(t, config{Input: input, Cols: "1,2,-1", Log10P: true, Delimiter: "tab"})
	expected := "CHROM\tGENPOS\tLOG10P\n1\t100\t8\n"
	if got != expected {
		t.Fatalf("Got:\n%s\nExpected:\n%s", got, expected)
	}
}

func TestGetLociEmptyInput(t *testing.T) {
	input := writeInput(t, "CHR BP P\n")

	if got := runToString(t, config{Input: input, Cols: "CHR,BP,P"}); got != "CHR\tBP\tP\n" {
		t.Fatalf("Expected only a header, got %q", got)
	}
}

func TestGetLociSummary(t *testing.T) {
	input := writeInput(t, "CHR BP P\n1 100 1e-9\n1 200 1e-3\n")
	summary := filepath.Join(t.TempDir(), "summary.tsv")

	runToString(t, config{Input: input, Cols: "CHR,BP,P", Summary: summary})

	b, err := os.ReadFile(summary)
	if err != nil {
		t.Fatal(err)
	}

	if lines := strings.Split(strings.TrimSpace(string(b)), "\n"); len(lines) != 2 || !strings.HasPrefix(lines[1], "1\t2\t1\t1\t") {
		t.Fatalf("Unexpected summary:\n%s", b)
	}
}

func TestGetLociErrors(t *testing.T) {
	good := writeInput(t, "CHR BP P\n1 100 1e-9\n")
	badPos := writeInput(t, "CHR BP P\n1 1.5e6 1e-9\n")
	badP := writeInput(t, "CHR BP P\n1 100 small\n")

	for _, v := range []struct {
		Name string
		Cfg  config
		Msg  string
	}{
		{"missing input", config{Input: filepath.Join(t.TempDir(), "nope"), Cols: "CHR,BP,P"}, "not found"},
		{"too few columns", config{Input: good, Cols: "CHR,BP"}, "3 columns"},
		{"unknown column", config{Input: good, Cols: "CHR,BP,PVAL"}, "PVAL"},
		{"bad position", config{Input: badPos, Cols: "CHR,BP,P"}, "line 2"},
		{"bad P value", config{Input: badP, Cols: "CHR,BP,P"}, "line 2"},
		{"negative distance", config{Input: good, Cols: "CHR,BP,P", MinDistance: -5}, "distance"},
	} {
		v.Cfg.Output = filepath.Join(t.TempDir(), "out.tsv")
		v.Cfg.Delimiter = "ws"
		v.Cfg.MinP = 1e-6
		if v.Cfg.MinDistance == 0 {
			v.Cfg.MinDistance = 2e6
		}

		err := run(v.Cfg)
		if err == nil || !strings.Contains(err.Error(), v.Msg) {
			t.Fatalf("%s: expected an error mentioning %q, got %v", v.Name, v.Msg, err)
		}
	}
}

func TestColumnArgs(t *testing.T) {
	for _, v := range []struct {
		Cols         string
		Args         []string
		ExpectedCols string
		ExpectedRest []string
	}{
		{"CHR,BP,P", nil, "CHR,BP,P", nil},
		{"CHR", []string{"BP", "P"}, "CHR,BP,P", []string{}},
		{"1", []string{"2", "-1", "-o", "out.tsv"}, "1,2,-1", []string{"-o", "out.tsv"}},
		{"CHR", []string{"BP"}, "CHR", []string{"BP"}},
		{"CHR,BP", []string{"P", "x"}, "CHR,BP", []string{"P", "x"}},
	} {
		cols, rest := columnArgs(v.Cols, v.Args)
		if cols != v.ExpectedCols {
			t.Errorf("%q %v: got columns %q, expected %q", v.Cols, v.Args, cols, v.ExpectedCols)
		}
		if strings.Join(rest, " ") != strings.Join(v.ExpectedRest, " ") {
			t.Errorf("%q %v: got rest %v, expected %v", v.Cols, v.Args, rest, v.ExpectedRest)
		}
	}
}

func TestGetLociSpaceSeparatedColumns(t *testing.T) {
	in := writeInput(t, "CHR BP P\n1 100 1e-9\n1 5000000 1e-10\n")

	cols, rest := columnArgs("CHR", []string{"BP", "P"})
	if len(rest) != 0 {
		t.Fatalf("unexpected leftover arguments %v", rest)
	}

	out := runToString(t, config{Input: in, Cols: cols, Delimiter: "ws", MinP: 1e-6, MinDistance: 2e6})
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 3 {
		t.Fatalf("expected a header and two loci, got:\n%s", out)
	}
}
