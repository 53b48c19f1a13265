package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()

	cov := filepath.Join(dir, "pheno.cov")
	if err := os.WriteFile(cov, []byte("FID IID age sex\n1 1 50 0\n2 2 61 1\n3 3 47 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tags := filepath.Join(dir, "tags.raw")
	raw := "FID\tIID\tPAT\tMAT\tSEX\tPHENOTYPE\trs1_A\trs2_T\n" +
		"2\t2\t0\t0\t1\t-9\t1\t0\n" +
		"1\t1\t0\t0\t0\t-9\t2\t1\n" +
		"4\t4\t0\t0\t1\t-9\t0\t2\n"
	if err := os.WriteFile(tags, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "cond")
	if err := run(config{Cov: cov, TagSNPs: tags, OutputDir: out, Skip: 6}); err != nil {
		t.Fatal(err)
	}

	for _, v := range []struct {
		File     string
		Expected string
	}{
		{"tagSNP_0.cov", "FID IID age sex rs1_A\n1 1 50 0 2\n2 2 61 1 1\n"},
		{"tagSNP_1.cov", "FID IID age sex rs2_T\n1 1 50 0 1\n2 2 61 1 0\n"},
		{"sup.log", "rs1_A\t" + filepath.Join(out, "tagSNP_0.cov") + "\nrs2_T\t" + filepath.Join(out, "tagSNP_1.cov") + "\n"},
	} {
		got, err := os.ReadFile(filepath.Join(out, v.File))
		if err != nil {
			t.Fatal(err)
		}

		if string(got) != v.Expected {
			t.Errorf("%s: got %q, expected %q", v.File, got, v.Expected)
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	cov := filepath.Join(dir, "pheno.cov")
	if err := os.WriteFile(cov, []byte("FID IID age\n1 1 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	noIID := filepath.Join(dir, "noiid.raw")
	if err := os.WriteFile(noIID, []byte("FID PAT MAT SEX PHENOTYPE X rs1_A\n1 0 0 0 -9 0 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	noSNPs := filepath.Join(dir, "nosnps.raw")
	if err := os.WriteFile(noSNPs, []byte("FID IID PAT MAT SEX PHENOTYPE\n1 1 0 0 0 -9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, tags := range []string{noIID, noSNPs, filepath.Join(dir, "missing.raw")} {
		if err := run(config{Cov: cov, TagSNPs: tags, OutputDir: filepath.Join(dir, "out"), Skip: 6}); err == nil {
			t.Errorf("%s: expected an error", tags)
		}
	}
}
