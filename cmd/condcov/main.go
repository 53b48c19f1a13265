// condcov builds one covariate file per tag SNP for conditional analyses. The
// tag SNP dosages come from `plink2 --export A`; each SNP column is joined to
// the covariates on FID and IID and written to <out>/tagSNP_<i>.cov. sup.log
// in the same folder maps each SNP to its file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/table"
)

var keyColumns = []string{"FID", "IID"}

type config struct {
	Cov       string
	TagSNPs   string
	OutputDir string
	Skip      int
}

func main() {
	var cfg config

	flag.StringVar(&cfg.Cov, "c", "", "Whitespace-delimited covariate file with FID and IID columns.")
	flag.StringVar(&cfg.TagSNPs, "t", "", "Tag SNP dosages from plink2 --export A (FID IID PAT MAT SEX PHENOTYPE SNP1 SNP2 ...).")
	flag.StringVar(&cfg.OutputDir, "o", "", "Output folder.")
	flag.IntVar(&cfg.Skip, "skip", 6, "Number of leading non-SNP columns in the tag SNP file.")
	flag.Parse()

	if cfg.Cov == "" || cfg.TagSNPs == "" || cfg.OutputDir == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(cfg config) error {
	client, err := gwasmisc.StorageClientFor(cfg.Cov, cfg.TagSNPs)
	if err != nil {
		return err
	}

	cov, err := readTable(cfg.Cov, client)
	if err != nil {
		return err
	}

	tags, err := readTable(cfg.TagSNPs, client)
	if err != nil {
		return err
	}

	covKeys, err := table.ColumnIndices(cov.Header, keyColumns, 2)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Cov, err)
	}
	tagKeys, err := table.ColumnIndices(tags.Header, keyColumns, 2)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.TagSNPs, err)
	}

	if cfg.Skip >= len(tags.Header) {
		return fmt.Errorf("%s has %d columns, so no tag SNPs follow the first %d", cfg.TagSNPs, len(tags.Header), cfg.Skip)
	}
	log.Printf("Read %d tag SNPs\n", len(tags.Header)-cfg.Skip)

	outDir, err := gwasmisc.ExpandHome(cfg.OutputDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return pfx.Err(err)
	}

	sup := &table.Table{}
	for i, snpCol := 0, cfg.Skip; snpCol < len(tags.Header); i, snpCol = i+1, snpCol+1 {
		snp := tags.Header[snpCol]

		merged, err := table.Join(cov, snpColumn(tags, tagKeys, snpCol), covKeys, []int{0, 1}, table.HowInner, "NA")
		if err != nil {
			return err
		}

		path := filepath.Join(outDir, fmt.Sprintf("tagSNP_%d.cov", i))
		if err := writeTable(path, ' ', merged, true); err != nil {
			return err
		}
		log.Printf("%s saved to %s (%d samples)\n", snp, path, len(merged.Rows))

		sup.Rows = append(sup.Rows, []string{snp, path})
	}

	return writeTable(filepath.Join(outDir, "sup.log"), '\t', sup, false)
}

// snpColumn returns the FID, IID and dosage columns of one tag SNP.
func snpColumn(tags *table.Table, keys []int, col int) *table.Table {
	out := &table.Table{
		Header: []string{tags.Header[keys[0]], tags.Header[keys[1]], tags.Header[col]},
		Rows:   make([][]string, 0, len(tags.Rows)),
	}
	for _, row := range tags.Rows {
		out.Rows = append(out.Rows, []string{row[keys[0]], row[keys[1]], row[col]})
	}

	return out
}

func readTable(path string, client *storage.Client) (*table.Table, error) {
	r, err := table.Open(path, table.Options{Delimiter: table.Whitespace, Client: client})
	if err != nil {
		return nil, err
	}
	defer r.Close()

	tbl, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tbl, nil
}

func writeTable(path string, comma rune, tbl *table.Table, header bool) error {
	w, err := table.Create(path, comma)
	if err != nil {
		return pfx.Err(err)
	}

	if err := w.WriteTable(tbl, header); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}
