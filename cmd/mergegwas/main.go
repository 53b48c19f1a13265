// mergegwas merges the GWAS results of several phenotypes into one wide table
// keyed on the variant ID. Per-phenotype statistic columns get a _<pheno>
// suffix; variants missing from the first phenotype are appended.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/table"
)

type config struct {
	Files      []string
	Phenos     []string
	Left       string
	Output     string
	IDColumn   string
	SharedCols int
	NA         string
}

func main() {
	var cfg config
	var files, phenos string

	flag.StringVar(&files, "i", "", "Comma-separated whitespace-delimited GWAS result files (may be compressed or gs:// paths). Further files may be given as arguments.")
	flag.StringVar(&phenos, "p", "", "Comma-separated phenotype names, one per file. Defaults to each file name up to its first '.'.")
	flag.StringVar(&cfg.Left, "l", "", "Phenotype whose variants come first. Defaults to the first file's.")
	flag.StringVar(&cfg.Output, "o", "", "Output file (tab-delimited). Defaults to stdout.")
	flag.StringVar(&cfg.IDColumn, "id", "ID", "Variant ID column.")
	flag.IntVar(&cfg.SharedCols, "shared", 8, "Number of leading columns (variant description) that are not suffixed with the phenotype.")
	flag.StringVar(&cfg.NA, "na", "NA", "Value for cells a phenotype has no result for.")
	flag.Parse()

	cfg.Files = append(table.SplitList(files), flag.Args()...)
	if len(cfg.Files) == 0 {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if phenos == "" {
		for _, f := range cfg.Files {
			cfg.Phenos = append(cfg.Phenos, phenoFromPath(f))
		}
	} else {
		cfg.Phenos = table.SplitList(phenos)
	}

	log.Println("Input files:", cfg.Files)
	log.Println("Phenotypes:", cfg.Phenos)

	if err := run(cfg); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

func phenoFromPath(path string) string {
	return strings.SplitN(filepath.Base(path), ".", 2)[0]
}

func run(cfg config) error {
	if len(cfg.Files) != len(cfg.Phenos) {
		return fmt.Errorf("%d files but %d phenotypes were given", len(cfg.Files), len(cfg.Phenos))
	}

	files, phenos, err := leftFirst(cfg.Files, cfg.Phenos, cfg.Left)
	if err != nil {
		return err
	}

	client, err := gwasmisc.StorageClientFor(files...)
	if err != nil {
		return err
	}

	tables := make([]*table.Table, 0, len(files))
	for _, path := range files {
		r, err := table.Open(path, table.Options{Delimiter: table.Whitespace, Client: client})
		if err != nil {
			return err
		}

		tbl, err := r.ReadAll()
		r.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		tables = append(tables, tbl)
	}

	merged, err := mergePhenos(tables, phenos, cfg.IDColumn, cfg.SharedCols, cfg.NA)
	if err != nil {
		return err
	}
	log.Printf("Merged %d variants across %d phenotypes into %d columns\n", len(merged.Rows), len(phenos), len(merged.Header))

	w, err := table.Create(cfg.Output, '\t')
	if err != nil {
		return err
	}

	if err := w.WriteTable(merged, true); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// leftFirst moves the file of the left phenotype to the front.
func leftFirst(files, phenos []string, left string) ([]string, []string, error) {
	if left == "" {
		return files, phenos, nil
	}

	for i, p := range phenos {
		if p != left {
			continue
		}

		outFiles := append([]string{files[i]}, files[:i]...)
		outFiles = append(outFiles, files[i+1:]...)
		outPhenos := append([]string{phenos[i]}, phenos[:i]...)
		outPhenos = append(outPhenos, phenos[i+1:]...)

		return outFiles, outPhenos, nil
	}

	return nil, nil, fmt.Errorf("left phenotype %s is not among %v", left, phenos)
}
