// filterregenie filters REGENIE results that have been merged with VEP
// annotations: unwanted consequences are dropped, optionally only some genes
// are kept, and the remaining variants must pass a multiple-testing corrected
// threshold in every requested P value column.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/table"
)

type config struct {
	Input        string
	Output       string
	Delimiter    string
	Consequences []string
	Symbols      []string
	Alpha        float64
	IDCol        string
	PCols        []string
	RawP         bool
	Method       Method
	NA           string
}

func main() {
	var cfg config
	var consequences, symbols, pCols, method string

	flag.StringVar(&cfg.Input, "i", "", "REGENIE results merged with VEP annotations (with Consequence and SYMBOL columns). May be compressed or a gs:// path.")
	flag.StringVar(&cfg.Output, "o", "", "Output file. Defaults to stdout.")
	flag.StringVar(&cfg.Delimiter, "d", "ws", "Input delimiter: ws (any run of whitespace), tab, comma, auto, or a single character.")
	flag.StringVar(&consequences, "c", "downstream,intron,non_coding,synonymous", "Comma-separated consequences to drop. A row is dropped if its Consequence contains any of them.")
	flag.StringVar(&symbols, "g", "", "Optional. Comma-separated gene symbols; only rows whose SYMBOL contains one of them are kept.")
	flag.Float64Var(&cfg.Alpha, "p", 0.05, "Family-wise (bonferroni) or false discovery (bh) rate.")
	flag.StringVar(&cfg.IDCol, "id-col", "3", "Variant ID column (name or 1-based index). Bonferroni counts unique IDs.")
	flag.StringVar(&pCols, "pval-cols", "12", "Comma-separated P value columns (names or 1-based indices). A row is kept only if every column passes.")
	flag.BoolVar(&cfg.RawP, "P", false, "The P value columns hold P rather than -log10(P).")
	flag.StringVar(&method, "method", "bonferroni", fmt.Sprintf("Multiple testing correction: one of %v", methodNames()))
	flag.StringVar(&cfg.NA, "na", "NA", "Missing value marker. Rows with a missing P value never pass.")
	flag.Parse()

	if cfg.Input == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg.Consequences = table.SplitList(consequences)
	cfg.Symbols = table.SplitList(symbols)
	cfg.PCols = table.SplitList(pCols)

	var err error
	if cfg.Method, err = ParseMethod(method); err != nil {
		log.Fatalln(err)
	}

	log.Println("Input file:", cfg.Input)
	log.Println("Output file:", cfg.Output)
	log.Println("Dropping consequences:", cfg.Consequences)
	log.Println("Keeping gene symbols:", cfg.Symbols)
	log.Println("Alpha:", cfg.Alpha, "with", method, "correction")
	log.Println("ID column:", cfg.IDCol)
	log.Println("P value columns:", cfg.PCols)
	log.Println("P values are -log10(P):", !cfg.RawP)

	if err := run(cfg); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

func run(cfg config) error {
	delim, err := table.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return err
	}

	client, err := gwasmisc.StorageClientFor(cfg.Input)
	if err != nil {
		return err
	}

	r, err := table.Open(cfg.Input, table.Options{Delimiter: delim, Client: client})
	if err != nil {
		return err
	}
	defer r.Close()

	tbl, err := r.ReadAll()
	if err != nil {
		return err
	}
	log.Printf("Read %d rows\n", len(tbl.Rows))

	f, err := newFilter(tbl.Header, cfg)
	if err != nil {
		return err
	}

	kept, err := f.Apply(tbl.Rows)
	if err != nil {
		return err
	}

	w, err := table.Create(cfg.Output, '\t')
	if err != nil {
		return err
	}

	if err := w.WriteTable(&table.Table{Header: tbl.Header, Rows: kept}, true); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

func methodNames() []string {
	out := make([]string, 0, len(methods))
	for k := range methods {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
