// siftsuniprot flattens SIFTS PDB to UniProt mapping JSON documents into one
// tab-delimited table with a row per mapped chain segment.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/sifts"
	"github.com/gwasmisc/gwasmisc/table"
)

type config struct {
	Inputs  []string
	Folder  string
	Workers int
	Output  string
	NA      string
}

func main() {
	var cfg config
	var inputs, logFile string

	flag.StringVar(&inputs, "i", "", "Comma-separated SIFTS JSON files. Further files may be given as arguments.")
	flag.StringVar(&cfg.Folder, "f", "", "Folder whose *.json files are all parsed.")
	flag.IntVar(&cfg.Workers, "p", 4, "Number of files to parse concurrently.")
	flag.StringVar(&cfg.Output, "o", "UniProt_mapping.csv", "Output file (tab-delimited). Use - for stdout.")
	flag.StringVar(&cfg.NA, "na", "NA", "Value for attributes a mapping lacks.")
	flag.StringVar(&logFile, "log", "", "Optional. Also write the log to this file.")
	flag.Parse()

	if logFile != "" {
		f, err := os.Create(logFile)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	cfg.Inputs = append(table.SplitList(inputs), flag.Args()...)

	if len(cfg.Inputs) == 0 && cfg.Folder == "" {
		flag.PrintDefaults()
		log.Fatalln("Provide input files with -i or a folder with -f")
	}

	if err := run(cfg); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

func run(cfg config) error {
	paths, err := inputPaths(cfg)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		return fmt.Errorf("no SIFTS files found")
	}

	log.Printf("Parsing %d files with %d workers\n", len(paths), cfg.Workers)

	rows, err := sifts.ParseFiles(paths, cfg.Workers)
	if err != nil {
		return err
	}

	tbl := sifts.ToTable(rows, cfg.NA)
	log.Printf("Flattened %d mappings into %d columns\n", len(tbl.Rows), len(tbl.Header))

	w, err := table.Create(cfg.Output, '\t')
	if err != nil {
		return err
	}

	if err := w.WriteTable(tbl, true); err != nil {
		w.Close()
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	log.Println("Wrote", cfg.Output)

	return nil
}

// inputPaths lists the explicit inputs followed by the folder's JSON files
// in sorted order.
func inputPaths(cfg config) ([]string, error) {
	paths := make([]string, 0, len(cfg.Inputs))
	for _, p := range cfg.Inputs {
		expanded, err := gwasmisc.ExpandHome(p)
		if err != nil {
			return nil, err
		}
		paths = append(paths, expanded)
	}

	if cfg.Folder == "" {
		return paths, nil
	}

	folder, err := gwasmisc.ExpandHome(cfg.Folder)
	if err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(folder, "*.json"))
	if err != nil {
		return nil, pfx.Err(err)
	}
	sort.Strings(matches)

	return append(paths, matches...), nil
}
