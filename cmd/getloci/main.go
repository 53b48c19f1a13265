// getloci finds independent GWAS peaks: on each chromosome the most
// significant hit is kept and every other hit within -min-peak-dist of it is
// dropped, repeatedly, until no hits are left.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/peaks"
	"github.com/gwasmisc/gwasmisc/table"
)

type config struct {
	Input       string
	Cols        string
	Log10P      bool
	MinP        float64
	MinDistance float64
	Delimiter   string
	Output      string
	Threads     int
	NA          string
	Summary     string
}

func main() {
	var cfg config

	flag.StringVar(&cfg.Input, "i", "", "Input summary statistics file with a header line. May be gzip/bgzip/xz/bzip2 compressed, a gs:// path, or - for stdin.")
	flag.StringVar(&cfg.Input, "input", "", "Same as -i.")
	flag.StringVar(&cfg.Cols, "c", "", "Chromosome, position and P value columns, comma-separated or as three words, each a header name, a 1-based index, or a negative index counting from the end. E.g., CHR,BP,P_BOLT_LMM or -c 1 2 -1")
	flag.StringVar(&cfg.Cols, "cols", "", "Same as -c.")
	flag.BoolVar(&cfg.Log10P, "log10p", false, "The P value column holds -log10(P).")
	flag.Float64Var(&cfg.MinP, "min-pval", peaks.DefaultMinP, "Only hits with P strictly below this are considered.")
	flag.Float64Var(&cfg.MinDistance, "min-peak-dist", peaks.DefaultMinDistance, "Minimum distance between peaks (in bp).")
	flag.StringVar(&cfg.Delimiter, "d", "ws", "Input delimiter: ws (any run of whitespace), tab, comma, auto, or a single character.")
	flag.StringVar(&cfg.Delimiter, "delimiter", "ws", "Same as -d.")
	flag.StringVar(&cfg.Output, "o", "", "Output file. Defaults to stdout.")
	flag.StringVar(&cfg.Output, "output", "", "Same as -o.")
	flag.IntVar(&cfg.Threads, "t", 1, "Number of chromosomes to process concurrently.")
	flag.IntVar(&cfg.Threads, "threads", 1, "Same as -t.")
	flag.StringVar(&cfg.NA, "na", "NA", "P values equal to this string are treated as missing and skipped.")
	flag.StringVar(&cfg.Summary, "summary", "", "Optional. Path to write a per-chromosome summary of hits and loci.")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `getloci loads -i and finds all peaks among the -c chromosome, position and P value columns, using -min-pval and -min-peak-dist to define a peak.

Notes:
  1. The input file must have a header line.
  2. If the P value column is -log10(P), use -log10p.
  3. Output goes to stdout unless -o is set. All input columns are kept, sorted by chromosome then position.`)
		flag.PrintDefaults()
	}
	flag.Parse()

	cols, rest := columnArgs(cfg.Cols, flag.Args())
	cfg.Cols = cols
	if err := flag.CommandLine.Parse(rest); err != nil {
		log.Fatalln(err)
	}

	if cfg.Input == "" || cfg.Cols == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

// columnArgs accepts -c CHR BP P as well as -c CHR,BP,P. When -c holds a
// single column, the next two positional arguments complete it. The arguments
// after those are returned for further flag parsing.
func columnArgs(cols string, args []string) (string, []string) {
	if len(table.SplitList(cols)) != 1 || len(args) < 2 {
		return cols, args
	}

	return strings.Join([]string{cols, args[0], args[1]}, ","), args[2:]
}

func run(cfg config) error {
	if cfg.Input != "-" && !gwasmisc.IsGoogleStoragePath(cfg.Input) {
		path, err := gwasmisc.ExpandHome(cfg.Input)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("Input file not found: %s", cfg.Input)
		}
	}

	colSpecs := table.SplitList(cfg.Cols)
	if len(colSpecs) != 3 {
		return fmt.Errorf("Please specify the chromosome, position and P value columns (3 columns), e.g. -c CHR,BP,P. Got %d: %v", len(colSpecs), colSpecs)
	}

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

	idx, err := table.ColumnIndices(r.Header(), colSpecs, 3)
	if err != nil {
		return err
	}

	cols := peaks.Columns{
		Chromosome: idx[0],
		Position:   idx[1],
		P:          idx[2],
		NegLog10:   cfg.Log10P,
		NA:         cfg.NA,
	}

	hits, skipped, err := readHits(r, cols)
	if err != nil {
		return err
	}
	log.Printf("Read %d hits from %s (%d with missing P values were skipped)\n", len(hits), cfg.Input, skipped)

	opts := peaks.Options{MinP: cfg.MinP, MinDistance: cfg.MinDistance}
	loci, err := peaks.PickParallel(hits, opts, cfg.Threads)
	if err != nil {
		return err
	}
	peaks.Sort(loci)
	log.Printf("Found %d loci with P < %g at least %g bp apart\n", len(loci), opts.MinP, opts.MinDistance)

	if err := writeLoci(cfg.Output, r.Header(), loci); err != nil {
		return err
	}

	if cfg.Summary != "" {
		if err := writeSummary(cfg.Summary, peaks.Summarize(hits, loci, opts, cfg.NA)); err != nil {
			return err
		}
	}

	return nil
}
