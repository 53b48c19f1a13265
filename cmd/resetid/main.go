// resetid rewrites the variant ID column of any delimited file (BIM, PVAR,
// summary statistics) as chr:pos:ref:alt, reading stdin and writing stdout.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/table"
	"github.com/gwasmisc/gwasmisc/variantid"
)

type config struct {
	Order     []int
	KeepOld   bool
	Sort      bool
	AddChr    bool
	Delimiter table.Delimiter
	Comment   string
	Header    bool
}

func main() {
	var (
		order, delimiter string
		cfg              config
	)

	flag.StringVar(&order, "i", "3,1,2,4,5", "Comma-separated 1-based columns: ID,CHR,POS,REF,ALT. With a single column (the ID), chr, pos and alleles are taken from an existing chr:pos:a0:a1 ID, which is useful together with -s or -add-chr. E.g., for a BIM file use 2,1,4,6,5")
	flag.BoolVar(&cfg.KeepOld, "k", false, "Keep the old ID, appended as chr:pos:ref:alt:oldID.")
	flag.BoolVar(&cfg.Sort, "s", false, "Sort the two alleles, so that the ID does not depend on which allele is the reference.")
	flag.BoolVar(&cfg.AddChr, "add-chr", false, "Write chromosomes as chr1, chrX, ... (PLINK codes 23-26 are translated). By default any 'chr' is removed.")
	flag.StringVar(&delimiter, "d", "ws", "Input delimiter: ws (any run of whitespace), tab, comma, or a single character. Output uses the same delimiter, or tab for ws.")
	flag.StringVar(&cfg.Comment, "comment", "", "Leading lines starting with this prefix (e.g. '#' for a .pvar header) are passed through unchanged.")
	flag.BoolVar(&cfg.Header, "header", false, "The first line is a header and is passed through unchanged. Cannot be combined with -comment.")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `resetid sets the ID column of stdin to chr:pos:ref:alt and writes the result to stdout.

Examples:
  cat test.bim | resetid -i 2,1,4,6,5
  cat test.pvar | resetid -i 3,1,2,4,5 -comment '#'
  zcat sumstats.gz | resetid -i 3 -s -header`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if cfg.Header && cfg.Comment != "" {
		log.Println("-header and -comment cannot be used together: -header passes the first line through, -comment passes through every leading line that starts with the comment prefix")
		flag.Usage()
		os.Exit(1)
	}

	var err error
	if cfg.Order, err = parseOrder(order); err != nil {
		log.Fatalln(err)
	}

	if cfg.Delimiter, err = table.ParseDelimiter(delimiter); err != nil {
		log.Fatalln(err)
	}
	if cfg.Delimiter.Auto {
		log.Fatalln("resetid reads a stream and cannot auto-detect the delimiter; please name it with -d")
	}

	if err := run(os.Stdin, os.Stdout, cfg); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

func parseOrder(s string) ([]int, error) {
	out := make([]int, 0)
	for _, v := range table.SplitList(s) {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("column %q is not a number: %w", v, err)
		}
		out = append(out, i)
	}

	return out, nil
}

func run(in io.Reader, out io.Writer, cfg config) error {
	resetter, err := variantid.NewResetter(cfg.Order)
	if err != nil {
		return err
	}
	resetter.KeepOld = cfg.KeepOld
	resetter.SortAlleles = cfg.Sort
	resetter.AddChr = cfg.AddChr

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	bw := bufio.NewWriter(out)

	skipHeader := cfg.Header
	inPreamble := true
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if skipHeader {
			skipHeader = false
			if _, err := fmt.Fprintln(bw, line); err != nil {
				return err
			}
			continue
		}

		if inPreamble && cfg.Comment != "" && strings.HasPrefix(line, cfg.Comment) {
			if _, err := fmt.Fprintln(bw, line); err != nil {
				return err
			}
			continue
		}
		inPreamble = false

		fields := cfg.Delimiter.Split(line)
		if err := resetter.Reset(fields); err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}

		if _, err := fmt.Fprintln(bw, cfg.Delimiter.Join(fields)); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	return bw.Flush()
}
