// snpid2bed expands a chr:pos:ref:alt ID column into leading chr, start, end,
// ref and alt columns so that the file can be used with bedtools or tabix.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/table"
	"github.com/gwasmisc/gwasmisc/variantid"
)

type config struct {
	IDCol     int
	IDSep     string
	Delimiter table.Delimiter
	NoChr     bool
	NoHeader  bool
}

func main() {
	var (
		cfg       config
		delimiter string
	)

	flag.IntVar(&cfg.IDCol, "i", 1, "1-based ID column.")
	flag.StringVar(&cfg.IDSep, "s", variantid.Separator, "Separator within the ID, which must look like chr:pos:ref:alt.")
	flag.StringVar(&delimiter, "c", "ws", "Column delimiter: ws (any run of whitespace), tab, comma, or a single character. Output uses the same delimiter, or tab for ws.")
	flag.BoolVar(&cfg.NoChr, "no-chr", false, "Leave the chromosome as it appears in the ID instead of writing chr1, chrX, ...")
	flag.BoolVar(&cfg.NoHeader, "no-header", false, "The input has no header line.")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `snpid2bed turns an ID of the form chr:pos:ref:alt into leading chr start end ref alt columns.

Example:
  zcat ldl.bgen.stats.gz | snpid2bed -i 1 > ldl.bgen.stats.bed`)
		flag.PrintDefaults()
	}
	flag.Parse()

	var err error
	if cfg.Delimiter, err = table.ParseDelimiter(delimiter); err != nil {
		log.Fatalln(err)
	}
	if cfg.Delimiter.Auto {
		log.Fatalln("snpid2bed reads a stream and cannot auto-detect the delimiter; please name it with -c")
	}

	if err := run(os.Stdin, os.Stdout, cfg); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

func run(in io.Reader, out io.Writer, cfg config) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	bw := bufio.NewWriter(out)

	header := !cfg.NoHeader
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := cfg.Delimiter.Split(line)

		if header {
			header = false
			if _, err := fmt.Fprintln(bw, cfg.Delimiter.Join(append(append([]string{}, variantid.BEDHeader...), fields...))); err != nil {
				return err
			}
			continue
		}

		bed, err := variantid.ToBED(fields, cfg.IDCol, cfg.IDSep, cfg.NoChr)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNumber, err)
		}

		if _, err := fmt.Fprintln(bw, cfg.Delimiter.Join(bed)); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	return bw.Flush()
}
