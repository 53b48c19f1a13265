// formattedtoregenie reorders GWAS-SSF style "formatted" summary statistics
// (https://www.biorxiv.org/content/10.1101/2022.07.15.500230v1) into REGENIE
// step 2 columns so that REGENIE-only tooling can consume them.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/regenie"
	"github.com/gwasmisc/gwasmisc/table"
)

func main() {
	var pToLog10 bool
	var na string

	flag.BoolVar(&pToLog10, "pval", false, "The input P value column holds P, which will be converted to -log10(P) for LOG10P.")
	flag.StringVar(&na, "na", "NA", "Value written to REGENIE columns that the input lacks. P values equal to it are passed through.")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, `formattedtoregenie reads whitespace-delimited formatted summary statistics on stdin and writes REGENIE columns to stdout.

Input columns used (1-based):
  1 chromosome, 2 position, 3 effect allele, 4 other allele, 5 beta, 6 standard error,
  7 effect allele frequency, 8 P (or -log10 P), 12 variant ID, 15 sample size

Output header:
  `+strings.Join(regenie.Header, " "))
		flag.PrintDefaults()
	}
	flag.Parse()

	c := regenie.Converter{Layout: regenie.FormattedLayout, PToLog10: pToLog10, NA: na}
	if err := run(os.Stdin, os.Stdout, c); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

func run(in io.Reader, out io.Writer, c regenie.Converter) error {
	r, err := table.NewReader(in, table.Options{Delimiter: table.Whitespace})
	if err != nil {
		return err
	}

	w := table.NewWriter(out, '\t')
	if err := w.Write(c.HeaderRow()); err != nil {
		return err
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		converted, err := c.Convert(row)
		if err != nil {
			return fmt.Errorf("line %d: %w", r.Line(), err)
		}

		if err := w.Write(converted); err != nil {
			return err
		}
	}

	return w.Flush()
}
