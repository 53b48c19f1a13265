// regenie2exponent appends a P column, written as "[Mantissa]E[Exponent]", to
// a REGENIE result file whose LOG10P column holds -log10(P). Very small P
// values that would underflow a float64 are kept exact.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/pvalue"
	"github.com/gwasmisc/gwasmisc/table"
)

func main() {
	var regenie, logPCol, delim, output, na string
	var outDelim string
	flag.StringVar(&regenie, "regenie", "", "Path to result file that you want to negate and exponentiate. May be compressed or a gs:// path.")
	flag.StringVar(&logPCol, "log_p_col", "LOG10P", "Name (or 1-based index) of the column that you want to negate and exponentiate.")
	flag.StringVar(&delim, "delim", "ws", "Column delimiter: ws, tab, comma, auto, or a single character.")
	flag.StringVar(&outDelim, "output_delim", "tab", "Delimiter for the output.")
	flag.StringVar(&na, "na", "NA", "Missing value marker, passed through unchanged.")
	flag.StringVar(&output, "o", "", "Output file. Defaults to stdout.")
	flag.Parse()

	if regenie == "" {
		log.Println("regenie2exponent")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(regenie, logPCol, delim, outDelim, na, output); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

func run(regenie, logPCol, delim, outDelim, na, output string) error {
	in, err := table.ParseDelimiter(delim)
	if err != nil {
		return err
	}

	out, err := table.ParseDelimiter(outDelim)
	if err != nil {
		return err
	}
	if out.Auto {
		return fmt.Errorf("output delimiter cannot be auto")
	}

	client, err := gwasmisc.StorageClientFor(regenie)
	if err != nil {
		return err
	}

	r, err := table.Open(regenie, table.Options{Delimiter: in, Comment: "#", Client: client})
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := table.Create(output, out.OutputRune())
	if err != nil {
		return err
	}

	if err := exponentiate(r, w, logPCol, na); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

type rowWriter interface {
	Write(fields []string) error
}

func exponentiate(r *table.Reader, w rowWriter, logPCol, na string) error {
	logPColNum, err := table.ColumnIndex(r.Header(), logPCol)
	if err != nil {
		return err
	}

	if err := w.Write(append(append([]string(nil), r.Header()...), "P")); err != nil {
		return err
	}

	for {
		line, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		p := na
		if line[logPColNum] != na {
			if p, err = pvalue.ScientificFromNegLog10(line[logPColNum]); err != nil {
				return fmt.Errorf("line %d: %w", r.Line(), err)
			}
		}

		if err := w.Write(append(line, p)); err != nil {
			return err
		}
	}

	return nil
}
