// mergetables joins two delimited tables on one or more key columns, or by
// row position when no keys are given.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/table"
)

type config struct {
	Left, Right     string
	LeftOn, RightOn []int
	How             table.How
	LeftDelimiter   table.Delimiter
	RightDelimiter  table.Delimiter
	OutputSep       rune
	NoHeader        bool
	NA              string
	Output          string
}

func main() {
	var cfg config
	var on, how, delimiter, outputSep string

	flag.StringVar(&cfg.Left, "l", "", "Left table. May be compressed or a gs:// path.")
	flag.StringVar(&cfg.Right, "r", "", "Right table. May be compressed or a gs:// path.")
	flag.StringVar(&on, "on", "", "0-based key columns: left columns, optionally followed by ; and the right columns, e.g. 0,1;0,3 joins left columns 0,1 to right columns 0,3 and 1,2 uses columns 1,2 on both sides. Empty joins by row position.")
	flag.StringVar(&how, "how", "left", "Join type: left, right, inner or outer.")
	flag.StringVar(&delimiter, "d", "ws", "Input delimiter for both tables, or left;right. Each is ws, tab, comma, auto, or a single character.")
	flag.StringVar(&outputSep, "output-sep", "tab", "Output delimiter: tab, comma, or a single character.")
	flag.BoolVar(&cfg.NoHeader, "no-header", false, "Neither input has a header line. No header is written.")
	flag.StringVar(&cfg.NA, "na", "NA", "Value for cells that have no counterpart in the other table.")
	flag.StringVar(&cfg.Output, "o", "", "Output file. Defaults to stdout.")
	flag.Parse()

	if cfg.Left == "" || cfg.Right == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	var err error
	if cfg.LeftOn, cfg.RightOn, err = parseOn(on); err != nil {
		log.Fatalln(err)
	}
	if cfg.How, err = table.ParseJoinHow(how); err != nil {
		log.Fatalln(err)
	}
	if cfg.LeftDelimiter, cfg.RightDelimiter, err = parseDelimiters(delimiter); err != nil {
		log.Fatalln(err)
	}
	if cfg.OutputSep, err = parseOutputSep(outputSep); err != nil {
		log.Fatalln(err)
	}

	if err := run(cfg); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

func run(cfg config) error {
	client, err := gwasmisc.StorageClientFor(cfg.Left, cfg.Right)
	if err != nil {
		return err
	}

	left, err := readTable(cfg.Left, table.Options{Delimiter: cfg.LeftDelimiter, NoHeader: cfg.NoHeader, Client: client})
	if err != nil {
		return err
	}

	right, err := readTable(cfg.Right, table.Options{Delimiter: cfg.RightDelimiter, NoHeader: cfg.NoHeader, Client: client})
	if err != nil {
		return err
	}

	log.Printf("Left: %d rows x %d columns. Right: %d rows x %d columns.\n", len(left.Rows), left.Width(), len(right.Rows), right.Width())

	merged, err := table.Join(left, right, cfg.LeftOn, cfg.RightOn, cfg.How, cfg.NA)
	if err != nil {
		return err
	}

	log.Printf("Merged: %d rows\n", len(merged.Rows))

	w, err := table.Create(cfg.Output, cfg.OutputSep)
	if err != nil {
		return err
	}

	if err := w.WriteTable(merged, !cfg.NoHeader); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

func readTable(path string, opts table.Options) (*table.Table, error) {
	r, err := table.Open(path, opts)
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

// parseOn parses "l1,l2[;r1,r2]" into 0-based left and right key columns. A
// single list is used for both tables.
func parseOn(s string) ([]int, []int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil, nil
	}

	groups := strings.Split(s, ";")
	if len(groups) > 2 {
		return nil, nil, fmt.Errorf("key columns %q: expected left columns, optionally followed by ;right columns", s)
	}

	leftOn, err := parseColumnList(groups[0])
	if err != nil {
		return nil, nil, err
	}

	if len(groups) == 1 {
		return leftOn, leftOn, nil
	}

	rightOn, err := parseColumnList(groups[1])
	if err != nil {
		return nil, nil, err
	}

	if len(leftOn) != len(rightOn) {
		return nil, nil, fmt.Errorf("key columns %q: %d left columns but %d right columns", s, len(leftOn), len(rightOn))
	}

	return leftOn, rightOn, nil
}

func parseColumnList(s string) ([]int, error) {
	parts := table.SplitList(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("key columns %q: no columns given", s)
	}

	out := make([]int, 0, len(parts))
	for _, v := range parts {
		i, err := strconv.Atoi(v)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("key column %q must be a non-negative integer", v)
		}
		out = append(out, i)
	}

	return out, nil
}

func parseDelimiters(s string) (table.Delimiter, table.Delimiter, error) {
	parts := strings.Split(s, ";")
	if len(parts) > 2 {
		return table.Delimiter{}, table.Delimiter{}, fmt.Errorf("delimiter %q: expected one value or left;right", s)
	}

	left, err := table.ParseDelimiter(parts[0])
	if err != nil {
		return table.Delimiter{}, table.Delimiter{}, err
	}

	if len(parts) == 1 {
		return left, left, nil
	}

	right, err := table.ParseDelimiter(parts[1])
	if err != nil {
		return table.Delimiter{}, table.Delimiter{}, err
	}

	return left, right, nil
}

func parseOutputSep(s string) (rune, error) {
	d, err := table.ParseDelimiter(s)
	if err != nil {
		return 0, err
	}

	if d.Auto {
		return 0, fmt.Errorf("output delimiter cannot be auto")
	}

	return d.OutputRune(), nil
}
