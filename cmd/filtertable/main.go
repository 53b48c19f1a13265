// filtertable keeps the rows of a table whose key column appears in a key
// list. Either the table or the key list may be read from stdin. Extra key
// list columns are appended to each kept row.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/table"
)

type config struct {
	Table     string
	Keys      string
	Col       int
	KeyCol    int
	Header    bool
	Delimiter table.Delimiter
	KeysDelim table.Delimiter
	Output    string
}

func main() {
	var cfg config
	var sep, keySep string

	flag.StringVar(&cfg.Table, "t", "-", "Table to filter, or - for stdin. May be compressed or a gs:// path.")
	flag.StringVar(&cfg.Keys, "f", "-", "Key list, or - for stdin.")
	flag.IntVar(&cfg.Col, "col", 0, "0-based key column of the table.")
	flag.IntVar(&cfg.KeyCol, "key-col", 0, "0-based key column of the key list.")
	flag.BoolVar(&cfg.Header, "header", false, "The table has a header line. It is written unchanged before the kept rows.")
	flag.StringVar(&sep, "sep", "tab", "Table delimiter: ws, tab, comma, or a single character.")
	flag.StringVar(&keySep, "key-sep", "ws", "Key list delimiter.")
	flag.StringVar(&cfg.Output, "o", "", "Output file. Defaults to stdout.")
	flag.Parse()

	if cfg.Table == "-" && cfg.Keys == "-" {
		log.Println("At most one of -t and -f can be read from stdin")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var err error
	if cfg.Delimiter, err = table.ParseDelimiter(sep); err != nil {
		log.Fatalln(err)
	}
	if cfg.KeysDelim, err = table.ParseDelimiter(keySep); err != nil {
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
	client, err := gwasmisc.StorageClientFor(cfg.Table, cfg.Keys)
	if err != nil {
		return err
	}

	tbl, err := readTable(cfg.Table, table.Options{Delimiter: cfg.Delimiter, NoHeader: !cfg.Header, Client: client})
	if err != nil {
		return err
	}

	keys, err := readTable(cfg.Keys, table.Options{Delimiter: cfg.KeysDelim, NoHeader: true, Client: client})
	if err != nil {
		return err
	}

	kept, err := filter(tbl, keys, cfg.Col, cfg.KeyCol)
	if err != nil {
		return err
	}
	log.Printf("Kept %d of %d rows\n", len(kept.Rows), len(tbl.Rows))

	w, err := table.Create(cfg.Output, cfg.Delimiter.OutputRune())
	if err != nil {
		return err
	}

	if err := w.WriteTable(kept, cfg.Header); err != nil {
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

// filter inner-joins tbl with keys. The key list's key column is folded into
// the table's, so each kept row is the table row followed by the key list's
// other columns. The header, if any, is the table's plus the extra columns
// named key_<i>.
func filter(tbl, keys *table.Table, col, keyCol int) (*table.Table, error) {
	if len(tbl.Rows) == 0 || len(keys.Rows) == 0 {
		return &table.Table{Header: tbl.Header}, nil
	}

	width := tbl.Width()
	if col < 0 || col >= width {
		return nil, fmt.Errorf("table key column %d is out of range (%d columns)", col, width)
	}

	left := &table.Table{Header: tbl.Header, Rows: tbl.Rows}
	if left.Header == nil {
		left.Header = table.GeneratedHeader(width, "")
	}

	keysWidth := keys.Width()
	if keyCol < 0 || keyCol >= keysWidth {
		return nil, fmt.Errorf("key list key column %d is out of range (%d columns)", keyCol, keysWidth)
	}

	right := &table.Table{Header: make([]string, keysWidth), Rows: keys.Rows}
	for j := range right.Header {
		right.Header[j] = "key_" + strconv.Itoa(j)
	}
	right.Header[keyCol] = left.Header[col]

	out, err := table.Join(left, right, []int{col}, []int{keyCol}, table.HowInner, "")
	if err != nil {
		return nil, err
	}

	if tbl.Header == nil {
		out.Header = nil
	}

	return out, nil
}
