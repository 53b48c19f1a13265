package table

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gwasmisc/gwasmisc"
)

// Writer writes delimited rows. Fields are not quoted.
type Writer struct {
	bw     *bufio.Writer
	comma  string
	closer io.Closer
}

func NewWriter(w io.Writer, comma rune) *Writer {
	return &Writer{
		bw:    bufio.NewWriter(w),
		comma: string(comma),
	}
}

// Create writes to path, or to stdout if path is "" or "-".
func Create(path string, comma rune) (*Writer, error) {
	if path == "" || path == "-" {
		return NewWriter(os.Stdout, comma), nil
	}

	expanded, err := gwasmisc.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(expanded, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, pfx.Err(err)
	}

	w := NewWriter(f, comma)
	w.closer = f

	return w, nil
}

func (w *Writer) Write(fields []string) error {
	if _, err := w.bw.WriteString(strings.Join(fields, w.comma)); err != nil {
		return err
	}

	return w.bw.WriteByte('\n')
}

// WriteTable writes the header (if any) and every row of t.
func (w *Writer) WriteTable(t *Table, withHeader bool) error {
	if withHeader && t.Header != nil {
		if err := w.Write(t.Header); err != nil {
			return err
		}
	}

	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Close flushes and, for files made by Create, closes the file.
func (w *Writer) Close() error {
	err := w.bw.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}

	return err
}
