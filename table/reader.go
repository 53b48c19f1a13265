package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/gwasmisc/gwasmisc"
)

// Options control how a table is opened.
type Options struct {
	Delimiter Delimiter

	// Lines starting with Comment are skipped. Empty disables comments.
	Comment string

	// If NoHeader is set, the first line is data and Header returns nil.
	NoHeader bool

	// Client is used for gs:// paths. May be nil if no path is remote.
	Client *storage.Client
}

// Reader reads a delimited table one record at a time. Records must have as
// many fields as the header (or, without a header, as the first record).
type Reader struct {
	header []string
	width  int
	next   func() ([]string, int, error)
	line   int
	closer func() error
	comma  rune
}

// NewReader reads from r, consuming the header line unless opts.NoHeader is
// set. opts.Delimiter must not be AutoDetect; use Open for sniffing.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	if opts.Delimiter.Auto {
		return nil, fmt.Errorf("NewReader: delimiter auto-detection requires a seekable input; use Open")
	}

	rdr := &Reader{
		width:  -1,
		closer: func() error { return nil },
		comma:  opts.Delimiter.OutputRune(),
	}

	if opts.Delimiter.IsWhitespace() {
		rdr.next = whitespaceRecords(r, opts.Comment)
	} else {
		rdr.next = csvRecords(r, opts.Delimiter.Comma, opts.Comment)
	}

	if opts.NoHeader {
		return rdr, nil
	}

	header, line, err := rdr.next()
	if err == io.EOF {
		return nil, fmt.Errorf("NewReader: no header line found")
	} else if err != nil {
		return nil, pfx.Err(err)
	}

	rdr.header = append([]string(nil), header...)
	rdr.width = len(header)
	rdr.line = line

	return rdr, nil
}

// Open opens path, which may be "-" for stdin, a local file or a gs:// object,
// decompressing it if needed. When opts.Delimiter is AutoDetect the delimiter
// is sniffed from the first lines of the decompressed data.
func Open(path string, opts Options) (*Reader, error) {
	var rs gwasmisc.ReadSeekCloser
	if path == "-" {
		// Stdin cannot be rewound, so hold it in memory.
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rs = nopSeekCloser{bytes.NewReader(data)}
	} else {
		f, err := gwasmisc.OpenSeeker(path, opts.Client)
		if err != nil {
			return nil, err
		}
		rs = f
	}

	if opts.Delimiter.Auto {
		sniff, err := gwasmisc.MaybeDecompressReadCloser(rs)
		if err != nil {
			rs.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		opts.Delimiter = Delimiter{Comma: gwasmisc.DetermineDelimiter(sniff)}
		sniff.Close()

		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			rs.Close()
			return nil, pfx.Err(err)
		}
	}

	// Have to re-decompress the file since the decompressed reader cannot
	// seek.
	dr, err := gwasmisc.MaybeDecompressReadCloser(rs)
	if err != nil {
		rs.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rdr, err := NewReader(dr, opts)
	if err != nil {
		dr.Close()
		rs.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rdr.closer = func() error {
		dr.Close()
		return rs.Close()
	}

	return rdr, nil
}

// Header returns the header fields, or nil for a headerless table.
func (r *Reader) Header() []string {
	return r.header
}

// Comma is the rune that should be used to write this table back out.
func (r *Reader) Comma() rune {
	return r.comma
}

// Line is the 1-based line number of the record most recently returned.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next record, or io.EOF.
func (r *Reader) Read() ([]string, error) {
	record, line, err := r.next()
	if err != nil {
		return nil, err
	}
	r.line = line

	if r.width < 0 {
		r.width = len(record)
	}

	if len(record) != r.width {
		return nil, fmt.Errorf("line %d has %d fields, but %d were expected", line, len(record), r.width)
	}

	return record, nil
}

// ReadAll reads the remaining records into a Table.
func (r *Reader) ReadAll() (*Table, error) {
	out := &Table{Header: r.header}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		out.Rows = append(out.Rows, record)
	}

	return out, nil
}

func (r *Reader) Close() error {
	return r.closer()
}

func whitespaceRecords(r io.Reader, comment string) func() ([]string, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0

	return func() ([]string, int, error) {
		for scanner.Scan() {
			line++
			text := scanner.Text()
			if comment != "" && strings.HasPrefix(text, comment) {
				continue
			}

			fields := strings.Fields(text)
			if len(fields) == 0 {
				continue
			}

			return fields, line, nil
		}

		if err := scanner.Err(); err != nil {
			return nil, line, err
		}

		return nil, line, io.EOF
	}
}

func csvRecords(r io.Reader, comma rune, comment string) func() ([]string, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	// encoding/csv handles single-rune comments itself; longer prefixes are
	// checked on the first field.
	multiRuneComment := ""
	if len([]rune(comment)) == 1 {
		cr.Comment = []rune(comment)[0]
	} else {
		multiRuneComment = comment
	}

	return func() ([]string, int, error) {
		for {
			record, err := cr.Read()
			if err != nil {
				return nil, 0, err
			}

			line, _ := cr.FieldPos(0)
			if multiRuneComment != "" && len(record) > 0 && strings.HasPrefix(record[0], multiRuneComment) {
				continue
			}

			return record, line, nil
		}
	}
}

type nopSeekCloser struct {
	io.ReadSeeker
}

func (nopSeekCloser) Close() error { return nil }
