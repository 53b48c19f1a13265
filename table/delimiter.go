package table

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Delimiter describes how the fields of a line are separated. The zero value
// is whitespace mode: runs of blanks separate fields, like awk or pandas'
// sep="\s+".
type Delimiter struct {
	Comma rune
	Auto  bool
}

var (
	Whitespace = Delimiter{}
	Tab        = Delimiter{Comma: '\t'}
	AutoDetect = Delimiter{Auto: true}
)

// ParseDelimiter interprets a delimiter as given on the command line.
func ParseDelimiter(s string) (Delimiter, error) {
	switch s {
	case "", "ws", "whitespace", `\s+`, "space":
		return Whitespace, nil
	case `\t`, "tab", "\t":
		return Tab, nil
	case "auto":
		return AutoDetect, nil
	case "comma":
		return Delimiter{Comma: ','}, nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return Delimiter{}, fmt.Errorf("Delimiter %q must be a single character, or one of ws, tab, comma, auto", s)
	}

	r, _ := utf8.DecodeRuneInString(s)
	if r == '\n' || r == '\r' || r == '"' {
		return Delimiter{}, fmt.Errorf("Delimiter %q cannot be used to separate fields", s)
	}

	return Delimiter{Comma: r}, nil
}

// IsWhitespace reports whether fields are split on runs of blanks.
func (d Delimiter) IsWhitespace() bool {
	return !d.Auto && d.Comma == 0
}

// OutputRune is the rune used when writing fields split by d. Whitespace
// input is written back tab-delimited.
func (d Delimiter) OutputRune() rune {
	if d.Comma == 0 {
		return '\t'
	}

	return d.Comma
}

// Split splits a single line. It does not understand quoting; use a Reader for
// quoted CSV.
func (d Delimiter) Split(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	if d.Comma == 0 {
		return strings.Fields(line)
	}

	return strings.Split(line, string(d.Comma))
}

// Join is the inverse of Split.
func (d Delimiter) Join(fields []string) string {
	return strings.Join(fields, string(d.OutputRune()))
}

func (d Delimiter) String() string {
	switch {
	case d.Auto:
		return "auto"
	case d.Comma == 0:
		return "whitespace"
	case d.Comma == '\t':
		return "tab"
	}

	return string(d.Comma)
}
