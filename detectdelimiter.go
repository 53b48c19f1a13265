package gwasmisc

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. Tab-, comma- and
// semicolon-delimited summary statistics are all handled; if nothing can be
// detected, a comma is assumed.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	if len(delimiters) > 0 && len(delimiters[0]) > 0 {
		return []rune(delimiters[0])[0]
	}

	return ','
}
