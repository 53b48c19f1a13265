package main

import (
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gwasmisc/gwasmisc/peaks"
	"github.com/gwasmisc/gwasmisc/table"
)

type rowReader interface {
	Read() ([]string, error)
	Line() int
}

func readHits(r rowReader, cols peaks.Columns) ([]peaks.Hit, int, error) {
	hits := make([]peaks.Hit, 0)
	skipped := 0

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, 0, err
		}

		hit, ok, err := cols.HitFromRow(row, r.Line())
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			skipped++
			continue
		}

		hits = append(hits, hit)
	}

	return hits, skipped, nil
}

func writeLoci(path string, header []string, loci []peaks.Hit) error {
	w, err := table.Create(path, '\t')
	if err != nil {
		return err
	}

	if err := w.Write(header); err != nil {
		w.Close()
		return err
	}

	for _, locus := range loci {
		if err := w.Write(locus.Row); err != nil {
			w.Close()
			return err
		}
	}

	return w.Close()
}

func writeSummary(path string, summaries []peaks.ChromSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := peaks.WriteSummary(f, summaries); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
