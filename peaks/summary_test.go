package peaks

import (
	"bytes"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	hits := []Hit{
		hit("2", 100, 1e-9),
		hit("2", 200, 1e-7),
		hit("2", 9000000, 1e-8),
		hit("1", 100, 0.5),
	}
	opts := DefaultOptions()

	loci, err := Pick(hits, opts)
	if err != nil {
		t.Fatal(err)
	}

	summaries := Summarize(hits, loci, opts, "NA")
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 chromosomes, got %+v", summaries)
	}

	if s := summaries[0]; s.Chromosome != "1" || s.Hits != 1 || s.Significant != 0 || s.Loci != 0 || s.BestP != "0.5" || s.MedianLocusP != "NA" {
		t.Fatalf("Unexpected chromosome 1 summary %+v", s)
	}

	if s := summaries[1]; s.Chromosome != "2" || s.Hits != 3 || s.Significant != 3 || s.Loci != 2 || s.BestP != "1e-09" {
		t.Fatalf("Unexpected chromosome 2 summary %+v", s)
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, summaries); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[0] != "CHROM\tN_HITS\tN_SIGNIFICANT\tN_LOCI\tBEST_P\tMEDIAN_LOCUS_P" {
		t.Fatalf("Unexpected summary output:\n%s", buf.String())
	}
}

func TestSummarizeBeyondFloat64Range(t *testing.T) {
	cols := Columns{Chromosome: 0, Position: 1, P: 2, NegLog10: true}

	h, ok, err := cols.HitFromRow([]string{"19", "44908684", "400"}, 2)
	if err != nil || !ok {
		t.Fatalf("Unexpected result: %v %v", ok, err)
	}

	hits := []Hit{h, NewHit("19", 100, 1e-3)}
	loci, err := Pick(hits, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	summaries := Summarize(hits, loci, DefaultOptions(), "NA")
	if len(summaries) != 1 {
		t.Fatalf("Expected 1 chromosome, got %+v", summaries)
	}

	if s := summaries[0]; s.Significant != 1 || s.Loci != 1 || s.BestP != "1.0E-400" || s.MedianLocusP != "1.0E-400" {
		t.Fatalf("Unexpected summary %+v", s)
	}
}
