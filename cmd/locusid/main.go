// locusid assigns a shared locus ID to variants that lie within a distance
// threshold of an earlier variant on the same chromosome.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/gwasmisc/gwasmisc"
	_ "github.com/gwasmisc/gwasmisc/compileinfoprint"
	"github.com/gwasmisc/gwasmisc/table"
	"github.com/theodesp/unionfind"
)

type config struct {
	SNPFile           string
	Output            string
	Chr               string
	Pos               string
	Delimiter         string
	LocusIDName       string
	DistanceThreshold float64
	Transitive        bool
}

func main() {
	var cfg config

	flag.StringVar(&cfg.SNPFile, "snp_file", "", "File with SNPs. Loci should be pre-sorted. May be compressed or a gs:// path.")
	flag.Float64Var(&cfg.DistanceThreshold, "distance_threshold", 500000, "Maximum distance to collapse into the same ID")
	flag.StringVar(&cfg.Chr, "chr", "CHR", "Chromosome column (name or 1-based index).")
	flag.StringVar(&cfg.Pos, "pos", "BP", "Position column (name or 1-based index).")
	flag.StringVar(&cfg.Delimiter, "delimiter", "tab", "Delimiter: ws, tab, comma, auto, or a single character.")
	flag.StringVar(&cfg.LocusIDName, "locusid_name", "GlobalLocusID", "Name of 'GlobalLocusID' column.")
	flag.StringVar(&cfg.Output, "o", "", "Output file. Defaults to stdout.")
	flag.BoolVar(&cfg.Transitive, "transitive", false, "Chain SNPs: any two SNPs within the threshold share an ID, even through intermediate SNPs.")
	flag.Parse()

	if cfg.SNPFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		if gwasmisc.IsBrokenPipe(err) {
			return
		}
		log.Fatalln(err)
	}
}

type snp struct {
	chrom string
	bp    float64
}

func run(cfg config) error {
	delim, err := table.ParseDelimiter(cfg.Delimiter)
	if err != nil {
		return err
	}

	client, err := gwasmisc.StorageClientFor(cfg.SNPFile)
	if err != nil {
		return err
	}

	r, err := table.Open(cfg.SNPFile, table.Options{Delimiter: delim, Client: client})
	if err != nil {
		return err
	}
	defer r.Close()

	tbl, err := r.ReadAll()
	if err != nil {
		return err
	}

	if len(tbl.Rows) < 1 {
		return fmt.Errorf("No entries found")
	}

	chrCol, err := table.ColumnIndex(tbl.Header, cfg.Chr)
	if err != nil {
		return fmt.Errorf("chr: %w", err)
	}
	posCol, err := table.ColumnIndex(tbl.Header, cfg.Pos)
	if err != nil {
		return fmt.Errorf("pos: %w", err)
	}

	snps := make([]snp, len(tbl.Rows))
	for i, row := range tbl.Rows {
		bp, err := strconv.ParseFloat(row[posCol], 64)
		if err != nil {
			return fmt.Errorf("row %d: position %q: %w", i+1, row[posCol], err)
		}
		snps[i] = snp{chrom: gwasmisc.StripChrPrefix(row[chrCol]), bp: bp}
	}

	var ids []int
	if cfg.Transitive {
		ids = chainLocusIDs(snps, cfg.DistanceThreshold)
	} else {
		ids = assignLocusIDs(snps, cfg.DistanceThreshold)
	}

	w, err := table.Create(cfg.Output, '\t')
	if err != nil {
		return err
	}

	if err := w.Write(append(append([]string(nil), tbl.Header...), cfg.LocusIDName)); err != nil {
		w.Close()
		return err
	}
	for i, row := range tbl.Rows {
		if err := w.Write(append(row, strconv.Itoa(ids[i]))); err != nil {
			w.Close()
			return err
		}
	}

	return w.Close()
}

// assignLocusIDs numbers loci from 1 in order of first appearance. Each
// unassigned SNP starts a new locus and claims every other unassigned SNP
// within threshold of it; claimed SNPs do not extend the locus further.
func assignLocusIDs(snps []snp, threshold float64) []int {
	ids := make([]int, len(snps))

	next := 1
	for i := range snps {
		if ids[i] != 0 {
			continue
		}

		ids[i] = next
		for j := range snps {
			if ids[j] == 0 && atSameLocus(snps[i], snps[j], threshold) {
				ids[j] = next
			}
		}
		next++
	}

	return ids
}

// chainLocusIDs joins every pair of SNPs within threshold of each other and
// numbers the resulting clusters from 1 in order of first appearance.
func chainLocusIDs(snps []snp, threshold float64) []int {
	order := make([]int, len(snps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := snps[order[a]], snps[order[b]]
		if sa.chrom != sb.chrom {
			return sa.chrom < sb.chrom
		}
		return sa.bp < sb.bp
	})

	// Within a chromosome, SNPs sorted by position only need to be compared
	// with their neighbor.
	uf := unionfind.NewThreadSafeUnionFind(len(snps))
	for k := 1; k < len(order); k++ {
		if atSameLocus(snps[order[k-1]], snps[order[k]], threshold) {
			uf.Union(order[k-1], order[k])
		}
	}

	ids := make([]int, len(snps))
	byRoot := make(map[int]int)
	for i := range snps {
		root := uf.Root(i)
		if _, exists := byRoot[root]; !exists {
			byRoot[root] = len(byRoot) + 1
		}
		ids[i] = byRoot[root]
	}

	return ids
}

func atSameLocus(snp1, snp2 snp, distanceThreshold float64) bool {
	if snp1.chrom != snp2.chrom {
		return false
	}

	return math.Abs(snp1.bp-snp2.bp) <= distanceThreshold
}
