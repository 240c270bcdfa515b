// Package interval implements the genomic interval algebra: overlap
// resolution between classified gene records and the construction of a
// gap-free, label-merged partition of each chromosome.
package interval

import "sort"

// Intergenic is the synthetic class assigned to chromosomal spans not
// covered by any classified gene region. It is introduced only by the
// partitioner, never by classification.
const Intergenic = "Intergenic"

// GeneRecord is a classified gene with 1-based inclusive coordinates.
// The gene name is the record's identity within a chromosome. Records are
// mutated in place (end truncation) or removed during overlap resolution.
type GeneRecord struct {
	Gene  string
	Chrom string
	Start int64
	End   int64 // inclusive
	Class string
}

// Interval is one span of the final chromosome partition. Never mutated
// after creation.
type Interval struct {
	Chrom  string
	Start  int64
	End    int64
	Class  string
	Center float64 // (Start+End)/2, not rounded
	Length int64   // End-Start+1
}

// Lengths maps chromosome name to total length. The table may be partial;
// chromosomes absent from it get no trailing intergenic span.
type Lengths map[string]int64

// SortByStart stable-sorts records ascending by start coordinate.
// Ties keep the original input order.
func SortByStart(recs []*GeneRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Start < recs[j].Start
	})
}

// GroupByChrom splits records into per-chromosome working lists, preserving
// input order within each chromosome.
func GroupByChrom(recs []*GeneRecord) map[string][]*GeneRecord {
	byChrom := make(map[string][]*GeneRecord)
	for _, r := range recs {
		byChrom[r.Chrom] = append(byChrom[r.Chrom], r)
	}
	return byChrom
}
