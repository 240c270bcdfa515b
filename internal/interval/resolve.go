package interval

// ResolveChromosome eliminates pairwise overlaps between gene records of a
// single chromosome. The input must already be sorted ascending by start
// (stable ties); the caller owns sorting. The returned slice is overlap-free:
// for all adjacent pairs, end_i < start_j.
//
// The walk mutates a live working list. At each step the current record is
// compared with its successor:
//
//   - same class: merge — current absorbs the successor (end extended to the
//     max), the successor is removed by identity, and the cursor stays put so
//     a newly adjacent record is re-evaluated against the grown current.
//   - different class: truncate — current.End = next.Start-1. The earlier
//     record always loses the contested bases; this asymmetry is load-bearing
//     and must not be "fixed" into a symmetric resolution. Truncation may
//     leave a zero- or negative-length record when next.Start <= current.Start;
//     that degenerate record flows through unchanged.
//
// Inputs with fewer than two records are returned as-is. Malformed records
// (start > end) are not rejected; they propagate downstream.
func ResolveChromosome(recs []*GeneRecord) []*GeneRecord {
	if len(recs) < 2 {
		return recs
	}

	work := make([]*GeneRecord, len(recs))
	copy(work, recs)

	i := 0
	for i < len(work)-1 {
		cur, next := work[i], work[i+1]

		if cur.End < next.Start {
			i++
			continue
		}

		if cur.Class == next.Class {
			if next.End > cur.End {
				cur.End = next.End
			}
			work = remove(work, next)
			// Cursor stays: extending cur.End can make it overlap the record
			// that followed next. Removal keeps the list sorted by start, so
			// no re-sort is needed before re-evaluating.
			continue
		}

		cur.End = next.Start - 1
		i++
	}

	return work
}

// remove deletes rec from the working list by identity. A miss is an
// implementation bug, not a data problem, and panics.
func remove(work []*GeneRecord, rec *GeneRecord) []*GeneRecord {
	for k, r := range work {
		if r == rec {
			return append(work[:k], work[k+1:]...)
		}
	}
	panic("interval: removing a record that is not in the working set")
}

// Resolve groups records by chromosome, stable-sorts each group by start,
// resolves overlaps per chromosome, and returns all surviving records in
// natural chromosome order, start-ascending within each chromosome.
// Chromosomes never interact.
func Resolve(recs []*GeneRecord) []*GeneRecord {
	byChrom := GroupByChrom(recs)

	chroms := make([]string, 0, len(byChrom))
	for chrom := range byChrom {
		chroms = append(chroms, chrom)
	}
	SortChromosomes(chroms)

	var out []*GeneRecord
	for _, chrom := range chroms {
		group := byChrom[chrom]
		SortByStart(group)
		out = append(out, ResolveChromosome(group)...)
	}
	return out
}
