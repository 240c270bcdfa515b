package interval

// Partitioner derives a contiguous, non-overlapping, class-merged covering
// of each chromosome from overlap-resolved gene records. Spans not covered
// by a gene run are filled with Intergenic intervals.
type Partitioner struct {
	// Lengths bounds the trailing intergenic span. Chromosomes missing from
	// the table get no trailing span regardless of the last gene's end.
	Lengths Lengths
}

// NewPartitioner creates a partitioner with the given chromosome lengths.
// A nil table is valid and simply suppresses all trailing spans.
func NewPartitioner(lengths Lengths) *Partitioner {
	return &Partitioner{Lengths: lengths}
}

// run is the accumulator for a maximal same-class stretch.
type run struct {
	start, end int64
	class      string
}

// PartitionChromosome partitions one chromosome's overlap-resolved records,
// sorted ascending by start, into a gap-free interval sequence:
//
//  1. merge gene records into maximal same-class runs (overlapping or
//     immediately adjacent, i.e. next.Start <= running.End+1),
//  2. insert Intergenic intervals for the leading span, every inner gap,
//     and — when the chromosome length is known — the trailing span,
//  3. re-merge exactly contiguous same-class runs (start == prev.End+1),
//     which collapses Intergenic-Intergenic adjacency.
//
// Empty input yields empty output: no synthetic whole-chromosome interval is
// emitted here, the caller decides whether it wants one.
func (p *Partitioner) PartitionChromosome(recs []*GeneRecord) []Interval {
	if len(recs) == 0 {
		return nil
	}
	chrom := recs[0].Chrom

	merged := mergeGeneRuns(recs)
	filled := p.insertGaps(chrom, merged)
	final := mergeContiguous(filled)

	out := make([]Interval, 0, len(final))
	for _, r := range final {
		out = append(out, Interval{
			Chrom:  chrom,
			Start:  r.start,
			End:    r.end,
			Class:  r.class,
			Center: float64(r.start+r.end) / 2,
			Length: r.end - r.start + 1,
		})
	}
	return out
}

// mergeGeneRuns collapses gene records into maximal same-class runs. A record
// extends the running span when it shares the class and starts at or before
// running.end+1 (overlap or direct adjacency).
func mergeGeneRuns(recs []*GeneRecord) []run {
	cur := run{start: recs[0].Start, end: recs[0].End, class: recs[0].Class}

	var runs []run
	for _, r := range recs[1:] {
		if r.Class == cur.class && r.Start <= cur.end+1 {
			if r.End > cur.end {
				cur.end = r.End
			}
			continue
		}
		runs = append(runs, cur)
		cur = run{start: r.Start, end: r.End, class: r.Class}
	}
	return append(runs, cur)
}

// insertGaps fills every uncovered span between position 1 and the
// chromosome length (when known) with Intergenic runs.
func (p *Partitioner) insertGaps(chrom string, runs []run) []run {
	filled := make([]run, 0, 2*len(runs)+1)

	if runs[0].start > 1 {
		filled = append(filled, run{start: 1, end: runs[0].start - 1, class: Intergenic})
	}

	for i, r := range runs {
		filled = append(filled, r)
		if i == len(runs)-1 {
			break
		}
		if gapStart, gapEnd := r.end+1, runs[i+1].start-1; gapStart <= gapEnd {
			filled = append(filled, run{start: gapStart, end: gapEnd, class: Intergenic})
		}
	}

	if length, ok := p.Lengths[chrom]; ok {
		if last := runs[len(runs)-1].end; last < length {
			filled = append(filled, run{start: last + 1, end: length, class: Intergenic})
		}
	}

	return filled
}

// mergeContiguous collapses exactly contiguous same-class runs. Unlike
// mergeGeneRuns there is no one-base tolerance: gap insertion has already
// guaranteed that no true overlaps remain.
func mergeContiguous(runs []run) []run {
	cur := runs[0]

	var out []run
	for _, r := range runs[1:] {
		if r.class == cur.class && r.start == cur.end+1 {
			cur.end = r.end
			continue
		}
		out = append(out, cur)
		cur = r
	}
	return append(out, cur)
}

// Partition partitions all chromosomes present in recs, which must be
// overlap-resolved. Output is ordered by natural chromosome order, then by
// start within each chromosome.
func (p *Partitioner) Partition(recs []*GeneRecord) []Interval {
	byChrom := GroupByChrom(recs)

	chroms := make([]string, 0, len(byChrom))
	for chrom := range byChrom {
		chroms = append(chroms, chrom)
	}
	SortChromosomes(chroms)

	var out []Interval
	for _, chrom := range chroms {
		group := byChrom[chrom]
		SortByStart(group)
		out = append(out, p.PartitionChromosome(group)...)
	}
	return out
}
