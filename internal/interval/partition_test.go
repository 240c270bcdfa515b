package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertTiles checks that intervals are contiguous, non-overlapping, ordered
// by start, and exactly cover [from, to].
func assertTiles(t *testing.T, ivs []Interval, from, to int64) {
	t.Helper()
	require.NotEmpty(t, ivs)
	assert.Equal(t, from, ivs[0].Start)
	assert.Equal(t, to, ivs[len(ivs)-1].End)
	for i := 0; i < len(ivs)-1; i++ {
		assert.Equal(t, ivs[i].End+1, ivs[i+1].Start,
			"interval %d must abut interval %d", i, i+1)
	}
}

// assertNoAdjacentSameClass checks the final-merge invariant.
func assertNoAdjacentSameClass(t *testing.T, ivs []Interval) {
	t.Helper()
	for i := 0; i < len(ivs)-1; i++ {
		assert.NotEqual(t, ivs[i].Class, ivs[i+1].Class,
			"intervals %d and %d share class %q", i, i+1, ivs[i].Class)
	}
}

func TestPartitionChromosome_EndToEnd(t *testing.T) {
	p := NewPartitioner(Lengths{"1": 1000})

	recs := []*GeneRecord{
		rec("g1", 100, 200, "A"),
		rec("g2", 150, 250, "A"),
		rec("g3", 400, 500, "B"),
	}

	out := p.PartitionChromosome(recs)

	expected := []Interval{
		{Chrom: "1", Start: 1, End: 99, Class: Intergenic, Center: 50, Length: 99},
		{Chrom: "1", Start: 100, End: 250, Class: "A", Center: 175, Length: 151},
		{Chrom: "1", Start: 251, End: 399, Class: Intergenic, Center: 325, Length: 149},
		{Chrom: "1", Start: 400, End: 500, Class: "B", Center: 450, Length: 101},
		{Chrom: "1", Start: 501, End: 1000, Class: Intergenic, Center: 750.5, Length: 500},
	}
	assert.Equal(t, expected, out)
	assertTiles(t, out, 1, 1000)
	assertNoAdjacentSameClass(t, out)
}

func TestPartitionChromosome_EmptyInput(t *testing.T) {
	p := NewPartitioner(Lengths{"1": 1000})
	assert.Empty(t, p.PartitionChromosome(nil))
}

func TestPartitionChromosome_UnknownLengthSkipsTrailingGap(t *testing.T) {
	p := NewPartitioner(nil)

	out := p.PartitionChromosome([]*GeneRecord{rec("g1", 100, 200, "A")})

	require.Len(t, out, 2)
	assert.Equal(t, Intergenic, out[0].Class)
	assert.Equal(t, int64(1), out[0].Start)
	assert.Equal(t, int64(99), out[0].End)
	assert.Equal(t, int64(200), out[1].End, "no trailing span without a length")
}

func TestPartitionChromosome_GeneStartsAtOne(t *testing.T) {
	p := NewPartitioner(Lengths{"1": 300})

	out := p.PartitionChromosome([]*GeneRecord{rec("g1", 1, 200, "A")})

	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Class, "no leading span when the first gene starts at 1")
	assert.Equal(t, Intergenic, out[1].Class)
	assertTiles(t, out, 1, 300)
}

func TestPartitionChromosome_GeneReachesChromosomeEnd(t *testing.T) {
	p := NewPartitioner(Lengths{"1": 200})

	out := p.PartitionChromosome([]*GeneRecord{rec("g1", 50, 200, "A")})

	require.Len(t, out, 2)
	assert.Equal(t, int64(200), out[1].End, "no trailing span when the last gene hits the end")
	assert.Equal(t, "A", out[1].Class)
}

func TestPartitionChromosome_AdjacentSameClassRunsMerge(t *testing.T) {
	// Directly adjacent same-class genes (one-base tolerance) collapse into
	// a single run in the first merge pass.
	p := NewPartitioner(Lengths{"1": 500})

	recs := []*GeneRecord{
		rec("g1", 10, 100, "A"),
		rec("g2", 101, 200, "A"),
		rec("g3", 300, 400, "A"),
	}

	out := p.PartitionChromosome(recs)

	expected := []Interval{
		{Chrom: "1", Start: 1, End: 9, Class: Intergenic, Center: 5, Length: 9},
		{Chrom: "1", Start: 10, End: 200, Class: "A", Center: 105, Length: 191},
		{Chrom: "1", Start: 201, End: 299, Class: Intergenic, Center: 250, Length: 99},
		{Chrom: "1", Start: 300, End: 400, Class: "A", Center: 350, Length: 101},
		{Chrom: "1", Start: 401, End: 500, Class: Intergenic, Center: 450.5, Length: 100},
	}
	assert.Equal(t, expected, out)
}

func TestPartitionChromosome_FinalMergeCollapsesIntergenic(t *testing.T) {
	// Different-class genes separated by nothing: truncation upstream can
	// leave exactly abutting runs; trailing and inner intergenic spans that
	// end up contiguous must merge in the final pass.
	p := NewPartitioner(Lengths{"1": 1000})

	recs := []*GeneRecord{
		rec("g1", 100, 199, "A"),
		rec("g2", 200, 300, "B"),
	}

	out := p.PartitionChromosome(recs)

	expected := []Interval{
		{Chrom: "1", Start: 1, End: 99, Class: Intergenic, Center: 50, Length: 99},
		{Chrom: "1", Start: 100, End: 199, Class: "A", Center: 149.5, Length: 100},
		{Chrom: "1", Start: 200, End: 300, Class: "B", Center: 250, Length: 101},
		{Chrom: "1", Start: 301, End: 1000, Class: Intergenic, Center: 650.5, Length: 700},
	}
	assert.Equal(t, expected, out)
	assertNoAdjacentSameClass(t, out)
}

func TestPartitionChromosome_CoverageProperty(t *testing.T) {
	p := NewPartitioner(Lengths{"1": 10000})

	recs := []*GeneRecord{
		rec("g1", 37, 512, "A"),
		rec("g2", 513, 900, "B"),
		rec("g3", 2000, 2000, "AB"),
		rec("g4", 2001, 3000, "AB"),
		rec("g5", 9999, 10000, "NAB"),
	}

	out := p.PartitionChromosome(recs)

	assertTiles(t, out, 1, 10000)
	assertNoAdjacentSameClass(t, out)
	for _, iv := range out {
		assert.Equal(t, iv.End-iv.Start+1, iv.Length)
		assert.Equal(t, float64(iv.Start+iv.End)/2, iv.Center)
	}
}

func TestPartition_Idempotence(t *testing.T) {
	// Re-running the partitioner on its own non-Intergenic output reproduces
	// the same partition.
	p := NewPartitioner(Lengths{"1": 1000})

	recs := []*GeneRecord{
		rec("g1", 100, 200, "A"),
		rec("g2", 150, 250, "A"),
		rec("g3", 400, 500, "B"),
	}
	first := p.Partition(Resolve(recs))

	var again []*GeneRecord
	for i, iv := range first {
		if iv.Class == Intergenic {
			continue
		}
		again = append(again, &GeneRecord{
			Gene:  first[i].Class,
			Chrom: iv.Chrom,
			Start: iv.Start,
			End:   iv.End,
			Class: iv.Class,
		})
	}

	assert.Equal(t, first, p.Partition(again))
}

func TestPartition_MultipleChromosomesNaturalOrder(t *testing.T) {
	p := NewPartitioner(Lengths{"1A": 300, "1B": 300, "2A": 300})

	recs := []*GeneRecord{
		{Gene: "g1", Chrom: "2A", Start: 10, End: 20, Class: "A"},
		{Gene: "g2", Chrom: "1B", Start: 10, End: 20, Class: "B"},
		{Gene: "g3", Chrom: "1A", Start: 10, End: 20, Class: "AB"},
	}

	out := p.Partition(recs)

	var chroms []string
	for _, iv := range out {
		if len(chroms) == 0 || chroms[len(chroms)-1] != iv.Chrom {
			chroms = append(chroms, iv.Chrom)
		}
	}
	assert.Equal(t, []string{"1A", "1B", "2A"}, chroms)
}
