package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poatools/poatools/internal/classify"
	"github.com/poatools/poatools/internal/interval"
	"github.com/poatools/poatools/internal/stats"
)

func openInMemory(t *testing.T) *DuckDBExporter {
	t.Helper()
	e, err := OpenDuckDB("")
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestDuckDBExporter_OpenClose(t *testing.T) {
	e := openInMemory(t)
	assert.NotNil(t, e.DB())
}

func TestDuckDBExporter_WriteClassifications(t *testing.T) {
	e := openInMemory(t)

	genes := []*classify.Gene{
		{
			Name:       "g1",
			Scores:     &stats.GeneScores{Gene: "g1", A: 9, B: 1},
			MaxRatio:   0.9,
			Primary:    classify.ClassA,
			Confidence: classify.ConfidenceHigh,
			Positioned: true,
			Chrom:      "1A",
			Start:      100,
			End:        200,
			Strand:     "+",
		},
	}

	require.NoError(t, e.WriteClassifications("sample1", genes))

	var gene, class string
	var start int64
	row := e.DB().QueryRow(`SELECT gene, primary_class, start FROM gene_classifications WHERE sample = 'sample1'`)
	require.NoError(t, row.Scan(&gene, &class, &start))
	assert.Equal(t, "g1", gene)
	assert.Equal(t, "A", class)
	assert.Equal(t, int64(100), start)
}

func TestDuckDBExporter_WriteIntervals(t *testing.T) {
	e := openInMemory(t)

	ivs := []interval.Interval{
		{Chrom: "1A", Start: 1, End: 99, Class: interval.Intergenic, Center: 50, Length: 99},
		{Chrom: "1A", Start: 100, End: 250, Class: "A", Center: 175, Length: 151},
	}

	require.NoError(t, e.WriteIntervals("sample1", "all_confidence", ivs))

	var n int
	row := e.DB().QueryRow(`SELECT count(*) FROM gene_intervals WHERE tier = 'all_confidence'`)
	require.NoError(t, row.Scan(&n))
	assert.Equal(t, 2, n)
}

func TestDuckDBExporter_EmptyWritesAreNoOps(t *testing.T) {
	e := openInMemory(t)
	assert.NoError(t, e.WriteClassifications("s", nil))
	assert.NoError(t, e.WriteIntervals("s", "all_confidence", nil))
}
