package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poatools/poatools/internal/classify"
	"github.com/poatools/poatools/internal/interval"
	"github.com/poatools/poatools/internal/stats"
)

func TestClassificationWriter(t *testing.T) {
	genes := []*classify.Gene{
		{
			Name:       "g1",
			Scores:     &stats.GeneScores{Gene: "g1", A: 9, B: 1},
			RatioA:     0.9,
			RatioB:     0.1,
			MaxRatio:   0.9,
			Primary:    classify.ClassA,
			Confidence: classify.ConfidenceHigh,
			Composite:  "A_High",
			Positioned: true,
			Chrom:      "1A",
			Start:      100,
			End:        200,
			Strand:     "+",
			Center:     150,
		},
		{
			Name:       "orphan",
			Scores:     &stats.GeneScores{Gene: "orphan", B: 5},
			RatioB:     1,
			MaxRatio:   1,
			Primary:    classify.ClassB,
			Confidence: classify.ConfidenceHigh,
			Composite:  "B_High",
		},
	}

	var sb strings.Builder
	cw := NewClassificationWriter(&sb)
	require.NoError(t, cw.WriteAll(genes))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	header := strings.Split(lines[0], "\t")
	assert.Equal(t, "Gene", header[0])
	assert.Equal(t, "Center", header[len(header)-1])

	row := strings.Split(lines[1], "\t")
	require.Len(t, row, len(header))
	assert.Equal(t, "g1", row[0])
	assert.Equal(t, "1A", row[1])
	assert.Equal(t, "100", row[2])
	assert.Equal(t, "200", row[3])
	assert.Equal(t, "+", row[4])
	assert.Equal(t, "A_High", row[19])
	assert.Equal(t, "150", row[20])

	orphan := strings.Split(lines[2], "\t")
	assert.Equal(t, "-", orphan[1], "unpositioned gene has no chromosome")
	assert.Equal(t, "-", orphan[20], "unpositioned gene has no center")
}

func TestIntervalWriter(t *testing.T) {
	ivs := []interval.Interval{
		{Chrom: "1A", Start: 1, End: 99, Class: interval.Intergenic, Center: 50, Length: 99},
		{Chrom: "1A", Start: 100, End: 250, Class: "A", Center: 175, Length: 151},
	}

	var sb strings.Builder
	iw := NewIntervalWriter(&sb)
	require.NoError(t, iw.WriteAll(ivs))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Chromosome\tStart\tEnd\tPrimary_Class\tCenter\tLength", lines[0])
	assert.Equal(t, "1A\t1\t99\tIntergenic\t50\t99", lines[1])
	assert.Equal(t, "1A\t100\t250\tA\t175\t151", lines[2])
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "150", formatFloat(150))
	assert.Equal(t, "150.5", formatFloat(150.5))
	assert.Equal(t, "0.9", formatFloat(0.9))
}
