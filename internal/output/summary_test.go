package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poatools/poatools/internal/classify"
	"github.com/poatools/poatools/internal/interval"
)

func summaryGene(name, chrom, primary, confidence string) *classify.Gene {
	return &classify.Gene{
		Name:       name,
		Chrom:      chrom,
		Primary:    primary,
		Confidence: confidence,
		Positioned: chrom != "",
	}
}

func TestWriteSummary(t *testing.T) {
	positioned := []*classify.Gene{
		summaryGene("g1", "1A", classify.ClassA, classify.ConfidenceHigh),
		summaryGene("g2", "1A", classify.ClassA, classify.ConfidenceMedium),
		summaryGene("g3", "1B", classify.ClassB, classify.ConfidenceLow),
	}
	all := append([]*classify.Gene{summaryGene("orphan", "", classify.ClassNAB, classify.ConfidenceLow)}, positioned...)

	var sb strings.Builder
	err := WriteSummary(&sb, Summary{
		Thresholds: classify.DefaultThresholds(),
		All:        all,
		Positioned: positioned,
		Lengths:    interval.Lengths{"1A": 594102056, "1B": 689851870},
	})
	require.NoError(t, err)

	text := sb.String()
	assert.Contains(t, text, "Total number of genes: 4")
	assert.Contains(t, text, "Genes successfully matched with physical positions: 3")
	assert.Contains(t, text, "Genes without physical position matches: 1")
	assert.Contains(t, text, "Chromosomes involved: 1A, 1B")
	assert.Contains(t, text, "High: 1 (33.3%)")
	assert.Contains(t, text, "Medium: 1 (33.3%)")
	assert.Contains(t, text, "High confidence gene count (threshold > 80%): 1")
	assert.Contains(t, text, "Medium and above confidence gene count: 2")
	assert.Contains(t, text, "All confidence level gene count: 3")
	assert.Contains(t, text, "A: 2 (66.7%)")
	assert.Contains(t, text, "Chromosome 1A: Length 594.10 Mb, Gene count 2")
}

func TestWriteSummary_NoPositionedGenes(t *testing.T) {
	var sb strings.Builder
	err := WriteSummary(&sb, Summary{
		Thresholds: classify.DefaultThresholds(),
		All:        []*classify.Gene{summaryGene("g1", "", classify.ClassA, classify.ConfidenceHigh)},
	})
	require.NoError(t, err)

	assert.Contains(t, sb.String(), "No valid physical position data")
}

func TestSortedClassCounts(t *testing.T) {
	counts := map[string]int{"A": 2, "B": 5, "NAB": 2}
	out := sortedClassCounts(counts)

	require.Len(t, out, 3)
	assert.Equal(t, "B", out[0].class)
	// Ties break by classification precedence: A before NAB.
	assert.Equal(t, "A", out[1].class)
	assert.Equal(t, "NAB", out[2].class)
}
