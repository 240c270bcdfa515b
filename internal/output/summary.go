package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/poatools/poatools/internal/classify"
	"github.com/poatools/poatools/internal/interval"
)

// Summary aggregates the numbers reported in the analysis summary.
type Summary struct {
	Thresholds classify.Thresholds
	All        []*classify.Gene // every gene from the stats file
	Positioned []*classify.Gene // genes with a GFF position, overlap-resolved
	Lengths    interval.Lengths
}

// WriteSummary writes the human-readable analysis summary report.
func WriteSummary(w io.Writer, s Summary) error {
	highPct := fmt.Sprintf("> %.0f%%", s.Thresholds.High*100)

	var b strings.Builder

	b.WriteString("GFF-based Gene Classification Statistical Summary:\n")
	b.WriteString("==================================================\n")
	fmt.Fprintf(&b, "Total number of genes: %d\n", len(s.All))
	fmt.Fprintf(&b, "Genes successfully matched with physical positions: %d\n", len(s.Positioned))
	fmt.Fprintf(&b, "Genes without physical position matches: %d\n", len(s.All)-len(s.Positioned))

	if len(s.Positioned) > 0 {
		fmt.Fprintf(&b, "Chromosomes involved: %s\n", strings.Join(chromosomesOf(s.Positioned), ", "))
	}

	fmt.Fprintf(&b, "\nGene counts by confidence level (High confidence threshold %s):\n", highPct)
	b.WriteString("==============================================================\n")
	if len(s.Positioned) > 0 {
		counts := confidenceCounts(s.Positioned)
		for _, conf := range []string{classify.ConfidenceHigh, classify.ConfidenceMedium, classify.ConfidenceLow} {
			if n := counts[conf]; n > 0 {
				fmt.Fprintf(&b, "%s: %d (%.1f%%)\n", conf, n, percent(n, len(s.Positioned)))
			}
		}
	} else {
		b.WriteString("No valid physical position data\n")
	}

	fmt.Fprintf(&b, "\nCumulative confidence statistics (High confidence threshold %s):\n", highPct)
	b.WriteString("===============================================================\n")
	fmt.Fprintf(&b, "High confidence gene count (threshold %s): %d\n",
		highPct, len(classify.Filter(s.Positioned, classify.TierHigh)))
	fmt.Fprintf(&b, "Medium and above confidence gene count: %d\n",
		len(classify.Filter(s.Positioned, classify.TierMediumAndAbove)))
	fmt.Fprintf(&b, "All confidence level gene count: %d\n", len(s.Positioned))

	b.WriteString("\nStatistics by primary classification (Mixed classification categorized as NAB):\n")
	b.WriteString("==================================================================================\n")
	if len(s.Positioned) > 0 {
		counts := classCounts(s.Positioned)
		for _, cc := range sortedClassCounts(counts) {
			fmt.Fprintf(&b, "%s: %d (%.1f%%)\n", cc.class, cc.count, percent(cc.count, len(s.Positioned)))
		}
	} else {
		b.WriteString("No valid physical position data\n")
	}

	b.WriteString("\nChromosome length statistics:\n")
	if len(s.Positioned) > 0 {
		for _, chrom := range chromosomesOf(s.Positioned) {
			length, ok := s.Lengths[chrom]
			if !ok {
				continue
			}
			n := 0
			for _, g := range s.Positioned {
				if g.Chrom == chrom {
					n++
				}
			}
			fmt.Fprintf(&b, "Chromosome %s: Length %.2f Mb, Gene count %d\n",
				chrom, float64(length)/1e6, n)
		}
	} else {
		b.WriteString("No valid physical position data\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// chromosomesOf returns the distinct chromosomes of the genes in natural
// order.
func chromosomesOf(genes []*classify.Gene) []string {
	seen := make(map[string]bool)
	var chroms []string
	for _, g := range genes {
		if !seen[g.Chrom] {
			seen[g.Chrom] = true
			chroms = append(chroms, g.Chrom)
		}
	}
	interval.SortChromosomes(chroms)
	return chroms
}

func confidenceCounts(genes []*classify.Gene) map[string]int {
	counts := make(map[string]int)
	for _, g := range genes {
		counts[g.Confidence]++
	}
	return counts
}

func classCounts(genes []*classify.Gene) map[string]int {
	counts := make(map[string]int)
	for _, g := range genes {
		counts[g.Primary]++
	}
	return counts
}

type classCount struct {
	class string
	count int
}

// sortedClassCounts orders classes by descending count, breaking ties by
// classification precedence.
func sortedClassCounts(counts map[string]int) []classCount {
	var out []classCount
	for _, class := range classify.Classes {
		if n, ok := counts[class]; ok {
			out = append(out, classCount{class: class, count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].count > out[j].count
	})
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
