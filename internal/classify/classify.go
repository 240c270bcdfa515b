// Package classify assigns a primary class and confidence level to genes
// from their per-class score ratios, and joins them with genomic positions.
package classify

import (
	"go.uber.org/zap"

	"github.com/poatools/poatools/internal/gff"
	"github.com/poatools/poatools/internal/interval"
	"github.com/poatools/poatools/internal/stats"
)

// Class labels, in classification precedence order. When two ratios tie,
// the earlier class wins.
const (
	ClassA   = "A"
	ClassB   = "B"
	ClassAB  = "AB"
	ClassNAB = "NAB"
	ClassAXB = "AXB"
)

// Classes lists all primary class labels in precedence order.
var Classes = []string{ClassA, ClassB, ClassAB, ClassNAB, ClassAXB}

// Confidence levels
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Thresholds holds the ratio cutoffs for confidence and minimum-call
// classification.
type Thresholds struct {
	High   float64 // MaxRatio above this is High confidence
	Medium float64 // MaxRatio above this is Medium confidence
	Min    float64 // MaxRatio below this forces the NAB class
}

// DefaultThresholds returns the standard cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.8, Medium: 0.5, Min: 0.4}
}

// Gene is a classified gene, optionally joined with its genomic position.
type Gene struct {
	Name   string
	Scores *stats.GeneScores

	RatioA   float64
	RatioB   float64
	RatioAB  float64
	RatioNAB float64
	RatioAXB float64
	MaxRatio float64

	Primary    string
	Confidence string
	Composite  string // Primary + "_" + Confidence

	// Position from the GFF annotation; zero values with Positioned false
	// when the gene had no match.
	Positioned bool
	Chrom      string
	Start      int64
	End        int64
	Strand     string
	Center     float64
}

// Ratio returns the ratio for a class label.
func (g *Gene) Ratio(class string) float64 {
	switch class {
	case ClassA:
		return g.RatioA
	case ClassB:
		return g.RatioB
	case ClassAB:
		return g.RatioAB
	case ClassNAB:
		return g.RatioNAB
	case ClassAXB:
		return g.RatioAXB
	}
	return 0
}

// Classifier computes per-gene classifications.
type Classifier struct {
	thresholds Thresholds
	logger     *zap.Logger
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t, logger: zap.NewNop()}
}

// SetLogger sets the logger for data-quality warnings.
func (c *Classifier) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Classify classifies all genes and joins them with positions from ann
// (left join by gene name). Genes without a position match are kept for
// whole-set summaries but carry Positioned == false.
func (c *Classifier) Classify(scores []*stats.GeneScores, ann *gff.Annotation) []*Gene {
	byName := ann.GeneByName()

	genes := make([]*Gene, 0, len(scores))
	unmatched := 0
	for _, s := range scores {
		g := c.classifyOne(s)
		if pos, ok := byName[s.Gene]; ok {
			g.Positioned = true
			g.Chrom = pos.Chrom
			g.Start = pos.Start
			g.End = pos.End
			g.Strand = pos.Strand
			g.Center = float64(pos.Start+pos.End) / 2
		} else {
			unmatched++
		}
		genes = append(genes, g)
	}

	if unmatched > 0 {
		c.logger.Warn("genes could not be matched in the GFF annotation",
			zap.Int("count", unmatched))
	}

	return genes
}

// classifyOne computes ratios, primary class and confidence for one gene.
func (c *Classifier) classifyOne(s *stats.GeneScores) *Gene {
	g := &Gene{Name: s.Gene, Scores: s}

	if total := s.Total(); total > 0 {
		g.RatioA = s.A / total
		g.RatioB = s.B / total
		g.RatioAB = s.AB / total
		g.RatioNAB = s.NAB / total
		g.RatioAXB = s.AXB / total
	}

	g.Primary = ClassA
	for _, class := range Classes {
		if r := g.Ratio(class); r > g.MaxRatio {
			g.MaxRatio = r
			g.Primary = class
		}
	}
	if g.MaxRatio < c.thresholds.Min {
		// Mixed signal below the minimum call threshold maps to NAB.
		g.Primary = ClassNAB
	}

	switch {
	case g.MaxRatio > c.thresholds.High:
		g.Confidence = ConfidenceHigh
	case g.MaxRatio > c.thresholds.Medium:
		g.Confidence = ConfidenceMedium
	default:
		g.Confidence = ConfidenceLow
	}

	g.Composite = g.Primary + "_" + g.Confidence
	return g
}

// Positioned returns only the genes that matched a GFF position.
func Positioned(genes []*Gene) []*Gene {
	var out []*Gene
	for _, g := range genes {
		if g.Positioned {
			out = append(out, g)
		}
	}
	return out
}

// Records converts positioned genes into interval gene records for overlap
// resolution. Unpositioned genes are skipped.
func Records(genes []*Gene) []*interval.GeneRecord {
	var recs []*interval.GeneRecord
	for _, g := range genes {
		if !g.Positioned {
			continue
		}
		recs = append(recs, &interval.GeneRecord{
			Gene:  g.Name,
			Chrom: g.Chrom,
			Start: g.Start,
			End:   g.End,
			Class: g.Primary,
		})
	}
	return recs
}
