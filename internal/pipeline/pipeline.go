// Package pipeline runs the per-sample classification pipeline: stats
// parsing, classification, overlap resolution, interval partitioning and
// result writing.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/poatools/poatools/internal/classify"
	"github.com/poatools/poatools/internal/gff"
	"github.com/poatools/poatools/internal/interval"
	"github.com/poatools/poatools/internal/output"
	"github.com/poatools/poatools/internal/stats"
)

// Options configures a pipeline run.
type Options struct {
	Thresholds classify.Thresholds
	DuckDBPath string // optional DuckDB export target
	Logger     *zap.Logger
}

// Result holds the in-memory outcome of one sample run.
type Result struct {
	Sample     string
	All        []*classify.Gene // every classified gene
	Positioned []*classify.Gene // positioned genes, overlap-resolved
	Intervals  map[classify.Tier][]interval.Interval
}

// Run processes one sample's stats file against the annotation and writes
// all result files into outDir. The annotation is read-only and may be
// shared across concurrent sample runs.
func Run(statsPath string, ann *gff.Annotation, outDir, sample string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	parser, err := stats.NewParser(statsPath)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	scores, err := parser.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}
	logger.Info("loaded gene scores",
		zap.String("sample", sample),
		zap.Int("genes", len(scores)))

	classifier := classify.NewClassifier(opts.Thresholds)
	classifier.SetLogger(logger)
	genes := classifier.Classify(scores, ann)

	positioned := resolvePositioned(genes)
	logger.Info("resolved overlaps",
		zap.String("sample", sample),
		zap.Int("positioned", len(positioned)))

	partitioner := interval.NewPartitioner(ann.Lengths)
	result := &Result{
		Sample:     sample,
		All:        genes,
		Positioned: positioned,
		Intervals:  make(map[classify.Tier][]interval.Interval, len(classify.Tiers)),
	}
	for _, tier := range classify.Tiers {
		recs := classify.Records(classify.Filter(positioned, tier))
		result.Intervals[tier] = partitioner.Partition(recs)
	}

	if err := writeResults(outDir, ann, result, opts); err != nil {
		return nil, err
	}

	logger.Info("sample completed",
		zap.String("sample", sample),
		zap.String("output", outDir))
	return result, nil
}

// resolvePositioned runs overlap resolution over the positioned genes and
// folds the resolved coordinates back into them. Genes absorbed by a merge
// are dropped; truncated genes keep their classification and center. The
// result is ordered by natural chromosome order, then start.
func resolvePositioned(genes []*classify.Gene) []*classify.Gene {
	positioned := classify.Positioned(genes)
	resolved := interval.Resolve(classify.Records(positioned))

	byGene := make(map[string]*classify.Gene, len(positioned))
	for _, g := range positioned {
		// Gene names are unique per chromosome; chromosome-qualify the key
		// to keep cross-chromosome duplicates apart.
		byGene[g.Chrom+"\x00"+g.Name] = g
	}

	out := make([]*classify.Gene, 0, len(resolved))
	for _, r := range resolved {
		g, ok := byGene[r.Chrom+"\x00"+r.Gene]
		if !ok {
			panic("pipeline: resolved record without a source gene")
		}
		g.End = r.End
		out = append(out, g)
	}
	return out
}

// writeResults writes all per-sample output files.
func writeResults(outDir string, ann *gff.Annotation, r *Result, opts Options) error {
	if err := writeClassificationTable(filepath.Join(outDir, "gene_classification.tsv"), r.All); err != nil {
		return err
	}
	if err := writeClassificationTable(filepath.Join(outDir, "gene_classification_with_position.tsv"), r.Positioned); err != nil {
		return err
	}
	for _, tier := range classify.Tiers {
		name := fmt.Sprintf("gene_classification_%s.tsv", tier.TableSuffix())
		if err := writeClassificationTable(filepath.Join(outDir, name), classify.Filter(r.Positioned, tier)); err != nil {
			return err
		}

		name = fmt.Sprintf("gene_intervals_%s.tsv", tier.Name())
		if err := writeIntervalTable(filepath.Join(outDir, name), r.Intervals[tier]); err != nil {
			return err
		}
	}

	summaryFile, err := os.Create(filepath.Join(outDir, "analysis_summary.txt"))
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	defer summaryFile.Close()
	if err := output.WriteSummary(summaryFile, output.Summary{
		Thresholds: opts.Thresholds,
		All:        r.All,
		Positioned: r.Positioned,
		Lengths:    ann.Lengths,
	}); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if opts.DuckDBPath != "" {
		if err := exportDuckDB(opts.DuckDBPath, r); err != nil {
			return err
		}
	}

	return nil
}

func writeClassificationTable(path string, genes []*classify.Gene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create classification table: %w", err)
	}
	defer f.Close()
	return output.NewClassificationWriter(f).WriteAll(genes)
}

func writeIntervalTable(path string, ivs []interval.Interval) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create interval table: %w", err)
	}
	defer f.Close()
	return output.NewIntervalWriter(f).WriteAll(ivs)
}

func exportDuckDB(path string, r *Result) error {
	exporter, err := output.OpenDuckDB(path)
	if err != nil {
		return err
	}
	defer exporter.Close()

	if err := exporter.WriteClassifications(r.Sample, r.All); err != nil {
		return err
	}
	for _, tier := range classify.Tiers {
		if err := exporter.WriteIntervals(r.Sample, tier.Name(), r.Intervals[tier]); err != nil {
			return err
		}
	}
	return nil
}
