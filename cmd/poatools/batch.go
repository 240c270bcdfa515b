package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/poatools/poatools/internal/batch"
	"github.com/poatools/poatools/internal/pipeline"
)

func newBatchCmd() *cobra.Command {
	var (
		inputDir string
		genome   string
		outDir   string
		workers  int
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Process every gene_stats_*.txt sample under a directory",
		Example: `  poatools batch -i ./stats --genome ref.gff3 -O results
  poatools batch -i ./stats --genome ref.gff3 -O results --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync()

			ann, err := loadAnnotation(genome, logger)
			if err != nil {
				return err
			}

			samples, err := batch.Discover(inputDir)
			if err != nil {
				return err
			}
			if len(samples) == 0 {
				return fmt.Errorf("no gene_stats_*.txt files found in %s", inputDir)
			}
			logger.Info("discovered samples", zap.Int("count", len(samples)))

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			thresholds := thresholdsFromConfig()

			items := make(chan batch.WorkItem)
			go func() {
				defer close(items)
				for i, s := range samples {
					items <- batch.WorkItem{Seq: i, Sample: s}
				}
			}()

			// The annotation is read-only; samples are independent, so the
			// pool parallelizes across samples without reordering output.
			results := batch.Run(items, workers, func(s batch.Sample) error {
				_, err := pipeline.Run(s.StatsPath, ann, filepath.Join(outDir, s.Name), s.Name, pipeline.Options{
					Thresholds: thresholds,
					Logger:     logger,
				})
				return err
			})

			succeeded := 0
			var failed []batch.Sample
			if err := batch.OrderedCollect(results, func(r batch.WorkResult) error {
				if r.Err != nil {
					logger.Error("sample failed",
						zap.String("sample", r.Sample.Name),
						zap.Error(r.Err))
					failed = append(failed, r.Sample)
					return nil
				}
				succeeded++
				return nil
			}); err != nil {
				return err
			}

			if err := writeBatchSummary(outDir, inputDir, genome, samples, failed); err != nil {
				return err
			}

			fmt.Printf("Batch completed: %d succeeded, %d failed, output in %s\n",
				succeeded, len(failed), outDir)
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d samples failed", len(failed), len(samples))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory searched recursively for gene_stats_*.txt files")
	cmd.Flags().StringVar(&genome, "genome", "", "Reference genome GFF3 file (may be gzipped)")
	cmd.Flags().StringVarP(&outDir, "output", "O", "./poatools_out", "Output directory (one subdirectory per sample)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent samples (0 = number of CPUs)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	addThresholdFlags(cmd)

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("genome")

	return cmd
}

// writeBatchSummary writes the batch-level processing report.
func writeBatchSummary(outDir, inputDir, genome string, samples, failed []batch.Sample) error {
	f, err := os.Create(filepath.Join(outDir, "batch_processing_summary.txt"))
	if err != nil {
		return fmt.Errorf("create batch summary: %w", err)
	}
	defer f.Close()

	thresholds := thresholdsFromConfig()

	fmt.Fprintln(f, "Batch Processing Summary")
	fmt.Fprintln(f, "========================================")
	fmt.Fprintf(f, "Input directory: %s\n", inputDir)
	fmt.Fprintf(f, "Genome file: %s\n", genome)
	fmt.Fprintf(f, "Total samples found: %d\n", len(samples))
	fmt.Fprintf(f, "Successfully processed: %d\n", len(samples)-len(failed))
	fmt.Fprintf(f, "Failed: %d\n", len(failed))
	fmt.Fprintf(f, "High threshold: %g\n", thresholds.High)
	fmt.Fprintf(f, "Medium threshold: %g\n", thresholds.Medium)
	fmt.Fprintf(f, "Min threshold: %g\n", thresholds.Min)

	fmt.Fprintln(f, "\nSample outputs:")
	for _, s := range samples {
		fmt.Fprintf(f, "  - %s: %s\n", s.Name, filepath.Join(outDir, s.Name))
	}
	if len(failed) > 0 {
		fmt.Fprintln(f, "\nFailed samples:")
		for _, s := range failed {
			fmt.Fprintf(f, "  - %s (%s)\n", s.Name, s.StatsPath)
		}
	}
	return nil
}
