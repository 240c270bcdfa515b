package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/poatools/poatools/internal/batch"
	"github.com/poatools/poatools/internal/classify"
	"github.com/poatools/poatools/internal/gff"
	"github.com/poatools/poatools/internal/pipeline"
)

func newClassifyCmd() *cobra.Command {
	var (
		input      string
		genome     string
		outDir     string
		duckdbPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one sample's genes and partition its chromosomes",
		Example: `  poatools classify -i gene_stats_s1.txt --genome ref.gff3 -O results/s1
  poatools classify -i gene_stats_s1.csv --genome ref.gff3.gz -O out --high 0.9
  poatools classify -i gene_stats_s1.txt --genome ref.gff3 -O out --duckdb out/results.duckdb
  cat gene_stats_s1.txt | poatools classify -i - --genome ref.gff3 -O out`,
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

			sample := batch.SampleName(input)
			result, err := pipeline.Run(input, ann, outDir, sample, pipeline.Options{
				Thresholds: thresholdsFromConfig(),
				DuckDBPath: duckdbPath,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Classified %d genes (%d positioned) into %s\n",
				len(result.All), len(result.Positioned), outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input gene stats file (.txt tab-separated, .csv comma-separated, '-' for stdin)")
	cmd.Flags().StringVar(&genome, "genome", "", "Reference genome GFF3 file (may be gzipped)")
	cmd.Flags().StringVarP(&outDir, "output", "O", "./poatools_out", "Output directory")
	cmd.Flags().StringVar(&duckdbPath, "duckdb", "", "Also export results to a DuckDB database at this path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	addThresholdFlags(cmd)

	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("genome")

	return cmd
}

// addThresholdFlags registers the classification threshold flags and binds
// them into viper so ~/.poatools.yaml values apply when flags are unset.
// Binding happens in PreRun: several commands carry these flags and only
// the running command's flags may win the binding.
func addThresholdFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("high", 0.8, "High confidence threshold")
	cmd.Flags().Float64("medium", 0.5, "Medium confidence threshold")
	cmd.Flags().Float64("min", 0.4, "Minimum ratio for a primary class call")

	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		viper.BindPFlag("thresholds.high", cmd.Flags().Lookup("high"))
		viper.BindPFlag("thresholds.medium", cmd.Flags().Lookup("medium"))
		viper.BindPFlag("thresholds.min", cmd.Flags().Lookup("min"))
	}
}

func thresholdsFromConfig() classify.Thresholds {
	return classify.Thresholds{
		High:   viper.GetFloat64("thresholds.high"),
		Medium: viper.GetFloat64("thresholds.medium"),
		Min:    viper.GetFloat64("thresholds.min"),
	}
}

// loadAnnotation reads the GFF file and logs what it found.
func loadAnnotation(path string, logger *zap.Logger) (*gff.Annotation, error) {
	ann, err := gff.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load annotation: %w", err)
	}
	logger.Info("loaded GFF annotation",
		zap.String("path", path),
		zap.Int("genes", len(ann.Genes)),
		zap.Int("chromosome_lengths", len(ann.Lengths)))
	return ann, nil
}
