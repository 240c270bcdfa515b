// Package main provides the poatools command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poatools",
		Short: "Gene classification along chromosomes from per-gene score ratios",
		Long: `poatools classifies genes into parent-of-origin categories from their
per-class score ratios, resolves overlaps between gene regions, and derives
a continuous partition of each chromosome into labeled intervals.`,
		Version:      fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage: true,
	}

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newBatchCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.poatools.yaml and the POATOOLS_* environment.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".poatools")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("POATOOLS")
	viper.AutomaticEnv()

	// Missing config file is fine; defaults and flags apply.
	_ = viper.ReadInConfig()
}

// newLogger builds the CLI logger writing to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
