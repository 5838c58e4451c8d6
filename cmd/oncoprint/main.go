// Package main provides the oncoprint command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oncoprint",
		Short: "Build orderable mutation matrices from MAF files",
		Long: `oncoprint turns tabular mutation records (MAF) plus optional per-sample
clinical metadata into a normalized, orderable gene-by-sample matrix: genes
ranked by mutation frequency, samples clustered for visual density, the
sample axis optionally split into clinical groups.`,
		Example: `  # Top 25 genes, samples clustered for density
  oncoprint matrix data_mutations.txt

  # Split the sample axis by a clinical field
  oncoprint matrix --clinical clinical.tsv --split-by SUBTYPE data_mutations.txt

  # Frequency report against a declared cohort of 500
  oncoprint summary --total-samples 500 data_mutations.txt

  # Queryable DuckDB export
  oncoprint export --db cohort.duckdb data_mutations.txt`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose progress logging")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newMatrixCmd())
	cmd.AddCommand(newSummaryCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.oncoprint.yaml and seeds the matrix defaults.
func initConfig() {
	viper.SetDefault("matrix.top", 25)
	viper.SetDefault("matrix.sort", string(oncoprint.SortOncoprint))

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.AddConfigPath(home)
	viper.SetConfigName(".oncoprint")
	viper.SetConfigType("yaml")
	_ = viper.ReadInConfig()
}

// newLogger returns a development logger under --verbose, a nop logger
// otherwise.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
