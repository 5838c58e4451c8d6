package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PoisonAlien/oncoprint/internal/duckdb"
	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
	"github.com/PoisonAlien/oncoprint/internal/output"
)

func newExportCmd() *cobra.Command {
	var (
		in       inputFlags
		dbPath   string
		jsonPath string
	)

	cmd := &cobra.Command{
		Use:   "export [flags] <maf>",
		Short: "Export the normalized dataset to DuckDB or JSON",
		Long: `Freeze the normalized dataset and write it out for downstream tools:
a queryable DuckDB database (mutation events, per-gene statistics, sample
groups, source provenance) and/or a JSON snapshot.`,
		Example: `  oncoprint export --db cohort.duckdb data_mutations.txt
  oncoprint export --json cohort.json data_mutations.txt
  oncoprint export --db cohort.duckdb --clinical clinical.tsv data_mutations.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" && jsonPath == "" {
				return fmt.Errorf("at least one of --db or --json is required")
			}

			mafPath := args[0]
			d, err := buildDataset(mafPath, &in)
			if err != nil {
				return err
			}

			if jsonPath != "" {
				f, err := os.Create(jsonPath)
				if err != nil {
					return fmt.Errorf("create json file: %w", err)
				}
				if err := output.NewJSONWriter(f).Write(d); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Wrote JSON snapshot: %s\n", jsonPath)
			}

			if dbPath != "" {
				if err := exportDuckDB(dbPath, mafPath, d, &in); err != nil {
					return err
				}
			}
			return nil
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB output file")
	cmd.Flags().StringVar(&jsonPath, "json", "", "JSON snapshot output file")

	return cmd
}

func exportDuckDB(dbPath, mafPath string, d *oncoprint.Dataset, in *inputFlags) error {
	// Replace any previous export file
	if _, err := os.Stat(dbPath); err == nil {
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove existing export: %w", err)
		}
	}

	store, err := duckdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WriteDataset(d.Snapshot()); err != nil {
		return err
	}

	// Provenance for every local file input; URL and stdin inputs have no
	// stat identity to record.
	for role, path := range map[string]string{
		"maf":      mafPath,
		"clinical": in.clinicalPath,
		"samples":  in.samplesPath,
		"genes":    in.genesPath,
	} {
		if path == "" || path == "-" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
			continue
		}
		fp, err := duckdb.StatFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not fingerprint %s: %v\n", path, err)
			continue
		}
		if err := store.WriteProvenance(role, fp); err != nil {
			return err
		}
	}

	n, err := store.CountMutations()
	if err != nil {
		return err
	}

	sizeStr := "unknown"
	if stat, err := os.Stat(dbPath); err == nil {
		sizeStr = fmt.Sprintf("%.2f MB", float64(stat.Size())/(1024*1024))
	}

	fmt.Fprintf(os.Stderr, "Export complete!\n")
	fmt.Fprintf(os.Stderr, "  Mutation events: %d\n", n)
	fmt.Fprintf(os.Stderr, "  Genes: %d\n", len(d.Genes))
	fmt.Fprintf(os.Stderr, "  Samples: %d\n", len(d.Samples))
	fmt.Fprintf(os.Stderr, "  Output size: %s\n", sizeStr)
	fmt.Fprintf(os.Stderr, "  Output file: %s\n", dbPath)

	return nil
}
