package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PoisonAlien/oncoprint/internal/clinical"
	"github.com/PoisonAlien/oncoprint/internal/cohort"
	"github.com/PoisonAlien/oncoprint/internal/maf"
	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

// inputFlags are the dataset-assembly options shared by the matrix,
// summary, and export commands.
type inputFlags struct {
	clinicalPath string
	samplesPath  string
	genesPath    string
	totalSamples int
}

func addInputFlags(cmd *cobra.Command, f *inputFlags) {
	cmd.Flags().StringVar(&f.clinicalPath, "clinical", "", "clinical metadata TSV (per-sample fields)")
	cmd.Flags().StringVar(&f.samplesPath, "samples", "", "declared cohort sample list file")
	cmd.Flags().StringVar(&f.genesPath, "genes", "", "gene list file restricting the gene axis")
	cmd.Flags().IntVar(&f.totalSamples, "total-samples", 0, "declared cohort size used as the frequency denominator")
}

// buildDataset reads the MAF and the optional side inputs and assembles the
// normalized dataset.
func buildDataset(mafPath string, f *inputFlags) (*oncoprint.Dataset, error) {
	parser, err := maf.Open(mafPath)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	records, err := parser.ReadAll()
	if err != nil {
		return nil, err
	}
	if skipped := parser.Skipped(); skipped > 0 {
		fmt.Fprintf(os.Stderr, "Skipped %d rows missing gene, sample, or classification\n", skipped)
	}

	builder := oncoprint.NewBuilder()
	builder.SetLogger(newLogger())

	if f.clinicalPath != "" {
		rows, err := clinical.Load(f.clinicalPath)
		if err != nil {
			return nil, err
		}
		builder.SetMetadata(rows)
	}

	declared := &oncoprint.Cohort{TotalSamples: f.totalSamples}
	if f.samplesPath != "" {
		list, err := cohort.LoadSampleList(f.samplesPath)
		if err != nil {
			return nil, err
		}
		declared.SampleList = list
	}
	if declared.TotalSamples > 0 || declared.SampleList != nil {
		builder.SetCohort(declared)
	}

	d := builder.Build(records)

	if f.genesPath != "" {
		list, err := cohort.LoadGeneList(f.genesPath)
		if err != nil {
			return nil, err
		}
		d = d.FilterGenes(list)
	}

	return d, nil
}
