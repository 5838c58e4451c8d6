package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
	"github.com/PoisonAlien/oncoprint/internal/palette"
)

// SummaryWriter writes the human-readable oncoprint report: the per-gene
// frequency table, the cohort summary, and the color legend.
type SummaryWriter struct {
	w *tabwriter.Writer
}

// NewSummaryWriter creates a summary writer with aligned columns.
func NewSummaryWriter(w io.Writer) *SummaryWriter {
	return &SummaryWriter{
		w: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0),
	}
}

// WriteGeneTable writes one row per gene in the given order: rank, gene,
// distinct mutated samples, frequency against the percentage base, and raw
// event count.
func (sw *SummaryWriter) WriteGeneTable(d *oncoprint.Dataset, geneOrder []string) error {
	if _, err := fmt.Fprintln(sw.w, "Rank\tGene\tSamples\tFrequency\tEvents"); err != nil {
		return err
	}
	carriers := d.DistinctMutatedSamples()
	freqs := oncoprint.Frequencies(d)
	for i, g := range geneOrder {
		if _, err := fmt.Fprintf(sw.w, "%d\t%s\t%d\t%.1f%%\t%d\n",
			i+1, g, carriers[g], freqs[g]*100, d.GeneCounts[g]); err != nil {
			return err
		}
	}
	return nil
}

// WriteCohortSummary writes the dataset-level counts and, when a cohort was
// declared, how it reconciled with the data.
func (sw *SummaryWriter) WriteCohortSummary(d *oncoprint.Dataset) error {
	fmt.Fprintln(sw.w)
	fmt.Fprintf(sw.w, "Genes:\t%d\n", len(d.Genes))
	fmt.Fprintf(sw.w, "Samples:\t%d\n", len(d.Samples))
	fmt.Fprintf(sw.w, "Mutation events:\t%d\n", len(d.Mutations))
	fmt.Fprintf(sw.w, "Percentage base:\t%d\n", d.PercentageBase)
	if d.Cohort != nil {
		if d.Cohort.TotalSamples > 0 {
			fmt.Fprintf(sw.w, "Declared cohort size:\t%d\n", d.Cohort.TotalSamples)
		}
		if len(d.Cohort.SampleList) > 0 {
			fmt.Fprintf(sw.w, "Declared samples:\t%d\n", len(d.Cohort.SampleList))
		}
		if len(d.Cohort.MissingSamples) > 0 {
			fmt.Fprintf(sw.w, "Declared but absent from data:\t%d\n", len(d.Cohort.MissingSamples))
		}
	}
	if len(d.SampleGroups) > 0 {
		fmt.Fprintln(sw.w)
		for _, g := range d.SampleGroups {
			fmt.Fprintf(sw.w, "Group %s:\t%d samples\t[%d..%d]\n",
				g.Label, g.Count, g.StartIndex, g.EndIndex)
		}
	}
	return nil
}

// WriteLegend writes one row per legend entry: the category, its hex color,
// and whether the color is fixed or dynamically assigned.
func (sw *SummaryWriter) WriteLegend(entries []palette.Entry) error {
	fmt.Fprintln(sw.w)
	if _, err := fmt.Fprintln(sw.w, "Category\tColor\tPalette"); err != nil {
		return err
	}
	for _, e := range entries {
		source := "fixed"
		if !e.Known {
			source = "dynamic"
		}
		if _, err := fmt.Fprintf(sw.w, "%s\t%s\t%s\n", e.Category, e.Color, source); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the aligned output to the underlying writer.
func (sw *SummaryWriter) Flush() error {
	return sw.w.Flush()
}
