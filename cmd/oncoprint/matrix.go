package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PoisonAlien/oncoprint/internal/cohort"
	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
	"github.com/PoisonAlien/oncoprint/internal/output"
)

func newMatrixCmd() *cobra.Command {
	var (
		in         inputFlags
		top        int
		sortMethod string
		sortField  string
		splitBy    string
		orderPath  string
		format     string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "matrix [flags] <maf>",
		Short: "Emit the ordered gene-by-sample mutation grid",
		Long: `Build the normalized dataset, rank genes by distinct-sample mutation
frequency, order the sample axis, and write the resulting cell grid.

Sample ordering methods:
  oncoprint      cluster samples so co-mutated samples sit together (default)
  mutation_load  raw event count, descending
  alphabetical   plain ascending sample identifiers
  custom         the order given with --sample-order, remainder appended`,
		Example: `  oncoprint matrix data_mutations.txt
  oncoprint matrix --top 10 --sort-samples mutation_load data_mutations.txt
  oncoprint matrix --clinical clinical.tsv --split-by SUBTYPE data_mutations.txt
  oncoprint matrix --format json -o grid.json data_mutations.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top") {
				top = viper.GetInt("matrix.top")
			}
			if !cmd.Flags().Changed("sort-samples") {
				sortMethod = viper.GetString("matrix.sort")
			}

			d, err := buildDataset(args[0], &in)
			if err != nil {
				return err
			}

			var customOrder []string
			if orderPath != "" {
				customOrder, err = cohort.LoadSampleList(orderPath)
				if err != nil {
					return err
				}
			}

			geneOrder := oncoprint.GenesByFrequency(d, true, top)

			samples := d.Samples
			if splitBy != "" {
				split, ok := oncoprint.SplitBy(d, splitBy, oncoprint.SplitOptions{
					Method:      oncoprint.SortMethod(sortMethod),
					CustomOrder: customOrder,
					GeneOrder:   geneOrder,
				})
				if !ok {
					fmt.Fprintf(os.Stderr, "Warning: %q is not a clinical field; sample axis left unsplit\n", splitBy)
				}
				d = split
				samples = d.Samples
			} else {
				samples, err = orderSamples(d, sortMethod, sortField, geneOrder, customOrder)
				if err != nil {
					return err
				}
			}

			out, closer, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer closer()

			if format == "json" {
				ordered := *d
				ordered.Samples = samples
				return output.NewJSONWriter(out).Write(&ordered)
			}
			return writeGrid(out, d, geneOrder, samples)
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().IntVar(&top, "top", 25, "how many top-frequency genes to include")
	cmd.Flags().StringVar(&sortMethod, "sort-samples", string(oncoprint.SortOncoprint),
		"sample ordering: oncoprint, mutation_load, alphabetical, custom")
	cmd.Flags().StringVar(&sortField, "sort-field", "", "order samples by a clinical metadata field instead")
	cmd.Flags().StringVar(&splitBy, "split-by", "", "partition the sample axis by a clinical field")
	cmd.Flags().StringVar(&orderPath, "sample-order", "", "sample list file for the custom ordering")
	cmd.Flags().StringVar(&format, "format", "tsv", "output format: tsv, json")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// orderSamples applies the unsplit sample ordering options.
func orderSamples(d *oncoprint.Dataset, method, field string, geneOrder, customOrder []string) ([]string, error) {
	if field != "" {
		ordered, ok := oncoprint.SamplesByMetadata(d, field, true)
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: %q is not a clinical field; sample order unchanged\n", field)
		}
		return ordered, nil
	}

	switch oncoprint.SortMethod(method) {
	case oncoprint.SortOncoprint:
		return oncoprint.ClusterSamples(d, geneOrder), nil
	case oncoprint.SortMutationLoad:
		return oncoprint.SamplesByMutationLoad(d, true), nil
	case oncoprint.SortAlphabetical:
		ordered := append([]string(nil), d.Samples...)
		sort.Strings(ordered)
		return ordered, nil
	case oncoprint.SortCustom:
		if customOrder == nil {
			return nil, fmt.Errorf("--sort-samples custom requires --sample-order")
		}
		return applyCustomOrder(d.Samples, customOrder), nil
	default:
		return nil, fmt.Errorf("unknown sample ordering %q", method)
	}
}

// applyCustomOrder places the named samples first, in their given order,
// and appends the rest of the axis in original order. Names outside the
// axis are ignored.
func applyCustomOrder(samples, custom []string) []string {
	onAxis := make(map[string]bool, len(samples))
	for _, s := range samples {
		onAxis[s] = true
	}
	ordered := make([]string, 0, len(samples))
	placed := make(map[string]bool, len(samples))
	for _, s := range custom {
		if onAxis[s] && !placed[s] {
			ordered = append(ordered, s)
			placed[s] = true
		}
	}
	for _, s := range samples {
		if !placed[s] {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// writeGrid writes the TSV cell grid over the chosen axes.
func writeGrid(out io.Writer, d *oncoprint.Dataset, geneOrder, samples []string) error {
	m := oncoprint.BuildMatrix(d)

	mw := output.NewMatrixWriter(out, samples)
	if len(d.SampleGroups) > 0 {
		if err := mw.WriteGroupRow(d.SampleGroups); err != nil {
			return err
		}
	}
	if err := mw.WriteHeader(); err != nil {
		return err
	}
	for _, g := range geneOrder {
		if err := mw.WriteGene(g, m); err != nil {
			return err
		}
	}
	return mw.Flush()
}

// openOutput opens the output file, or stdout for an empty path.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
