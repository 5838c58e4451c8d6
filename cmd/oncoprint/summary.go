package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
	"github.com/PoisonAlien/oncoprint/internal/output"
	"github.com/PoisonAlien/oncoprint/internal/palette"
)

func newSummaryCmd() *cobra.Command {
	var (
		in         inputFlags
		top        int
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "summary [flags] <maf>",
		Short: "Report gene frequencies, cohort counts, and the color legend",
		Example: `  oncoprint summary data_mutations.txt
  oncoprint summary --total-samples 500 data_mutations.txt
  oncoprint summary --genes drivers.txt --top 50 data_mutations.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("top") {
				top = viper.GetInt("matrix.top")
			}

			d, err := buildDataset(args[0], &in)
			if err != nil {
				return err
			}

			out, closer, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer closer()

			geneOrder := oncoprint.GenesByFrequency(d, true, top)

			sw := output.NewSummaryWriter(out)
			if err := sw.WriteGeneTable(d, geneOrder); err != nil {
				return err
			}
			if err := sw.WriteCohortSummary(d); err != nil {
				return err
			}

			assigner := palette.New()
			categories := make([]string, 0, len(d.Mutations))
			for _, m := range d.Mutations {
				categories = append(categories, m.Classification)
			}
			if err := sw.WriteLegend(assigner.Legend(categories)); err != nil {
				return err
			}
			return sw.Flush()
		},
	}

	addInputFlags(cmd, &in)
	cmd.Flags().IntVar(&top, "top", 25, "how many top-frequency genes to report")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")

	return cmd
}
