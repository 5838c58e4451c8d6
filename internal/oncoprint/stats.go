package oncoprint

// Frequencies returns each gene's mutation frequency: the number of distinct
// samples carrying at least one mutation in the gene divided by the
// dataset's percentage base. A zero base yields zero for every gene rather
// than dividing; a base declared smaller than the data can push individual
// ratios above 1, which is passed through un-clamped for the caller to
// validate.
func Frequencies(d *Dataset) map[string]float64 {
	freqs := make(map[string]float64, len(d.Genes))
	if d.PercentageBase == 0 {
		for _, g := range d.Genes {
			freqs[g] = 0
		}
		return freqs
	}
	counts := d.DistinctMutatedSamples()
	base := float64(d.PercentageBase)
	for _, g := range d.Genes {
		freqs[g] = float64(counts[g]) / base
	}
	return freqs
}

// CoOccurrence returns the gene-by-gene co-mutation counts: for every sample
// and every unordered pair among the genes mutated in it, both (g1,g2) and
// (g2,g1) are incremented, so the result is symmetric by construction. The
// diagonal counts the samples in which the gene is mutated at all.
func CoOccurrence(d *Dataset) map[string]map[string]int {
	counts := make(map[string]map[string]int, len(d.Genes))
	for _, g := range d.Genes {
		counts[g] = make(map[string]int)
	}

	perSample := make(map[string]map[string]bool, len(d.Samples))
	for _, m := range d.Mutations {
		set := perSample[m.Sample]
		if set == nil {
			set = make(map[string]bool)
			perSample[m.Sample] = set
		}
		set[m.Gene] = true
	}

	for _, s := range d.Samples {
		genes := sortedKeys(perSample[s])
		for i, g1 := range genes {
			counts[g1][g1]++
			for _, g2 := range genes[i+1:] {
				counts[g1][g2]++
				counts[g2][g1]++
			}
		}
	}
	return counts
}
