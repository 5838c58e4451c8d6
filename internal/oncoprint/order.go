package oncoprint

import (
	"sort"
	"strconv"
	"strings"
)

// GenesByFrequency returns the dataset's genes ordered by how many distinct
// samples carry at least one mutation in each gene (not by raw event count).
// The sort is stable over the dataset's lexicographic gene order, so repeated
// calls are deterministic and ties keep their relative order. A positive
// limit truncates to the top entries after sorting.
func GenesByFrequency(d *Dataset, descending bool, limit int) []string {
	counts := d.DistinctMutatedSamples()
	genes := append([]string(nil), d.Genes...)
	sort.SliceStable(genes, func(i, j int) bool {
		a, b := counts[genes[i]], counts[genes[j]]
		if a == b {
			return false
		}
		if descending {
			return a > b
		}
		return a < b
	})
	if limit > 0 && limit < len(genes) {
		genes = genes[:limit]
	}
	return genes
}

// SamplesByMutationLoad returns the dataset's samples ordered by raw
// mutation event count. Ties keep the dataset's sample order.
func SamplesByMutationLoad(d *Dataset, descending bool) []string {
	samples := append([]string(nil), d.Samples...)
	sort.SliceStable(samples, func(i, j int) bool {
		a, b := d.SampleCounts[samples[i]], d.SampleCounts[samples[j]]
		if a == b {
			return false
		}
		if descending {
			return a > b
		}
		return a < b
	})
	return samples
}

// SamplesByMetadata returns the dataset's samples ordered by a clinical
// metadata field. Numerical fields compare numerically, all others compare
// case-insensitively as text, and samples missing the field sort after all
// samples that have it regardless of direction.
//
// When the field is not a known metadata field the samples are returned
// unchanged and the second result is false; this is a documented permissive
// no-op, not an error.
func SamplesByMetadata(d *Dataset, field string, ascending bool) ([]string, bool) {
	if !d.Metadata.Known(field) {
		return append([]string(nil), d.Samples...), false
	}

	numeric := d.Metadata.Types[field] == FieldNumerical
	type sortKey struct {
		sample  string
		num     float64
		text    string
		missing bool
	}
	keys := make([]sortKey, len(d.Samples))
	for i, s := range d.Samples {
		k := sortKey{sample: s}
		v, ok := d.Metadata.Value(s, field)
		if !ok {
			k.missing = true
		} else if numeric {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				k.missing = true
			} else {
				k.num = n
			}
		} else {
			k.text = strings.ToLower(v)
		}
		keys[i] = k
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.missing != b.missing {
			return !a.missing
		}
		if a.missing {
			return false
		}
		var less, equal bool
		if numeric {
			less, equal = a.num < b.num, a.num == b.num
		} else {
			less, equal = a.text < b.text, a.text == b.text
		}
		if equal {
			return false
		}
		if ascending {
			return less
		}
		return !less
	})

	samples := make([]string, len(keys))
	for i, k := range keys {
		samples[i] = k.sample
	}
	return samples, true
}

// ClusterSamples orders samples for a dense oncoprint: for each gene in
// geneOrder the current sample sequence is stably partitioned into carriers
// of a mutation in that gene followed by non-carriers, and the result feeds
// the next gene. Samples mutated in the highest-priority gene cluster first;
// within that cluster, samples also mutated in the second gene come first,
// and so on, producing the characteristic staircase pattern.
//
// The partition is a single pass into two buffers, so relative order is
// preserved unconditionally and the result is deterministic for a given
// dataset and gene order.
func ClusterSamples(d *Dataset, geneOrder []string) []string {
	current := append([]string(nil), d.Samples...)
	carriers := carriersByGene(d)
	for _, gene := range geneOrder {
		carrier := carriers[gene]
		if len(carrier) == 0 {
			continue
		}
		mutated := make([]string, 0, len(carrier))
		rest := make([]string, 0, len(current))
		for _, s := range current {
			if carrier[s] {
				mutated = append(mutated, s)
			} else {
				rest = append(rest, s)
			}
		}
		current = append(mutated, rest...)
	}
	return current
}

// carriersByGene returns, per gene, the set of samples with at least one
// mutation in that gene.
func carriersByGene(d *Dataset) map[string]map[string]bool {
	carriers := make(map[string]map[string]bool, len(d.Genes))
	for _, m := range d.Mutations {
		set := carriers[m.Gene]
		if set == nil {
			set = make(map[string]bool)
			carriers[m.Gene] = set
		}
		set[m.Sample] = true
	}
	return carriers
}
