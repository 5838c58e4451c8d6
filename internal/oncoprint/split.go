package oncoprint

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMethod selects how samples are ordered within a split-by group.
type SortMethod string

const (
	SortOncoprint    SortMethod = "oncoprint"
	SortMutationLoad SortMethod = "mutation_load"
	SortAlphabetical SortMethod = "alphabetical"
	SortCustom       SortMethod = "custom"
)

// UnknownGroup labels the split-by group holding samples that have no value
// for the split field.
const UnknownGroup = "Unknown"

// defaultClusterGenes is how many top-frequency genes drive the clustering
// heuristic when no explicit gene priority is supplied.
const defaultClusterGenes = 25

// SplitOptions configures SplitBy.
type SplitOptions struct {
	Method      SortMethod // within-group ordering, SortOncoprint if empty
	CustomOrder []string   // sample order for SortCustom
	GeneOrder   []string   // gene priority for SortOncoprint; each group's own top genes if nil
}

// SplitBy partitions the sample axis into named groups by a clinical
// metadata field. Groups are ordered by label (locale-aware, case folded),
// each group's samples are independently ordered by the configured method
// over a sub-dataset restricted to that group, and the groups are flattened
// back into a single sample axis with per-group position bookkeeping
// attached as SampleGroups.
//
// When the field is not a known metadata field the dataset is returned
// unchanged and the second result is false, mirroring SamplesByMetadata.
func SplitBy(d *Dataset, field string, opts SplitOptions) (*Dataset, bool) {
	if !d.Metadata.Known(field) {
		return d, false
	}
	method := opts.Method
	if method == "" {
		method = SortOncoprint
	}

	members := make(map[string][]string)
	var labels []string
	for _, s := range d.Samples {
		label, ok := d.Metadata.Value(s, field)
		if !ok {
			label = UnknownGroup
		}
		if _, seen := members[label]; !seen {
			labels = append(labels, label)
		}
		members[label] = append(members[label], s)
	}

	col := collate.New(language.Und, collate.Loose)
	sort.SliceStable(labels, func(i, j int) bool {
		return col.CompareString(labels[i], labels[j]) < 0
	})

	flat := make([]string, 0, len(d.Samples))
	groups := make([]SampleGroup, 0, len(labels))
	for _, label := range labels {
		ordered := orderGroup(d, members[label], method, opts)
		start := len(flat)
		flat = append(flat, ordered...)
		groups = append(groups, SampleGroup{
			Label:      label,
			Samples:    ordered,
			Count:      len(ordered),
			StartIndex: start,
			EndIndex:   start + len(ordered) - 1,
		})
	}

	out := *d
	out.Samples = flat
	out.SampleGroups = groups
	return &out, true
}

// orderGroup orders one group's samples using the configured method over a
// sub-dataset restricted to the group.
func orderGroup(d *Dataset, group []string, method SortMethod, opts SplitOptions) []string {
	switch method {
	case SortMutationLoad:
		return SamplesByMutationLoad(d.subsetForSamples(group), true)
	case SortAlphabetical:
		ordered := append([]string(nil), group...)
		sort.Strings(ordered)
		return ordered
	case SortCustom:
		return customOrder(group, opts.CustomOrder)
	default:
		sub := d.subsetForSamples(group)
		priority := opts.GeneOrder
		if len(priority) == 0 {
			priority = GenesByFrequency(sub, true, defaultClusterGenes)
		}
		return ClusterSamples(sub, priority)
	}
}

// customOrder places group members named in custom first, in custom's
// relative order, and appends the remaining members in their original order.
func customOrder(group, custom []string) []string {
	inGroup := make(map[string]bool, len(group))
	for _, s := range group {
		inGroup[s] = true
	}
	ordered := make([]string, 0, len(group))
	placed := make(map[string]bool, len(group))
	for _, s := range custom {
		if inGroup[s] && !placed[s] {
			ordered = append(ordered, s)
			placed[s] = true
		}
	}
	for _, s := range group {
		if !placed[s] {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
