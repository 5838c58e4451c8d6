// Package oncoprint implements the data-transformation and ordering engine
// behind oncoprint-style mutation grids: normalized datasets, gene and sample
// ordering, split-by group partitioning, cell matrices and frequency
// statistics.
package oncoprint

import (
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// Mutation is a single observed alteration of a gene in a sample.
type Mutation struct {
	Gene           string // Hugo symbol
	Sample         string // tumor sample barcode
	Classification string // MAF variant classification (e.g. Missense_Mutation)
	ProteinChange  string // e.g. "p.G12C", empty if unknown
	Chrom          string // locus chromosome, empty if unknown
	Pos            int64  // locus start position, 0 if unknown
}

// MetadataRow is one sample's clinical record as supplied by the ingestion
// collaborator: the sample identifier plus an open set of named fields.
type MetadataRow struct {
	Sample string
	Fields map[string]string
}

// FieldType classifies a clinical metadata field.
type FieldType string

const (
	FieldCategorical FieldType = "categorical"
	FieldNumerical   FieldType = "numerical"
)

// Field classification thresholds: a field with fewer than
// maxCategoricalValues distinct observed values, or where fewer than
// minNumericFraction of the observed values parse as numbers, is categorical.
const (
	maxCategoricalValues = 20
	minNumericFraction   = 0.8
)

// Metadata holds the clinical annotations carried by a Dataset. The field
// type classification is computed once at build time and carried alongside
// the values.
type Metadata struct {
	Fields []string                     // field names, identifier column excluded
	Types  map[string]FieldType         // per-field classification
	Values map[string]map[string]string // sample -> field -> raw value
}

// Known reports whether field is one of the metadata fields.
func (m *Metadata) Known(field string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Types[field]
	return ok
}

// Value returns the raw value of field for sample. The second return is
// false when the sample has no value for the field.
func (m *Metadata) Value(sample, field string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.Values[sample][field]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Cohort declares the population a mutation file was drawn from. Either a
// total size, an explicit sample list, or both may be given; an explicit
// list takes precedence (see Builder.Build).
type Cohort struct {
	TotalSamples int      // declared cohort size, 0 if not declared
	SampleList   []string // declared sample identifiers, nil if not declared
}

// CohortInfo records how a declared cohort was reconciled with the mutation
// data during the build.
type CohortInfo struct {
	TotalSamples   int      // declared total, 0 if only a list was given
	SampleList     []string // declared samples, sorted, nil if only a total was given
	MissingSamples []string // declared samples with no mutation events
}

// SampleGroup is one contiguous block of the sample axis produced by SplitBy.
type SampleGroup struct {
	Label      string
	Samples    []string
	Count      int
	StartIndex int // zero-based position of the first member in Dataset.Samples
	EndIndex   int // zero-based position of the last member
}

// Dataset is the normalized, orderable representation of a mutation cohort.
// A Dataset is immutable once built; every transformation (filter, split)
// returns a new value and leaves the receiver untouched.
type Dataset struct {
	Genes          []string
	Samples        []string
	Mutations      []Mutation
	GeneCounts     map[string]int // raw event counts per gene
	SampleCounts   map[string]int // raw event counts per sample
	Metadata       *Metadata      // nil when no clinical data was supplied
	PercentageBase int            // denominator for frequency percentages
	Cohort         *CohortInfo    // nil when no cohort was declared
	SampleGroups   []SampleGroup  // set by SplitBy, nil otherwise
}

// Builder assembles a normalized Dataset from raw mutation records.
type Builder struct {
	metadata []MetadataRow
	cohort   *Cohort
	logger   *zap.Logger
}

// NewBuilder creates a builder with no clinical data and no declared cohort.
func NewBuilder() *Builder {
	return &Builder{logger: zap.NewNop()}
}

// SetMetadata supplies per-sample clinical metadata rows.
func (b *Builder) SetMetadata(rows []MetadataRow) {
	b.metadata = rows
}

// SetCohort declares the cohort the mutation records were drawn from.
func (b *Builder) SetCohort(c *Cohort) {
	b.cohort = c
}

// SetLogger sets the logger for build diagnostics.
func (b *Builder) SetLogger(l *zap.Logger) {
	b.logger = l
}

// Build constructs the normalized dataset. Empty input is not an error and
// yields an empty dataset with a zero percentage base.
//
// The sample axis and percentage base follow a three-way policy:
//  1. a declared sample list is authoritative: it becomes the sample axis
//     (sorted) and its length the percentage base, even if some listed
//     samples carry no mutations;
//  2. else a declared total becomes the percentage base while the samples
//     observed in the data form the axis;
//  3. else both derive from the samples observed in the data.
//
// Mutations referencing samples outside the final axis are excluded, never
// retained with dangling references.
func (b *Builder) Build(records []Mutation) *Dataset {
	geneSet := make(map[string]bool)
	dataSamples := make(map[string]bool)
	for _, m := range records {
		geneSet[m.Gene] = true
		dataSamples[m.Sample] = true
	}

	var (
		samples []string
		info    *CohortInfo
		base    int
	)
	switch {
	case b.cohort != nil && len(b.cohort.SampleList) > 0:
		declared := make(map[string]bool, len(b.cohort.SampleList))
		for _, s := range b.cohort.SampleList {
			declared[s] = true
		}
		samples = sortedKeys(declared)
		base = len(samples)
		var missing []string
		for _, s := range samples {
			if !dataSamples[s] {
				missing = append(missing, s)
			}
		}
		info = &CohortInfo{
			TotalSamples:   b.cohort.TotalSamples,
			SampleList:     samples,
			MissingSamples: missing,
		}
	case b.cohort != nil && b.cohort.TotalSamples > 0:
		samples = sortedKeys(dataSamples)
		base = b.cohort.TotalSamples
		info = &CohortInfo{TotalSamples: b.cohort.TotalSamples}
	default:
		samples = sortedKeys(dataSamples)
		base = len(samples)
	}

	keep := make(map[string]bool, len(samples))
	for _, s := range samples {
		keep[s] = true
	}
	mutations := make([]Mutation, 0, len(records))
	for _, m := range records {
		if !keep[m.Sample] {
			continue
		}
		mutations = append(mutations, m)
	}
	geneCounts, sampleCounts := countEvents(mutations)

	d := &Dataset{
		Genes:          sortedKeys(geneSet),
		Samples:        samples,
		Mutations:      mutations,
		GeneCounts:     geneCounts,
		SampleCounts:   sampleCounts,
		Metadata:       buildMetadata(b.metadata, keep),
		PercentageBase: base,
		Cohort:         info,
	}

	if info != nil && len(info.MissingSamples) > 0 {
		b.logger.Warn("declared cohort samples absent from mutation data",
			zap.Int("missing", len(info.MissingSamples)))
	}
	if dropped := len(records) - len(mutations); dropped > 0 {
		b.logger.Warn("mutation events outside the declared sample list excluded",
			zap.Int("excluded", dropped))
	}
	b.logger.Info("dataset built",
		zap.Int("genes", len(d.Genes)),
		zap.Int("samples", len(d.Samples)),
		zap.Int("events", len(d.Mutations)),
		zap.Int("percentage_base", d.PercentageBase))

	return d
}

// buildMetadata classifies and indexes metadata rows, keeping only rows for
// samples on the final axis. Returns nil when no rows survive.
func buildMetadata(rows []MetadataRow, keep map[string]bool) *Metadata {
	if len(rows) == 0 {
		return nil
	}

	values := make(map[string]map[string]string)
	fieldSet := make(map[string]bool)
	for _, r := range rows {
		if !keep[r.Sample] {
			continue
		}
		fields := values[r.Sample]
		if fields == nil {
			fields = make(map[string]string, len(r.Fields))
			values[r.Sample] = fields
		}
		for name, v := range r.Fields {
			fieldSet[name] = true
			fields[name] = v
		}
	}
	if len(fieldSet) == 0 {
		return nil
	}

	fields := sortedKeys(fieldSet)
	types := make(map[string]FieldType, len(fields))
	for _, f := range fields {
		var observed []string
		for _, perSample := range values {
			if v, ok := perSample[f]; ok && v != "" {
				observed = append(observed, v)
			}
		}
		types[f] = classifyField(observed)
	}

	return &Metadata{Fields: fields, Types: types, Values: values}
}

// classifyField decides whether a metadata field is categorical or
// numerical: few distinct values or a low numeric fraction means
// categorical.
func classifyField(observed []string) FieldType {
	if len(observed) == 0 {
		return FieldCategorical
	}
	distinct := make(map[string]bool, len(observed))
	numeric := 0
	for _, v := range observed {
		distinct[v] = true
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			numeric++
		}
	}
	if len(distinct) < maxCategoricalValues {
		return FieldCategorical
	}
	if float64(numeric) < minNumericFraction*float64(len(observed)) {
		return FieldCategorical
	}
	return FieldNumerical
}

// FilterGenes returns a new dataset restricted to the given genes. The
// sample axis, percentage base, metadata and any split groups are preserved;
// mutation events in filtered-out genes are excluded and the event counts
// recomputed.
func (d *Dataset) FilterGenes(genes []string) *Dataset {
	want := make(map[string]bool, len(genes))
	for _, g := range genes {
		want[g] = true
	}
	kept := make([]string, 0, len(genes))
	for _, g := range d.Genes {
		if want[g] {
			kept = append(kept, g)
		}
	}
	mutations := make([]Mutation, 0, len(d.Mutations))
	for _, m := range d.Mutations {
		if want[m.Gene] {
			mutations = append(mutations, m)
		}
	}
	geneCounts, sampleCounts := countEvents(mutations)

	out := *d
	out.Genes = kept
	out.Mutations = mutations
	out.GeneCounts = geneCounts
	out.SampleCounts = sampleCounts
	return &out
}

// FilterSamples returns a new dataset restricted to the given samples.
// Mutation events in filtered-out samples are excluded and counts
// recomputed. A declared percentage base survives the filter; a base derived
// from the data shrinks with the axis. Split groups do not survive, the
// caller re-splits if needed.
func (d *Dataset) FilterSamples(samples []string) *Dataset {
	want := make(map[string]bool, len(samples))
	for _, s := range samples {
		want[s] = true
	}
	kept := make([]string, 0, len(samples))
	for _, s := range d.Samples {
		if want[s] {
			kept = append(kept, s)
		}
	}
	mutations := make([]Mutation, 0, len(d.Mutations))
	for _, m := range d.Mutations {
		if want[m.Sample] {
			mutations = append(mutations, m)
		}
	}
	geneCounts, sampleCounts := countEvents(mutations)

	out := *d
	out.Samples = kept
	out.Mutations = mutations
	out.GeneCounts = geneCounts
	out.SampleCounts = sampleCounts
	out.Metadata = d.Metadata.restrict(want)
	if d.Cohort == nil {
		out.PercentageBase = len(kept)
	}
	out.SampleGroups = nil
	return &out
}

// restrict returns a copy of m keeping only values for the wanted samples.
func (m *Metadata) restrict(want map[string]bool) *Metadata {
	if m == nil {
		return nil
	}
	values := make(map[string]map[string]string, len(want))
	for sample, fields := range m.Values {
		if want[sample] {
			values[sample] = fields
		}
	}
	return &Metadata{Fields: m.Fields, Types: m.Types, Values: values}
}

// subsetForSamples builds the per-group view used by SplitBy: the same gene
// set, mutation events restricted to the given samples, counts recomputed.
func (d *Dataset) subsetForSamples(samples []string) *Dataset {
	keep := make(map[string]bool, len(samples))
	for _, s := range samples {
		keep[s] = true
	}
	mutations := make([]Mutation, 0, len(d.Mutations))
	for _, m := range d.Mutations {
		if keep[m.Sample] {
			mutations = append(mutations, m)
		}
	}
	geneCounts, sampleCounts := countEvents(mutations)
	return &Dataset{
		Genes:          d.Genes,
		Samples:        samples,
		Mutations:      mutations,
		GeneCounts:     geneCounts,
		SampleCounts:   sampleCounts,
		Metadata:       d.Metadata,
		PercentageBase: len(samples),
	}
}

// DistinctMutatedSamples returns, per gene, how many distinct samples carry
// at least one mutation in that gene. This is the frequency numerator, as
// opposed to GeneCounts which tallies raw events.
func (d *Dataset) DistinctMutatedSamples() map[string]int {
	carriers := carriersByGene(d)
	counts := make(map[string]int, len(d.Genes))
	for _, g := range d.Genes {
		counts[g] = len(carriers[g])
	}
	return counts
}

// Snapshot returns a deep copy of the dataset for the export collaborator.
// The copy shares nothing with the receiver.
func (d *Dataset) Snapshot() *Dataset {
	out := &Dataset{
		Genes:          append([]string(nil), d.Genes...),
		Samples:        append([]string(nil), d.Samples...),
		Mutations:      append([]Mutation(nil), d.Mutations...),
		GeneCounts:     copyCounts(d.GeneCounts),
		SampleCounts:   copyCounts(d.SampleCounts),
		PercentageBase: d.PercentageBase,
	}
	if d.Metadata != nil {
		values := make(map[string]map[string]string, len(d.Metadata.Values))
		for sample, fields := range d.Metadata.Values {
			inner := make(map[string]string, len(fields))
			for k, v := range fields {
				inner[k] = v
			}
			values[sample] = inner
		}
		types := make(map[string]FieldType, len(d.Metadata.Types))
		for k, v := range d.Metadata.Types {
			types[k] = v
		}
		out.Metadata = &Metadata{
			Fields: append([]string(nil), d.Metadata.Fields...),
			Types:  types,
			Values: values,
		}
	}
	if d.Cohort != nil {
		out.Cohort = &CohortInfo{
			TotalSamples:   d.Cohort.TotalSamples,
			SampleList:     append([]string(nil), d.Cohort.SampleList...),
			MissingSamples: append([]string(nil), d.Cohort.MissingSamples...),
		}
	}
	if d.SampleGroups != nil {
		groups := make([]SampleGroup, len(d.SampleGroups))
		for i, g := range d.SampleGroups {
			g.Samples = append([]string(nil), g.Samples...)
			groups[i] = g
		}
		out.SampleGroups = groups
	}
	return out
}

// countEvents tallies raw event counts per gene and per sample.
func countEvents(mutations []Mutation) (genes, samples map[string]int) {
	genes = make(map[string]int)
	samples = make(map[string]int)
	for _, m := range mutations {
		genes[m.Gene]++
		samples[m.Sample]++
	}
	return genes, samples
}

func copyCounts(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
