package oncoprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeEventRecords is the minimal cohort used across the builder tests:
// TP53 mutated in two samples, KRAS in one.
func threeEventRecords() []Mutation {
	return []Mutation{
		{Gene: "TP53", Sample: "S1", Classification: ClassificationMissense},
		{Gene: "TP53", Sample: "S2", Classification: ClassificationMissense},
		{Gene: "KRAS", Sample: "S1", Classification: ClassificationNonsense},
	}
}

func TestBuild_NoCohort(t *testing.T) {
	d := NewBuilder().Build(threeEventRecords())

	assert.Equal(t, []string{"KRAS", "TP53"}, d.Genes)
	assert.Equal(t, []string{"S1", "S2"}, d.Samples)
	assert.Equal(t, 2, d.PercentageBase)
	assert.Nil(t, d.Cohort)

	assert.Equal(t, 2, d.GeneCounts["TP53"])
	assert.Equal(t, 1, d.GeneCounts["KRAS"])
	assert.Equal(t, 2, d.SampleCounts["S1"])
	assert.Equal(t, 1, d.SampleCounts["S2"])
}

func TestBuild_EmptyInput(t *testing.T) {
	d := NewBuilder().Build(nil)

	assert.Empty(t, d.Genes)
	assert.Empty(t, d.Samples)
	assert.Empty(t, d.Mutations)
	assert.Equal(t, 0, d.PercentageBase)
}

func TestBuild_DeclaredTotal(t *testing.T) {
	b := NewBuilder()
	b.SetCohort(&Cohort{TotalSamples: 100})
	d := b.Build(threeEventRecords())

	assert.Equal(t, []string{"S1", "S2"}, d.Samples, "axis stays data-derived")
	assert.Equal(t, 100, d.PercentageBase, "declared total becomes the base")
	require.NotNil(t, d.Cohort)
	assert.Equal(t, 100, d.Cohort.TotalSamples)
	assert.Nil(t, d.Cohort.SampleList)
}

func TestBuild_DeclaredSampleList(t *testing.T) {
	b := NewBuilder()
	b.SetCohort(&Cohort{SampleList: []string{"S3", "S1", "S2", "S4"}})
	d := b.Build(threeEventRecords())

	assert.Equal(t, []string{"S1", "S2", "S3", "S4"}, d.Samples, "declared list is authoritative, sorted")
	assert.Equal(t, 4, d.PercentageBase)
	require.NotNil(t, d.Cohort)
	assert.Equal(t, []string{"S3", "S4"}, d.Cohort.MissingSamples, "declared but absent from data")
}

func TestBuild_SampleListExcludesUnlistedEvents(t *testing.T) {
	records := append(threeEventRecords(),
		Mutation{Gene: "BRAF", Sample: "S9", Classification: ClassificationMissense})

	b := NewBuilder()
	b.SetCohort(&Cohort{SampleList: []string{"S1", "S2"}})
	d := b.Build(records)

	assert.Equal(t, []string{"S1", "S2"}, d.Samples)
	for _, m := range d.Mutations {
		assert.NotEqual(t, "S9", m.Sample, "events outside the declared list are excluded")
	}
	assert.Len(t, d.Mutations, 3)
	// BRAF still appears on the gene axis; it simply has no surviving events.
	assert.Contains(t, d.Genes, "BRAF")
	assert.Equal(t, 0, d.GeneCounts["BRAF"])
}

func TestBuild_MetadataClassification(t *testing.T) {
	// 25 samples with a numeric age field and a two-value stage field: age
	// crosses the distinct-value threshold and classifies numerical, stage
	// stays categorical.
	var records []Mutation
	var rows []MetadataRow
	for i := 0; i < 25; i++ {
		s := string(rune('A'+i)) + "-sample"
		records = append(records, Mutation{Gene: "TP53", Sample: s, Classification: ClassificationMissense})
		stage := "I"
		if i%2 == 0 {
			stage = "II"
		}
		rows = append(rows, MetadataRow{Sample: s, Fields: map[string]string{
			"age":   intString(30 + i),
			"stage": stage,
		}})
	}

	b := NewBuilder()
	b.SetMetadata(rows)
	d := b.Build(records)

	require.NotNil(t, d.Metadata)
	assert.Equal(t, []string{"age", "stage"}, d.Metadata.Fields)
	assert.Equal(t, FieldNumerical, d.Metadata.Types["age"])
	assert.Equal(t, FieldCategorical, d.Metadata.Types["stage"])
}

func TestBuild_MetadataDropsRowsOffAxis(t *testing.T) {
	b := NewBuilder()
	b.SetMetadata([]MetadataRow{
		{Sample: "S1", Fields: map[string]string{"stage": "I"}},
		{Sample: "S99", Fields: map[string]string{"stage": "IV"}},
	})
	d := b.Build(threeEventRecords())

	require.NotNil(t, d.Metadata)
	_, ok := d.Metadata.Value("S99", "stage")
	assert.False(t, ok, "metadata for samples off the axis is discarded")
	v, ok := d.Metadata.Value("S1", "stage")
	require.True(t, ok)
	assert.Equal(t, "I", v)
}

func TestClassifyField(t *testing.T) {
	tests := []struct {
		name     string
		observed []string
		want     FieldType
	}{
		{"empty", nil, FieldCategorical},
		{"few distinct values", []string{"a", "b", "a", "b"}, FieldCategorical},
		{"many numeric", manyNumeric(30), FieldNumerical},
		{"many but mostly text", manyText(30), FieldCategorical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyField(tt.observed))
		})
	}
}

func TestFilterGenes(t *testing.T) {
	d := NewBuilder().Build(threeEventRecords())
	f := d.FilterGenes([]string{"TP53"})

	assert.Equal(t, []string{"TP53"}, f.Genes)
	assert.Equal(t, []string{"S1", "S2"}, f.Samples, "sample axis preserved")
	assert.Equal(t, 2, f.PercentageBase)
	assert.Len(t, f.Mutations, 2)
	assert.Equal(t, 1, f.SampleCounts["S1"], "counts recomputed after the filter")

	// The original dataset is untouched.
	assert.Equal(t, []string{"KRAS", "TP53"}, d.Genes)
	assert.Len(t, d.Mutations, 3)
}

func TestFilterSamples(t *testing.T) {
	d := NewBuilder().Build(threeEventRecords())
	f := d.FilterSamples([]string{"S1"})

	assert.Equal(t, []string{"S1"}, f.Samples)
	assert.Equal(t, 1, f.PercentageBase, "data-derived base shrinks with the axis")
	assert.Len(t, f.Mutations, 2)

	assert.Equal(t, []string{"S1", "S2"}, d.Samples)
}

func TestFilterSamples_DeclaredBaseSurvives(t *testing.T) {
	b := NewBuilder()
	b.SetCohort(&Cohort{TotalSamples: 100})
	d := b.Build(threeEventRecords())

	f := d.FilterSamples([]string{"S1"})
	assert.Equal(t, 100, f.PercentageBase, "declared base survives the filter")
}

func TestSnapshot_SharesNothing(t *testing.T) {
	b := NewBuilder()
	b.SetMetadata([]MetadataRow{{Sample: "S1", Fields: map[string]string{"stage": "I"}}})
	b.SetCohort(&Cohort{SampleList: []string{"S1", "S2", "S3"}})
	d := b.Build(threeEventRecords())

	snap := d.Snapshot()
	require.Equal(t, d.Genes, snap.Genes)
	require.Equal(t, d.Samples, snap.Samples)
	require.Equal(t, d.PercentageBase, snap.PercentageBase)

	snap.Genes[0] = "mutated"
	snap.GeneCounts["TP53"] = 99
	snap.Metadata.Values["S1"]["stage"] = "IV"
	snap.Cohort.MissingSamples[0] = "mutated"

	assert.Equal(t, "KRAS", d.Genes[0])
	assert.Equal(t, 2, d.GeneCounts["TP53"])
	v, _ := d.Metadata.Value("S1", "stage")
	assert.Equal(t, "I", v)
	assert.Equal(t, "S3", d.Cohort.MissingSamples[0])
}

func TestDistinctMutatedSamples(t *testing.T) {
	records := append(threeEventRecords(),
		Mutation{Gene: "TP53", Sample: "S1", Classification: ClassificationSilent})
	d := NewBuilder().Build(records)

	counts := d.DistinctMutatedSamples()
	assert.Equal(t, 2, counts["TP53"], "distinct samples, not raw events")
	assert.Equal(t, 3, d.GeneCounts["TP53"], "raw events keep counting duplicates")
	assert.Equal(t, 1, counts["KRAS"])
}

func intString(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

func manyNumeric(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = intString(i + 10)
	}
	return out
}

func manyText(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "v" + intString(i+10)
	}
	return out
}
