package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

func TestJSONWriter(t *testing.T) {
	d := gridDataset(t)

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(d))

	var decoded jsonDataset
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, []string{"KRAS", "TP53"}, decoded.Genes)
	assert.Equal(t, []string{"S1", "S2"}, decoded.Samples)
	assert.Len(t, decoded.Mutations, 4)
	assert.Equal(t, 2, decoded.PercentageBase)
	assert.InDelta(t, 1.0, decoded.Frequencies["TP53"], 1e-9)
	assert.Nil(t, decoded.Metadata)
	assert.Nil(t, decoded.Cohort)
}

func TestJSONWriter_OptionalSections(t *testing.T) {
	b := oncoprint.NewBuilder()
	b.SetMetadata([]oncoprint.MetadataRow{
		{Sample: "S1", Fields: map[string]string{"arm": "A"}},
		{Sample: "S2", Fields: map[string]string{"arm": "B"}},
	})
	d := b.Build([]oncoprint.Mutation{
		{Gene: "TP53", Sample: "S1", Classification: oncoprint.ClassificationMissense},
		{Gene: "TP53", Sample: "S2", Classification: oncoprint.ClassificationMissense},
	})
	split, ok := oncoprint.SplitBy(d, "arm", oncoprint.SplitOptions{})
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(split))

	var decoded jsonDataset
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.NotNil(t, decoded.Metadata)
	assert.Equal(t, []string{"arm"}, decoded.Metadata.Fields)
	require.Len(t, decoded.SampleGroups, 2)
	assert.Equal(t, "A", decoded.SampleGroups[0].Label)
}

func TestJSONWriter_DoesNotMutateDataset(t *testing.T) {
	d := gridDataset(t)
	before := len(d.Mutations)

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(d))

	assert.Len(t, d.Mutations, before)
}
