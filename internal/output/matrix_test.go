package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

func gridDataset(t *testing.T) *oncoprint.Dataset {
	t.Helper()
	return oncoprint.NewBuilder().Build([]oncoprint.Mutation{
		{Gene: "TP53", Sample: "S1", Classification: oncoprint.ClassificationMissense},
		{Gene: "TP53", Sample: "S2", Classification: oncoprint.ClassificationMissense},
		{Gene: "TP53", Sample: "S2", Classification: oncoprint.ClassificationNonsense},
		{Gene: "KRAS", Sample: "S1", Classification: oncoprint.ClassificationNonsense},
	})
}

func TestMatrixWriter(t *testing.T) {
	d := gridDataset(t)
	m := oncoprint.BuildMatrix(d)

	var buf bytes.Buffer
	mw := NewMatrixWriter(&buf, d.Samples)
	require.NoError(t, mw.WriteHeader())
	for _, g := range d.Genes {
		require.NoError(t, mw.WriteGene(g, m))
	}
	require.NoError(t, mw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Gene\tS1\tS2", lines[0])
	assert.Equal(t, "KRAS\tNonsense_Mutation\t", lines[1])
	assert.Equal(t, "TP53\tMissense_Mutation\tMissense_Mutation;Nonsense_Mutation", lines[2])
}

func TestMatrixWriter_GroupRow(t *testing.T) {
	var buf bytes.Buffer
	mw := NewMatrixWriter(&buf, []string{"S1", "S2", "S3"})

	groups := []oncoprint.SampleGroup{
		{Label: "A", Samples: []string{"S1", "S2"}, Count: 2, StartIndex: 0, EndIndex: 1},
		{Label: "B", Samples: []string{"S3"}, Count: 1, StartIndex: 2, EndIndex: 2},
	}
	require.NoError(t, mw.WriteGroupRow(groups))
	require.NoError(t, mw.WriteHeader())
	require.NoError(t, mw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "#Group\tA\tA\tB", lines[0])
}
