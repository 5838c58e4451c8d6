package cohort

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSampleList_OnePerLine(t *testing.T) {
	path := writeTemp(t, "samples.txt", "S1\nS2\n\nS3\nS2\n")

	list, err := LoadSampleList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S3"}, list, "blank lines and duplicates dropped")
}

func TestLoadSampleList_TSVWithHeader(t *testing.T) {
	content := strings.Join([]string{
		"PATIENT_ID\tTumor_Sample_Barcode\tstage",
		"P1\tS1\tII",
		"P2\tS2\tI",
		"",
	}, "\n")
	path := writeTemp(t, "samples.tsv", content)

	list, err := LoadSampleList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2"}, list)
}

func TestLoadGeneList_OnePerLine(t *testing.T) {
	path := writeTemp(t, "genes.txt", "# driver genes\nTP53\nKRAS\n")

	list, err := LoadGeneList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TP53", "KRAS"}, list)
}

func TestLoadGeneList_OncoKBShape(t *testing.T) {
	content := strings.Join([]string{
		"Hugo Symbol\tGene Type",
		"TP53\tTSG",
		"KRAS\tONCOGENE",
		"",
	}, "\n")
	path := writeTemp(t, "cancerGeneList.tsv", content)

	list, err := LoadGeneList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TP53", "KRAS"}, list)
}

func TestLoad_Empty(t *testing.T) {
	path := writeTemp(t, "empty.txt", "# nothing here\n")

	_, err := LoadSampleList(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entries")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadGeneList(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
