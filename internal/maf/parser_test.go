package maf

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

func TestParser_ReadRecords(t *testing.T) {
	parser, err := Open(findTestFile(t, "sample.maf"))
	require.NoError(t, err)
	defer parser.Close()

	cols := parser.Columns()
	assert.Equal(t, 0, cols.HugoSymbol)
	assert.Equal(t, 3, cols.VariantClassification)
	assert.Equal(t, 4, cols.TumorSampleBarcode)

	// First record (TP53 R248W)
	m, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "TP53", m.Gene)
	assert.Equal(t, "TCGA-01", m.Sample)
	assert.Equal(t, oncoprint.ClassificationMissense, m.Classification)
	assert.Equal(t, "p.R248W", m.ProteinChange)
	assert.Equal(t, "17", m.Chrom)
	assert.Equal(t, int64(7577539), m.Pos)

	// Second record carries an SO consequence term; it normalizes to the
	// MAF classification label.
	m, err = parser.Next()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "KRAS", m.Gene)
	assert.Equal(t, oncoprint.ClassificationMissense, m.Classification)

	// Third record has a "-" protein change placeholder.
	m, err = parser.Next()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, oncoprint.ClassificationNonsense, m.Classification)
	assert.Empty(t, m.ProteinChange)

	// The BRAF row has no sample barcode and is dropped silently; the next
	// record is EGFR.
	m, err = parser.Next()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "EGFR", m.Gene)

	m, err = parser.Next()
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, 1, parser.Skipped())
}

func TestParser_ReadAll(t *testing.T) {
	parser, err := Open(findTestFile(t, "sample.maf"))
	require.NoError(t, err)
	defer parser.Close()

	records, err := parser.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Equal(t, 1, parser.Skipped())
}

func TestParser_Gzip(t *testing.T) {
	raw, err := os.ReadFile(findTestFile(t, "sample.maf"))
	require.NoError(t, err)

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err = gz.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "sample.maf.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	parser, err := Open(path)
	require.NoError(t, err)
	defer parser.Close()

	records, err := parser.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestParser_MissingRequiredColumn(t *testing.T) {
	input := "Hugo_Symbol\tChromosome\nTP53\t17\n"

	_, err := NewParserFromReader(strings.NewReader(input))
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "Tumor_Sample_Barcode")
}

func TestParser_EmptyInput(t *testing.T) {
	_, err := NewParserFromReader(strings.NewReader(""))
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParser_ProteinChangeFallback(t *testing.T) {
	input := strings.Join([]string{
		"Hugo_Symbol\tTumor_Sample_Barcode\tVariant_Classification\tProtein_Change",
		"KRAS\tS1\tMissense_Mutation\tp.G12D",
		"",
	}, "\n")

	parser, err := NewParserFromReader(strings.NewReader(input))
	require.NoError(t, err)

	m, err := parser.Next()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "p.G12D", m.ProteinChange, "Protein_Change used when HGVSp_Short is absent")
}

func TestNormalizeClassification(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Missense_Mutation", oncoprint.ClassificationMissense},
		{"missense_mutation", oncoprint.ClassificationMissense},
		{"missense_variant", oncoprint.ClassificationMissense},
		{"stop_gained", oncoprint.ClassificationNonsense},
		{"splice_acceptor_variant", oncoprint.ClassificationSpliceSite},
		{"frameshift_variant", oncoprint.ClassificationFrameShiftDel},
		{"start_lost", oncoprint.ClassificationStartSite},
		{"Custom_Category", "Custom_Category"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeClassification(tt.in))
		})
	}
}

func TestParseError(t *testing.T) {
	err := &ParseError{Line: 42, Message: "required column not found"}
	assert.Equal(t, "maf parse error at line 42: required column not found", err.Error())
}

// findTestFile locates a test file in the testdata directory.
func findTestFile(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join("testdata", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Test file not found: %s", name)
	}
	return path
}
