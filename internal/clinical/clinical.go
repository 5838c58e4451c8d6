// Package clinical loads per-sample clinical annotation tables (TSV) into
// the metadata rows the oncoprint engine consumes.
package clinical

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

// Sample-identifier column names, checked in order. When none match, the
// first column is taken as the identifier.
var sampleColumns = []string{
	"Tumor_Sample_Barcode",
	"SAMPLE_ID",
	"sample_id",
	"sample",
}

// Load reads a clinical TSV file. Lines starting with "#" (including
// cBioPortal's attribute metadata rows) are skipped.
func Load(path string) ([]oncoprint.MetadataRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open clinical file: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading clinical file %s: %w", path, err)
	}
	return rows, nil
}

// Read parses clinical rows from a reader. The header must contain a sample
// identifier column; every other column becomes an open metadata field.
// Rows with an empty sample identifier are dropped, and empty cells do not
// produce field values.
func Read(r io.Reader) ([]oncoprint.MetadataRow, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Read header, skipping comment lines
	var header []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		header = strings.Split(line, "\t")
		break
	}
	if header == nil {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("no header line found")
	}

	sampleIdx := findSampleColumn(header)

	var rows []oncoprint.MetadataRow
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= sampleIdx {
			continue
		}
		sample := strings.TrimSpace(fields[sampleIdx])
		if sample == "" {
			continue
		}
		row := oncoprint.MetadataRow{
			Sample: sample,
			Fields: make(map[string]string, len(header)-1),
		}
		for i, col := range header {
			if i == sampleIdx || i >= len(fields) {
				continue
			}
			v := strings.TrimSpace(fields[i])
			if v == "" || v == "NA" {
				continue
			}
			row.Fields[col] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}

// findSampleColumn returns the index of the sample identifier column,
// falling back to the first column when no known name matches.
func findSampleColumn(header []string) int {
	for _, name := range sampleColumns {
		for i, col := range header {
			if col == name {
				return i
			}
		}
	}
	return 0
}
