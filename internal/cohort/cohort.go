// Package cohort loads declared cohort sample lists and gene lists used to
// pin the oncoprint's sample axis and gene selection.
package cohort

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names recognized in TSV-shaped list files.
var (
	sampleListColumns = []string{"Tumor_Sample_Barcode", "SAMPLE_ID", "sample"}
	geneListColumns   = []string{"Hugo_Symbol", "Hugo Symbol", "gene"}
)

// LoadSampleList reads a declared cohort membership file: either one sample
// identifier per line, or a TSV whose header names a sample column.
func LoadSampleList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample list: %w", err)
	}
	defer f.Close()

	list, err := readList(f, sampleListColumns)
	if err != nil {
		return nil, fmt.Errorf("reading sample list %s: %w", path, err)
	}
	return list, nil
}

// LoadGeneList reads a gene selection file: one Hugo symbol per line, or a
// TSV whose header names a gene column.
func LoadGeneList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gene list: %w", err)
	}
	defer f.Close()

	list, err := readList(f, geneListColumns)
	if err != nil {
		return nil, fmt.Errorf("reading gene list %s: %w", path, err)
	}
	return list, nil
}

// readList parses a one-per-line or TSV-with-header list. A header is
// recognized when the first non-comment line carries one of the known
// column names; otherwise every line is an entry. Duplicates are dropped,
// first occurrence wins.
func readList(r io.Reader, columns []string) ([]string, error) {
	scanner := bufio.NewScanner(r)

	var entries []string
	seen := make(map[string]bool)
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		entries = append(entries, v)
	}

	first := true
	colIdx := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")

		if first {
			first = false
			if idx, ok := findColumn(fields, columns); ok {
				colIdx = idx
				continue // header line, not an entry
			}
		}
		if colIdx < len(fields) {
			add(fields[colIdx])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries found")
	}
	return entries, nil
}

// findColumn returns the index of the first header field matching one of
// the known column names.
func findColumn(fields, columns []string) (int, bool) {
	for _, name := range columns {
		for i, f := range fields {
			if strings.TrimSpace(f) == name {
				return i, true
			}
		}
	}
	return 0, false
}
