// Package maf reads MAF (Mutation Annotation Format) files into the mutation
// records the oncoprint engine consumes.
package maf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

// MAF column names the parser recognizes.
const (
	ColHugoSymbol            = "Hugo_Symbol"
	ColTumorSampleBarcode    = "Tumor_Sample_Barcode"
	ColVariantClassification = "Variant_Classification"
	ColHGVSpShort            = "HGVSp_Short"
	ColProteinChange         = "Protein_Change"
	ColChromosome            = "Chromosome"
	ColStartPosition         = "Start_Position"
)

// ColumnIndices holds the indices of recognized MAF columns, -1 when a
// column is absent from the header.
type ColumnIndices struct {
	HugoSymbol            int
	TumorSampleBarcode    int
	VariantClassification int
	HGVSpShort            int
	ProteinChange         int
	Chromosome            int
	StartPosition         int
}

// Parser reads mutation records from a MAF file. Rows missing a required
// value (gene, sample, or classification) are dropped silently and counted.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	body       io.ReadCloser
	lineNumber int
	columns    ColumnIndices
	headerLine string
	skipped    int
}

// Open creates a parser for a local path, "-" for stdin, or an http(s) URL.
// Plain and gzipped MAF files are both supported; gzip is detected from the
// magic bytes, not the file name.
func Open(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := http.Get(path)
		if err != nil {
			return nil, fmt.Errorf("fetch maf url: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch maf url: unexpected status %s", resp.Status)
		}
		p, err := NewParserFromReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		p.body = resp.Body
		return p, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maf file: %w", err)
	}
	p, err := NewParserFromReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	p.file = file
	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g. stdin).
func NewParserFromReader(r io.Reader) (*Parser, error) {
	br := bufio.NewReader(r)

	// Check for gzip magic number (0x1f, 0x8b)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p := &Parser{reader: bufio.NewReader(gz), gzipReader: gz}
		if err := p.parseHeader(); err != nil {
			return nil, err
		}
		return p, nil
	}

	p := &Parser{reader: br}
	if err := p.parseHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseHeader reads past comment lines to the header and resolves column
// indices.
func (p *Parser) parseHeader() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return &ParseError{
					Line:    p.lineNumber,
					Message: "no header line found",
				}
			}
			return fmt.Errorf("read header: %w", err)
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p.headerLine = line
		return p.parseColumnIndices(line)
	}
}

// parseColumnIndices resolves the header columns and validates that the
// required ones are present.
func (p *Parser) parseColumnIndices(headerLine string) error {
	columns := strings.Split(headerLine, "\t")

	p.columns = ColumnIndices{
		HugoSymbol:            -1,
		TumorSampleBarcode:    -1,
		VariantClassification: -1,
		HGVSpShort:            -1,
		ProteinChange:         -1,
		Chromosome:            -1,
		StartPosition:         -1,
	}

	for i, col := range columns {
		switch col {
		case ColHugoSymbol:
			p.columns.HugoSymbol = i
		case ColTumorSampleBarcode:
			p.columns.TumorSampleBarcode = i
		case ColVariantClassification:
			p.columns.VariantClassification = i
		case ColHGVSpShort:
			p.columns.HGVSpShort = i
		case ColProteinChange:
			p.columns.ProteinChange = i
		case ColChromosome:
			p.columns.Chromosome = i
		case ColStartPosition:
			p.columns.StartPosition = i
		}
	}

	for _, req := range []struct {
		name  string
		index int
	}{
		{ColHugoSymbol, p.columns.HugoSymbol},
		{ColTumorSampleBarcode, p.columns.TumorSampleBarcode},
		{ColVariantClassification, p.columns.VariantClassification},
	} {
		if req.index == -1 {
			return &ParseError{
				Line:    p.lineNumber,
				Message: fmt.Sprintf("required column %q not found in header", req.name),
			}
		}
	}

	return nil
}

// Next reads the next mutation record. Returns nil, nil when there are no
// more records. Rows with an empty gene, sample, or classification are
// skipped without error; Skipped reports how many.
func (p *Parser) Next() (*oncoprint.Mutation, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read maf line: %w", err)
		}
		atEOF := err == io.EOF
		line = strings.TrimRight(line, "\r\n")

		if line != "" && !strings.HasPrefix(line, "#") {
			p.lineNumber++
			m, ok := p.parseLine(line)
			if ok {
				return m, nil
			}
			p.skipped++
		} else if line != "" {
			p.lineNumber++
		}

		if atEOF {
			return nil, nil
		}
	}
}

// parseLine parses one data line. The second return is false when a
// required field is missing or empty.
func (p *Parser) parseLine(line string) (*oncoprint.Mutation, bool) {
	fields := strings.Split(line, "\t")

	gene := fieldAt(fields, p.columns.HugoSymbol)
	sample := fieldAt(fields, p.columns.TumorSampleBarcode)
	classification := fieldAt(fields, p.columns.VariantClassification)
	if gene == "" || sample == "" || classification == "" {
		return nil, false
	}

	m := &oncoprint.Mutation{
		Gene:           gene,
		Sample:         sample,
		Classification: NormalizeClassification(classification),
		Chrom:          fieldAt(fields, p.columns.Chromosome),
	}

	// HGVSp_Short is preferred; older MAF flavors carry Protein_Change.
	m.ProteinChange = fieldAt(fields, p.columns.HGVSpShort)
	if m.ProteinChange == "" {
		m.ProteinChange = fieldAt(fields, p.columns.ProteinChange)
	}

	if pos := fieldAt(fields, p.columns.StartPosition); pos != "" {
		if n, err := strconv.ParseInt(pos, 10, 64); err == nil {
			m.Pos = n
		}
	}

	return m, true
}

// fieldAt returns the trimmed value at index, or "" for absent columns,
// short rows, and the "-" placeholder.
func fieldAt(fields []string, index int) string {
	if index < 0 || index >= len(fields) {
		return ""
	}
	v := strings.TrimSpace(fields[index])
	if v == "-" || v == "." {
		return ""
	}
	return v
}

// ReadAll reads every remaining record into memory.
func (p *Parser) ReadAll() ([]oncoprint.Mutation, error) {
	var records []oncoprint.Mutation
	for {
		m, err := p.Next()
		if err != nil {
			return nil, err
		}
		if m == nil {
			return records, nil
		}
		records = append(records, *m)
	}
}

// Header returns the MAF header line.
func (p *Parser) Header() string {
	return p.headerLine
}

// Columns returns the parsed column indices.
func (p *Parser) Columns() ColumnIndices {
	return p.columns
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Skipped returns how many data rows were dropped for missing a required
// value.
func (p *Parser) Skipped() int {
	return p.skipped
}

// Close closes the parser and any underlying file or response body.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.body != nil {
		p.body.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during MAF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("maf parse error at line %d: %s", e.Line, e.Message)
}

// soClassifications maps Sequence Ontology consequence terms to MAF
// variant classifications, so VEP-flavored files ingest under the same
// category vocabulary as standard MAFs. Frameshifts without indel context
// map to the deletion label by convention.
var soClassifications = map[string]string{
	"missense_variant":        oncoprint.ClassificationMissense,
	"stop_gained":             oncoprint.ClassificationNonsense,
	"synonymous_variant":      oncoprint.ClassificationSilent,
	"splice_donor_variant":    oncoprint.ClassificationSpliceSite,
	"splice_acceptor_variant": oncoprint.ClassificationSpliceSite,
	"frameshift_variant":      oncoprint.ClassificationFrameShiftDel,
	"inframe_deletion":        oncoprint.ClassificationInFrameDel,
	"inframe_insertion":       oncoprint.ClassificationInFrameIns,
	"stop_lost":               oncoprint.ClassificationNonstop,
	"start_lost":              oncoprint.ClassificationStartSite,
}

// canonicalClassifications maps the case-folded standard labels back to
// their canonical spelling.
var canonicalClassifications = func() map[string]string {
	m := make(map[string]string, len(oncoprint.StandardClassifications))
	for _, c := range oncoprint.StandardClassifications {
		m[strings.ToLower(c)] = c
	}
	return m
}()

// NormalizeClassification canonicalizes a variant classification: standard
// MAF labels keep their canonical spelling regardless of case, Sequence
// Ontology terms map to the corresponding MAF label, and anything else is
// returned unchanged for the dynamic palette to pick up.
func NormalizeClassification(classification string) string {
	folded := strings.ToLower(strings.TrimSpace(classification))
	if canonical, ok := canonicalClassifications[folded]; ok {
		return canonical
	}
	if mapped, ok := soClassifications[folded]; ok {
		return mapped
	}
	return strings.TrimSpace(classification)
}
