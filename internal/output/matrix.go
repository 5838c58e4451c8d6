// Package output provides oncoprint export formatters: the TSV cell grid,
// the tabular summary report, and the frozen JSON snapshot.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

// MatrixWriter writes the oncoprint cell grid as tab-delimited text: one
// header row of sample identifiers, one row per gene, cells holding the
// cell's classifications joined by ";".
type MatrixWriter struct {
	w       *bufio.Writer
	samples []string
}

// NewMatrixWriter creates a grid writer over the given ordered sample axis.
func NewMatrixWriter(w io.Writer, samples []string) *MatrixWriter {
	return &MatrixWriter{
		w:       bufio.NewWriter(w),
		samples: samples,
	}
}

// WriteGroupRow writes a "#Group" row labelling each sample column with its
// split-by group. Call before WriteHeader; a dataset without groups needs no
// group row.
func (mw *MatrixWriter) WriteGroupRow(groups []oncoprint.SampleGroup) error {
	bySample := make(map[string]string)
	for _, g := range groups {
		for _, s := range g.Samples {
			bySample[s] = g.Label
		}
	}
	cells := make([]string, 0, len(mw.samples)+1)
	cells = append(cells, "#Group")
	for _, s := range mw.samples {
		cells = append(cells, bySample[s])
	}
	_, err := mw.w.WriteString(strings.Join(cells, "\t") + "\n")
	return err
}

// WriteHeader writes the sample-identifier header row.
func (mw *MatrixWriter) WriteHeader() error {
	_, err := mw.w.WriteString("Gene\t" + strings.Join(mw.samples, "\t") + "\n")
	return err
}

// WriteGene writes one gene's row of the grid. Empty cells stay blank.
func (mw *MatrixWriter) WriteGene(gene string, m *oncoprint.Matrix) error {
	cells := make([]string, 0, len(mw.samples)+1)
	cells = append(cells, gene)
	for _, s := range mw.samples {
		cell := m.Cell(gene, s)
		classifications := make([]string, len(cell.Events))
		for i, e := range cell.Events {
			classifications[i] = e.Classification
		}
		cells = append(cells, strings.Join(classifications, ";"))
	}
	_, err := mw.w.WriteString(strings.Join(cells, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (mw *MatrixWriter) Flush() error {
	return mw.w.Flush()
}
