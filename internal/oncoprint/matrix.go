package oncoprint

import "fmt"

// Cell holds the mutation events displayed at one gene/sample position.
// Zero events means the cell is blank, one event renders whole, two events
// render as a split cell, and three or more events are collapsed at build
// time into a single synthetic Multi_Hit event.
type Cell struct {
	Events []Mutation
}

// Empty reports whether the cell holds no events.
func (c Cell) Empty() bool {
	return len(c.Events) == 0
}

// MultiHit reports whether the cell was collapsed from three or more events.
func (c Cell) MultiHit() bool {
	return len(c.Events) == 1 && c.Events[0].Classification == ClassificationMultiHit
}

// Matrix is the dense per-gene, per-sample cell grid backing an oncoprint
// drawing. Axis order mirrors the dataset the matrix was built from.
type Matrix struct {
	Genes   []string
	Samples []string

	cells map[string]map[string]Cell
}

// Cell returns the cell at a gene/sample position. Unknown positions read
// as empty cells.
func (m *Matrix) Cell(gene, sample string) Cell {
	return m.cells[gene][sample]
}

// NonEmptyCells counts the cells holding at least one event.
func (m *Matrix) NonEmptyCells() int {
	n := 0
	for _, row := range m.cells {
		for _, cell := range row {
			if !cell.Empty() {
				n++
			}
		}
	}
	return n
}

// BuildMatrix folds the dataset's mutation list into the cell grid. Every
// gene/sample pair starts as an empty cell; one event is stored as-is, two
// are kept as a pair in input order, and three or more collapse into a
// single Multi_Hit event whose protein-change slot notes the event count.
// The one/two/many rule is fixed, not configurable.
func BuildMatrix(d *Dataset) *Matrix {
	cells := make(map[string]map[string]Cell, len(d.Genes))
	for _, g := range d.Genes {
		row := make(map[string]Cell, len(d.Samples))
		for _, s := range d.Samples {
			row[s] = Cell{}
		}
		cells[g] = row
	}

	for _, m := range d.Mutations {
		row, ok := cells[m.Gene]
		if !ok {
			continue
		}
		cell, ok := row[m.Sample]
		if !ok {
			continue
		}
		cell.Events = append(cell.Events, m)
		row[m.Sample] = cell
	}

	for _, g := range d.Genes {
		row := cells[g]
		for _, s := range d.Samples {
			cell := row[s]
			if len(cell.Events) < 3 {
				continue
			}
			row[s] = Cell{Events: []Mutation{{
				Gene:           g,
				Sample:         s,
				Classification: ClassificationMultiHit,
				ProteinChange:  fmt.Sprintf("%d mutations", len(cell.Events)),
			}}}
		}
	}

	return &Matrix{
		Genes:   append([]string(nil), d.Genes...),
		Samples: append([]string(nil), d.Samples...),
		cells:   cells,
	}
}
