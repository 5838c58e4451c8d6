package output

import (
	"encoding/json"
	"io"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

// jsonDataset is the serialized shape of a frozen dataset snapshot.
type jsonDataset struct {
	Genes          []string                `json:"genes"`
	Samples        []string                `json:"samples"`
	Mutations      []jsonMutation          `json:"mutations"`
	GeneCounts     map[string]int          `json:"geneCounts"`
	SampleCounts   map[string]int          `json:"sampleCounts"`
	PercentageBase int                     `json:"percentageBase"`
	Frequencies    map[string]float64      `json:"frequencies"`
	Metadata       *jsonMetadata           `json:"metadata,omitempty"`
	Cohort         *oncoprint.CohortInfo   `json:"cohort,omitempty"`
	SampleGroups   []oncoprint.SampleGroup `json:"sampleGroups,omitempty"`
}

type jsonMutation struct {
	Gene           string `json:"gene"`
	Sample         string `json:"sample"`
	Classification string `json:"classification"`
	ProteinChange  string `json:"proteinChange,omitempty"`
	Chrom          string `json:"chrom,omitempty"`
	Pos            int64  `json:"pos,omitempty"`
}

type jsonMetadata struct {
	Fields []string                       `json:"fields"`
	Types  map[string]oncoprint.FieldType `json:"types"`
	Values map[string]map[string]string   `json:"values"`
}

// JSONWriter serializes frozen dataset snapshots for downstream consumers.
type JSONWriter struct {
	enc *json.Encoder
}

// NewJSONWriter creates an indented JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONWriter{enc: enc}
}

// Write serializes a snapshot of the dataset. The receiver dataset is not
// touched; frequencies are computed on the way out so consumers need no
// percentage-base arithmetic of their own.
func (jw *JSONWriter) Write(d *oncoprint.Dataset) error {
	snap := d.Snapshot()

	out := jsonDataset{
		Genes:          snap.Genes,
		Samples:        snap.Samples,
		Mutations:      make([]jsonMutation, len(snap.Mutations)),
		GeneCounts:     snap.GeneCounts,
		SampleCounts:   snap.SampleCounts,
		PercentageBase: snap.PercentageBase,
		Frequencies:    oncoprint.Frequencies(snap),
		Cohort:         snap.Cohort,
		SampleGroups:   snap.SampleGroups,
	}
	for i, m := range snap.Mutations {
		out.Mutations[i] = jsonMutation{
			Gene:           m.Gene,
			Sample:         m.Sample,
			Classification: m.Classification,
			ProteinChange:  m.ProteinChange,
			Chrom:          m.Chrom,
			Pos:            m.Pos,
		}
	}
	if snap.Metadata != nil {
		out.Metadata = &jsonMetadata{
			Fields: snap.Metadata.Fields,
			Types:  snap.Metadata.Types,
			Values: snap.Metadata.Values,
		}
	}

	return jw.enc.Encode(out)
}
