package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

// GeneStat is one exported per-gene statistics row.
type GeneStat struct {
	Gene           string
	MutatedSamples int
	Events         int
	Frequency      float64
}

// WriteDataset batch-inserts a dataset's mutation events, per-gene
// statistics, and split-by groups using the Appender API. Previously
// exported data is replaced, not appended to.
func (s *Store) WriteDataset(d *oncoprint.Dataset) error {
	for _, table := range []string{"mutations", "gene_stats", "sample_groups"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := s.appendMutations(d.Mutations); err != nil {
		return err
	}
	if err := s.appendGeneStats(d); err != nil {
		return err
	}
	return s.appendSampleGroups(d.SampleGroups)
}

// appender opens a DuckDB appender for a table over a raw driver
// connection.
func (s *Store) appender(table string, fn func(*goduckdb.Appender) error) error {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		return fmt.Errorf("create %s appender: %w", table, err)
	}
	defer appender.Close()

	if err := fn(appender); err != nil {
		return err
	}
	return appender.Flush()
}

func (s *Store) appendMutations(mutations []oncoprint.Mutation) error {
	if len(mutations) == 0 {
		return nil
	}
	return s.appender("mutations", func(a *goduckdb.Appender) error {
		for _, m := range mutations {
			if err := a.AppendRow(
				m.Gene, m.Sample, m.Classification, m.ProteinChange, m.Chrom, m.Pos,
			); err != nil {
				return fmt.Errorf("append mutation: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) appendGeneStats(d *oncoprint.Dataset) error {
	if len(d.Genes) == 0 {
		return nil
	}
	carriers := d.DistinctMutatedSamples()
	freqs := oncoprint.Frequencies(d)
	return s.appender("gene_stats", func(a *goduckdb.Appender) error {
		for _, g := range d.Genes {
			if err := a.AppendRow(
				g, int32(carriers[g]), int32(d.GeneCounts[g]), freqs[g],
			); err != nil {
				return fmt.Errorf("append gene stat: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) appendSampleGroups(groups []oncoprint.SampleGroup) error {
	if len(groups) == 0 {
		return nil
	}
	return s.appender("sample_groups", func(a *goduckdb.Appender) error {
		for _, g := range groups {
			for i, sample := range g.Samples {
				if err := a.AppendRow(g.Label, sample, int32(g.StartIndex+i)); err != nil {
					return fmt.Errorf("append sample group: %w", err)
				}
			}
		}
		return nil
	})
}

// TopGenes returns the highest-frequency gene statistics rows, mutated
// sample count descending with the gene symbol as tie break.
func (s *Store) TopGenes(limit int) ([]GeneStat, error) {
	rows, err := s.db.Query(`SELECT gene, mutated_samples, events, frequency
		FROM gene_stats
		ORDER BY mutated_samples DESC, gene
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top genes: %w", err)
	}
	defer rows.Close()

	var stats []GeneStat
	for rows.Next() {
		var g GeneStat
		if err := rows.Scan(&g.Gene, &g.MutatedSamples, &g.Events, &g.Frequency); err != nil {
			return nil, fmt.Errorf("scan gene stat: %w", err)
		}
		stats = append(stats, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gene stats: %w", err)
	}
	return stats, nil
}

// EventsForGene returns every exported mutation event for a gene.
func (s *Store) EventsForGene(gene string) ([]oncoprint.Mutation, error) {
	rows, err := s.db.Query(`SELECT gene, sample, classification, protein_change, chrom, pos
		FROM mutations
		WHERE gene = ?
		ORDER BY sample, pos`, gene)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var mutations []oncoprint.Mutation
	for rows.Next() {
		var m oncoprint.Mutation
		if err := rows.Scan(&m.Gene, &m.Sample, &m.Classification, &m.ProteinChange, &m.Chrom, &m.Pos); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		mutations = append(mutations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return mutations, nil
}

// CountMutations returns how many mutation events are exported.
func (s *Store) CountMutations() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT count(*) FROM mutations").Scan(&n); err != nil {
		return 0, fmt.Errorf("count mutations: %w", err)
	}
	return n, nil
}

// SampleGroups reads back the exported split-by groups in axis order.
func (s *Store) SampleGroups() ([]oncoprint.SampleGroup, error) {
	rows, err := s.db.Query(`SELECT label, sample, position
		FROM sample_groups
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query sample groups: %w", err)
	}
	defer rows.Close()

	var groups []oncoprint.SampleGroup
	for rows.Next() {
		var label, sample string
		var position int
		if err := rows.Scan(&label, &sample, &position); err != nil {
			return nil, fmt.Errorf("scan sample group: %w", err)
		}
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, oncoprint.SampleGroup{Label: label, StartIndex: position})
		}
		g := &groups[len(groups)-1]
		g.Samples = append(g.Samples, sample)
		g.Count = len(g.Samples)
		g.EndIndex = position
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sample groups: %w", err)
	}
	return groups, nil
}
