// Package duckdb provides the queryable export store for oncoprint
// datasets: mutation events, per-gene statistics, split-by sample groups,
// and source-file provenance.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding exported oncoprint data.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS mutations (
			gene VARCHAR,
			sample VARCHAR,
			classification VARCHAR,
			protein_change VARCHAR,
			chrom VARCHAR,
			pos BIGINT
		)`,
		`CREATE TABLE IF NOT EXISTS gene_stats (
			gene VARCHAR PRIMARY KEY,
			mutated_samples INTEGER,
			events INTEGER,
			frequency DOUBLE
		)`,
		`CREATE TABLE IF NOT EXISTS sample_groups (
			label VARCHAR,
			sample VARCHAR,
			position INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS provenance (
			role VARCHAR,
			path VARCHAR,
			size BIGINT,
			mod_time TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
