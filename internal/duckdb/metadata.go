package duckdb

import (
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a source file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// WriteProvenance records where an exported dataset came from. Role names
// the input's part in the build ("maf", "clinical", "samples", "genes").
func (s *Store) WriteProvenance(role string, fp FileFingerprint) error {
	_, err := s.db.Exec(`INSERT INTO provenance (role, path, size, mod_time)
		VALUES (?, ?, ?, ?)`, role, fp.Path, fp.Size, fp.ModTime)
	if err != nil {
		return fmt.Errorf("write provenance: %w", err)
	}
	return nil
}

// Provenance reads back the recorded source fingerprints keyed by role.
func (s *Store) Provenance() (map[string]FileFingerprint, error) {
	rows, err := s.db.Query("SELECT role, path, size, mod_time FROM provenance")
	if err != nil {
		return nil, fmt.Errorf("query provenance: %w", err)
	}
	defer rows.Close()

	out := make(map[string]FileFingerprint)
	for rows.Next() {
		var role string
		var fp FileFingerprint
		if err := rows.Scan(&role, &fp.Path, &fp.Size, &fp.ModTime); err != nil {
			return nil, fmt.Errorf("scan provenance: %w", err)
		}
		out[role] = fp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate provenance: %w", err)
	}
	return out, nil
}
