package checkpoint

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLite is a Store backed by a single-table SQLite database. It is the
// pluggable key-value alternative to the filesystem backend.
type SQLite struct {
	db    *sql.DB
	path  string
	scope string
}

// Ensure SQLite implements the interface.
var _ Store = (*SQLite)(nil)

// DefaultDBPath returns the conventional database location:
// ~/.ghexport/data/checkpoints.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ghexport", "data", "checkpoints.db"), nil
}

// NewSQLite opens (creating if necessary) a SQLite store at path.
// Entries are scoped by repository so one database serves any number of
// exports.
func NewSQLite(path, owner, repo string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLite{db: db, path: path}
	if err := s.init(owner, repo); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) init(owner, repo string) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS checkpoints (
			repo       TEXT NOT NULL,
			kind       TEXT NOT NULL,
			id         TEXT NOT NULL,
			doc        BLOB NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (repo, kind, id)
		)
	`)
	if err != nil {
		return fmt.Errorf("creating checkpoints table: %w", err)
	}
	s.scope = owner + "/" + repo
	return nil
}

// Get returns the stored document for (kind, id) within this
// repository's scope.
func (s *SQLite) Get(kind Kind, id string) (json.RawMessage, bool, error) {
	var doc []byte
	err := s.db.QueryRow(
		`SELECT doc FROM checkpoints WHERE repo = ? AND kind = ? AND id = ?`,
		s.scope, string(kind), id,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading checkpoint: %w", err)
	}
	return doc, true, nil
}

// Put upserts the document under (kind, id).
func (s *SQLite) Put(kind Kind, id string, doc json.RawMessage) error {
	_, err := s.db.Exec(
		`INSERT INTO checkpoints (repo, kind, id, doc, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (repo, kind, id) DO UPDATE SET doc = excluded.doc, created_at = excluded.created_at`,
		s.scope, string(kind), id, []byte(doc), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return nil
}

// Clear removes every entry in this repository's scope.
func (s *SQLite) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM checkpoints WHERE repo = ?`, s.scope); err != nil {
		return fmt.Errorf("clearing checkpoints: %w", err)
	}
	return nil
}

// Stats reports entry count and total document size for this
// repository's scope.
func (s *SQLite) Stats() (Stats, error) {
	stats := Stats{Location: s.path}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(doc)), 0) FROM checkpoints WHERE repo = ?`,
		s.scope,
	).Scan(&stats.Entries, &stats.TotalBytes)
	if err != nil {
		return stats, fmt.Errorf("reading checkpoint stats: %w", err)
	}
	return stats, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
