package folio

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/folio/content"
)

// ScanRecord is a persisted content scan report.
type ScanRecord struct {
	ID        int64
	Kind      string
	Dir       string
	Files     int
	Items     int
	ScannedAt time.Time
	Issues    []IssueRecord
}

// OK reports whether the scan dropped no files.
func (r ScanRecord) OK() bool {
	return len(r.Issues) == 0
}

// IssueRecord is a persisted reason a file was dropped from a scan.
type IssueRecord struct {
	File    string
	Slug    string
	Message string
}

// Store wraps a SQLite database holding the history of content scans.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the dashboard read while a scan is being written; writers wait
	// on busy_timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    kind TEXT NOT NULL,
    dir TEXT NOT NULL,
    files INTEGER NOT NULL,
    items INTEGER NOT NULL,
    scanned_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS scans_kind_id ON scans (kind, id);
CREATE TABLE IF NOT EXISTS issues (
    scan_id INTEGER NOT NULL,
    file TEXT NOT NULL,
    slug TEXT NOT NULL,
    message TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS issues_scan ON issues (scan_id);
`)
	return err
}

// SaveReport stores rep and its issues, returning the new scan ID.
func (s *Store) SaveReport(rep content.Report) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO scans (kind, dir, files, items, scanned_at) VALUES (?, ?, ?, ?, ?)`,
		string(rep.Kind), rep.Dir, rep.Files, rep.Items, rep.ScannedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("insert scan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, is := range rep.Issues {
		if _, err := tx.Exec(`INSERT INTO issues (scan_id, file, slug, message) VALUES (?, ?, ?, ?)`,
			id, is.File, is.Slug, is.Message()); err != nil {
			return 0, fmt.Errorf("insert issue: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// RecentScans returns up to limit scans, newest first, with their issues.
func (s *Store) RecentScans(limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT id, kind, dir, files, items, scanned_at FROM scans ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []ScanRecord
	for rows.Next() {
		var r ScanRecord
		var scannedAt string
		if err := rows.Scan(&r.ID, &r.Kind, &r.Dir, &r.Files, &r.Items, &scannedAt); err != nil {
			return nil, err
		}
		r.ScannedAt, _ = time.Parse(time.RFC3339Nano, scannedAt)
		scans = append(scans, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range scans {
		issues, err := s.Issues(scans[i].ID)
		if err != nil {
			return nil, err
		}
		scans[i].Issues = issues
	}
	return scans, nil
}

// Issues returns the issues recorded for a scan, in file order.
func (s *Store) Issues(scanID int64) ([]IssueRecord, error) {
	rows, err := s.db.Query(`SELECT file, slug, message FROM issues WHERE scan_id = ? ORDER BY file`, scanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []IssueRecord
	for rows.Next() {
		var is IssueRecord
		if err := rows.Scan(&is.File, &is.Slug, &is.Message); err != nil {
			return nil, err
		}
		issues = append(issues, is)
	}
	return issues, rows.Err()
}

// Prune keeps the newest keep scans of each kind and deletes the rest,
// returning how many scans were removed.
func (s *Store) Prune(keep int) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
DELETE FROM scans WHERE id IN (
    SELECT id FROM (
        SELECT id, ROW_NUMBER() OVER (PARTITION BY kind ORDER BY id DESC) AS rn FROM scans
    ) WHERE rn > ?
)`, keep)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM issues WHERE scan_id NOT IN (SELECT id FROM scans)`); err != nil {
		return 0, err
	}
	return n, tx.Commit()
}
