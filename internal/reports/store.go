// Package reports persists generated agreement reports in a local SQLite
// database so agreement can be compared across review sessions.
package reports

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/clipworks/reelcut/internal/review"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	total_segments INTEGER NOT NULL,
	human_reviewed INTEGER NOT NULL,
	agreement_rate REAL NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_project ON reports(project_id, created_at);
`

// Store is the local report archive.
type Store struct {
	db *sql.DB
}

// Entry is one archived report row.
type Entry struct {
	ID            int64
	ProjectID     string
	CreatedAt     time.Time
	TotalSegments int
	HumanReviewed int
	AgreementRate float64
}

// Open opens (and if needed creates) the archive database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// Append archives a report and returns its row ID.
func (s *Store) Append(r review.Report) (int64, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO reports (project_id, created_at, total_segments, human_reviewed, agreement_rate, payload)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ProjectID, time.Now().Unix(), r.TotalSegments, r.HumanReviewed, r.AgreementRate, string(payload))
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	return res.LastInsertId()
}

// History returns archived report entries for a project, newest first.
func (s *Store) History(projectID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, project_id, created_at, total_segments, human_reviewed, agreement_rate
		FROM reports
		WHERE project_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.ProjectID, &createdAt, &e.TotalSegments, &e.HumanReviewed, &e.AgreementRate); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get retrieves a full archived report by row ID.
func (s *Store) Get(id int64) (*review.Report, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM reports WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	var r review.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("parse report payload: %w", err)
	}
	return &r, nil
}
