// Package archive keeps a SQLite index of completed analyses so history
// and stats queries never have to scan session files.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Kind distinguishes archived run types
const (
	KindAnalysis   = "analysis"
	KindComparison = "comparison"
)

// Entry is one archived run
type Entry struct {
	ID         int64
	SessionID  string
	Kind       string
	Companies  string // comma-joined for comparisons
	ReportFile string
	Score      float64
	CreatedAt  time.Time
}

// Stats summarizes the archive
type Stats struct {
	TotalRuns    int
	Analyses     int
	Comparisons  int
	Companies    int // distinct company strings analyzed
	AverageScore float64
	Newest       time.Time
}

// Archive wraps the SQLite connection
type Archive struct {
	conn *sql.DB
	path string
}

// Open creates the database if needed and initializes the schema
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	// WAL mode for concurrent reads
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	conn.SetMaxOpenConns(1) // SQLite only supports one writer
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	a := &Archive{conn: conn, path: path}
	if err := a.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return a, nil
}

// Close closes the database connection
func (a *Archive) Close() error {
	return a.conn.Close()
}

// Path returns the database file location
func (a *Archive) Path() string {
	return a.path
}

func (a *Archive) initSchema() error {
	_, err := a.conn.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('analysis', 'comparison')),
			companies TEXT NOT NULL,
			report_file TEXT NOT NULL,
			score REAL NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
		CREATE INDEX IF NOT EXISTS idx_runs_companies ON runs(companies);
	`)
	return err
}

// Record inserts one completed run
func (a *Archive) Record(e Entry) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	res, err := a.conn.Exec(`
		INSERT INTO runs (session_id, kind, companies, report_file, score, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.SessionID, e.Kind, e.Companies, e.ReportFile, e.Score, e.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return res.LastInsertId()
}

// List returns runs newer than since, newest first. A zero since returns
// everything.
func (a *Archive) List(since time.Time) ([]Entry, error) {
	rows, err := a.conn.Query(`
		SELECT id, session_id, kind, companies, report_file, score, created_at
		FROM runs
		WHERE created_at >= ?
		ORDER BY created_at DESC, id DESC
	`, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Kind, &e.Companies, &e.ReportFile, &e.Score, &created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats aggregates the archive contents
func (a *Archive) Stats() (Stats, error) {
	var s Stats
	var newest sql.NullString
	err := a.conn.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE kind = 'analysis'),
		       COUNT(*) FILTER (WHERE kind = 'comparison'),
		       COUNT(DISTINCT companies),
		       COALESCE(AVG(score), 0),
		       MAX(created_at)
		FROM runs
	`).Scan(&s.TotalRuns, &s.Analyses, &s.Comparisons, &s.Companies, &s.AverageScore, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	if newest.Valid {
		if t, err := time.Parse(time.RFC3339, newest.String); err == nil {
			s.Newest = t
		}
	}
	return s, nil
}
