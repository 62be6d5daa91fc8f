package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jwulff/medscribe/internal/transcript"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	advice TEXT NOT NULL DEFAULT '',
	operation TEXT NOT NULL DEFAULT '',
	postOperative TEXT NOT NULL DEFAULT '',
	dischargeSummary TEXT NOT NULL DEFAULT '',
	createdAt REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS reports_createdAt ON reports(createdAt);
`

// Sections is the source of section text for a new report.
type Sections interface {
	Get(transcript.Section) string
}

// Store provides access to the report archive.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultDBPath returns the default archive path.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "medscribe", "reports.sqlite")
}

// Open opens (creating if needed) the archive at path with WAL enabled.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}

	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveReport archives the current section text under a new ID.
func (s *Store) SaveReport(title string, sections Sections) (Report, error) {
	r := Report{
		ID:               uuid.NewString(),
		Title:            title,
		Advice:           sections.Get(transcript.Advice),
		Operation:        sections.Get(transcript.Operation),
		PostOperative:    sections.Get(transcript.PostOperative),
		DischargeSummary: sections.Get(transcript.DischargeSummary),
		CreatedAt:        s.now(),
	}

	_, err := s.db.Exec(`
		INSERT INTO reports (id, title, advice, operation, postOperative, dischargeSummary, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Title, r.Advice, r.Operation, r.PostOperative, r.DischargeSummary, unixFromTime(r.CreatedAt))
	if err != nil {
		return Report{}, fmt.Errorf("insert report: %w", err)
	}
	return r, nil
}

// Reports returns the most recent reports, newest first.
func (s *Store) Reports(limit int) ([]Report, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, title, advice, operation, postOperative, dischargeSummary, createdAt
		FROM reports
		ORDER BY createdAt DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Report returns the report with the given ID, or nil if there is none.
func (s *Store) Report(id string) (*Report, error) {
	row := s.db.QueryRow(`
		SELECT id, title, advice, operation, postOperative, dischargeSummary, createdAt
		FROM reports
		WHERE id = ?
	`, id)
	return scanOne(row)
}

// LatestReport returns the most recently archived report, if any.
func (s *Store) LatestReport() (*Report, error) {
	row := s.db.QueryRow(`
		SELECT id, title, advice, operation, postOperative, dischargeSummary, createdAt
		FROM reports
		ORDER BY createdAt DESC
		LIMIT 1
	`)
	return scanOne(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (Report, error) {
	var r Report
	var createdAt float64
	if err := row.Scan(&r.ID, &r.Title, &r.Advice, &r.Operation,
		&r.PostOperative, &r.DischargeSummary, &createdAt); err != nil {
		return Report{}, fmt.Errorf("scan report: %w", err)
	}
	r.CreatedAt = timeFromUnix(createdAt)
	return r, nil
}

func scanOne(row *sql.Row) (*Report, error) {
	r, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func unixFromTime(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func timeFromUnix(ts float64) time.Time {
	sec := int64(ts)
	nsec := int64((ts - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}
