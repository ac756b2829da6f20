package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JonMunkholm/candidates/internal/core"
)

// sqliteTime is fixed width so text order matches time order.
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

// SQLite is a Store backed by a single SQLite connection.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens path, which may be a file name, a file: URI or :memory:.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: empty database path")
	}

	db, err := sql.Open("sqlite", withPragmas(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serializes writers and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

func withPragmas(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
}

// Migrate creates the candidates table if it does not exist.
func (s *SQLite) Migrate(ctx context.Context) error {
	stmts, err := schemaStatements("sqlite.sql")
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

const sqliteColumns = `id, upload_id, name, surname, seniority, years_of_experience, availability, source_file, created_at`

// Create inserts a candidate and returns the stored row.
func (s *SQLite) Create(ctx context.Context, c core.NewCandidate) (*core.Candidate, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO candidates (upload_id, name, surname, seniority, years_of_experience, availability, source_file, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+sqliteColumns,
		c.UploadID, c.Name, c.Surname, string(c.Record.Seniority),
		c.Record.YearsOfExperience, c.Record.Availability, c.SourceFile,
		s.now().UTC().Format(sqliteTime),
	)
	cand, err := scanSQLiteCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("insert candidate: %w", err)
	}
	return cand, nil
}

// List returns all candidates, newest first.
func (s *SQLite) List(ctx context.Context) ([]core.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sqliteColumns+` FROM candidates ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	out := []core.Candidate{}
	for rows.Next() {
		cand, err := scanSQLiteCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, *cand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteCandidate(row scanner) (*core.Candidate, error) {
	var (
		c         core.Candidate
		seniority string
		created   string
	)
	if err := row.Scan(&c.ID, &c.UploadID, &c.Name, &c.Surname, &seniority,
		&c.YearsOfExperience, &c.Availability, &c.SourceFile, &created); err != nil {
		return nil, err
	}
	t, err := time.Parse(sqliteTime, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	c.Seniority = core.Seniority(seniority)
	c.CreatedAt = t
	return &c, nil
}

// Ping checks the connection.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Backend returns "sqlite".
func (s *SQLite) Backend() string { return "sqlite" }
