package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/candidates/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

const candidateColumns = `id, upload_id::text, name, surname, seniority, years_of_experience, availability, source_file, created_at`

// Queries runs candidate statements against a pool or a transaction.
type Queries struct {
	db DBTX
}

// NewQueries wraps db.
func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

// Create inserts a candidate and returns the stored row.
func (q *Queries) Create(ctx context.Context, c core.NewCandidate) (*core.Candidate, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO candidates (upload_id, name, surname, seniority, years_of_experience, availability, source_file)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+candidateColumns,
		c.UploadID, c.Name, c.Surname, string(c.Record.Seniority),
		c.Record.YearsOfExperience, c.Record.Availability, c.SourceFile,
	)
	cand, err := scanCandidate(row)
	if err != nil {
		return nil, fmt.Errorf("insert candidate: %w", err)
	}
	return cand, nil
}

// List returns all candidates, newest first.
func (q *Queries) List(ctx context.Context) ([]core.Candidate, error) {
	rows, err := q.db.Query(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	out := []core.Candidate{}
	for rows.Next() {
		cand, err := scanCandidate(rows)
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

func scanCandidate(row pgx.Row) (*core.Candidate, error) {
	var (
		c         core.Candidate
		seniority string
	)
	if err := row.Scan(&c.ID, &c.UploadID, &c.Name, &c.Surname, &seniority,
		&c.YearsOfExperience, &c.Availability, &c.SourceFile, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Seniority = core.Seniority(seniority)
	return &c, nil
}

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	*Queries
	pool *pgxpool.Pool
}

// OpenPostgres connects a pool and verifies it with a ping.
func OpenPostgres(ctx context.Context, rawURL string, opts PoolOptions) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if opts.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 {
		poolConfig.MinConns = int32(opts.MinConns)
	}
	if opts.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Postgres{Queries: NewQueries(pool), pool: pool}, nil
}

// Migrate creates the candidates table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	stmts, err := schemaStatements("postgres.sql")
	if err != nil {
		return err
	}
	return p.InTx(ctx, func(q *Queries) error {
		for _, stmt := range stmts {
			if _, err := q.db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}
		}
		return nil
	})
}

// InTx runs fn in a transaction, committing if it returns nil.
func (p *Postgres) InTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewQueries(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// Backend returns "postgres".
func (p *Postgres) Backend() string { return "postgres" }
