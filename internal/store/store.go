// Package store persists candidates in PostgreSQL or SQLite.
//
// Both backends implement [core.Repository] and create their own table on
// [Store.Migrate] from an embedded schema. [Open] picks the backend from the
// connection URL.
package store

import (
	"context"
	"embed"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/candidates/internal/core"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Store is a Repository with lifecycle methods.
type Store interface {
	core.Repository
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
	Backend() string
}

// PoolOptions configures the connection pool. Zero values keep driver defaults.
type PoolOptions struct {
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Open connects to the database named by rawURL:
//
//	postgres://... or postgresql://...  PostgreSQL
//	sqlite://path, file:..., :memory:   SQLite
func Open(ctx context.Context, rawURL string, opts PoolOptions) (Store, error) {
	switch {
	case strings.HasPrefix(rawURL, "postgres://"), strings.HasPrefix(rawURL, "postgresql://"):
		return OpenPostgres(ctx, rawURL, opts)
	case strings.HasPrefix(rawURL, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(rawURL, "sqlite://"))
	case strings.HasPrefix(rawURL, "file:"), rawURL == ":memory:":
		return OpenSQLite(ctx, rawURL)
	default:
		return nil, fmt.Errorf("unsupported database url %q: want postgres://, sqlite://, file: or :memory:", Redact(rawURL))
	}
}

// Redact masks the password of a connection URL for logging.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	return u.Redacted()
}

// schemaStatements splits an embedded schema file into statements.
func schemaStatements(name string) ([]string, error) {
	data, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", name, err)
	}
	var stmts []string
	for _, s := range strings.Split(string(data), ";") {
		if s = strings.TrimSpace(s); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts, nil
}
