// Package iodb implements access to the source PostGIS database using
// pgxpool. This is an impure I/O package that implements contracts
// defined in pkg/db.
package iodb

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gazdb/pkg/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxOperator implements db.Operator using pgxpool.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// DSN builds a connection URL from the database settings. User and
// password are escaped, so any characters are allowed in them.
func DSN(cfg *config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// Connect establishes a connection pool to PostgreSQL and pings it.
// Extraction issues one query, so the pool is kept small.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	poolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = 2
	poolConfig.MinConns = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	slog.Debug("Connected to source database",
		"host", cfg.Host, "port", cfg.Port, "database", cfg.Database)
	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// FindSchema returns the gazetteer schema matching pattern.
func (p *pgxOperator) FindSchema(
	ctx context.Context,
	pattern string,
) (string, error) {
	if p.pool == nil {
		return "", NotConnectedError()
	}
	return FindSchema(ctx, p.pool, pattern)
}

// FindSchema looks for a schema whose name matches the LIKE pattern.
// Dumps of the gazetteer create a schema with a release suffix, when
// several releases are present the latest name wins. An empty string
// means no schema matched.
func FindSchema(
	ctx context.Context,
	q db.Querier,
	pattern string,
) (string, error) {
	query := `
		SELECT nspname
		FROM pg_namespace
		WHERE nspname LIKE $1
		ORDER BY nspname DESC
		LIMIT 1
	`

	var schema string
	err := q.QueryRow(ctx, query, pattern).Scan(&schema)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", SchemaError(pattern, err)
	}
	return schema, nil
}
