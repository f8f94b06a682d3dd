// Package db declares the contract for access to the source PostGIS
// database. Implementations live in internal/iodb.
package db

import (
	"context"

	"github.com/gnames/gazdb/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages the connection pool to the source database and
// answers the few questions the pipeline asks about its state.
type Operator interface {
	// Connect establishes a connection pool and pings the server.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close releases all connections. It is safe to call on an operator
	// that never connected.
	Close() error

	// Pool returns the underlying pool, or nil before Connect.
	Pool() *pgxpool.Pool

	// FindSchema returns the first schema whose name matches the LIKE
	// pattern. It returns an empty string when nothing matches.
	FindSchema(ctx context.Context, pattern string) (string, error)
}

// Querier is the read-only subset of a pgx pool used by extraction.
// Both *pgxpool.Pool and pgxmock pools satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
