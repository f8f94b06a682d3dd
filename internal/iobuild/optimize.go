package iobuild

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// optimize refreshes planner statistics, compacts the file and folds
// the WAL back into the main database. VACUUM cannot run inside a
// transaction.
func (b *builder) optimize(ctx context.Context) error {
	for _, q := range []string{
		"ANALYZE",
		"VACUUM",
		"PRAGMA wal_checkpoint(TRUNCATE)",
	} {
		timeStart := time.Now()
		if _, err := b.db.ExecContext(ctx, q); err != nil {
			return OptimizeError(q, err)
		}
		slog.Info("Optimization step completed",
			"statement", q, "duration", time.Since(timeStart).String())
	}
	return nil
}
