package iobuild

import "context"

// refreshFTS rebuilds the full-text index from places, keeping
// places_fts.rowid equal to places.id, and merges index segments.
func (b *builder) refreshFTS(ctx context.Context) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexError(err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM places_fts",
		`INSERT INTO places_fts (
			rowid, primary_name, alt_names, municipality_name, county_name
		)
		SELECT id, primary_name, alt_names, municipality_name, county_name
		FROM places
		ORDER BY id`,
	} {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return IndexError(err)
		}
	}
	if err = tx.Commit(); err != nil {
		return IndexError(err)
	}

	_, err = b.db.ExecContext(ctx,
		"INSERT INTO places_fts (places_fts) VALUES ('optimize')")
	if err != nil {
		return IndexError(err)
	}
	return nil
}
