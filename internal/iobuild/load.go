package iobuild

import (
	"context"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gazdb/internal/iocsv"
	"github.com/gnames/gazdb/pkg/lifecycle"
	"github.com/gnames/gazdb/pkg/place"
)

const insertSQL = `
INSERT INTO places (
	ssr_id, primary_name, alt_names, lat, lon,
	place_class, municipality_code, municipality_name, county_name,
	population, is_county_seat, is_municipality_seat, importance_score
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// load inserts all valid rows of the interchange file in one
// transaction. It returns load statistics and the ssr_ids of inserted
// rows in insertion order.
func (b *builder) load(
	ctx context.Context,
) (*lifecycle.LoadStats, []string, error) {
	var stats lifecycle.LoadStats

	places, err := iocsv.ReadAll(b.cfg.Paths.CSV, func(err error) {
		stats.Read++
		stats.Skipped++
		slog.Warn("Skipping interchange row", "error", err)
	})
	if err != nil {
		return nil, nil, err
	}
	stats.Read += len(places)

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, LoadError(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return nil, nil, LoadError(err)
	}
	defer stmt.Close()

	bar := pb.Full.Start(len(places))
	bar.Set("prefix", "Loading places: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	ids := make([]string, 0, len(places))
	for i := range places {
		p := places[i]
		_, err = stmt.ExecContext(ctx, insertArgs(p)...)
		bar.Increment()
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, LoadError(ctx.Err())
			}
			stats.Skipped++
			slog.Warn("Cannot insert place",
				"ssr_id", p.SSRID, "name", p.Name, "error", err)
			continue
		}
		stats.Inserted++
		ids = append(ids, p.SSRID)
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, LoadError(err)
	}

	slog.Info("Loaded places",
		"read", stats.Read,
		"inserted", stats.Inserted,
		"skipped", stats.Skipped,
	)
	return &stats, ids, nil
}

func insertArgs(p place.Place) []any {
	return []any{
		p.SSRID,
		p.Name,
		nullString(p.AltNames),
		p.Lat,
		p.Lon,
		string(p.Class),
		nullString(p.MunicipalityCode),
		nullString(p.MunicipalityName),
		nullString(p.CountyName),
		nullInt(p.Population),
		boolInt(p.IsCountySeat),
		boolInt(p.IsMunicipalitySeat),
		p.Importance,
	}
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullInt(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func humanInt(i int) string {
	return humanize.Comma(int64(i))
}
