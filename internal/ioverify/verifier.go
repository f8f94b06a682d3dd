// Package ioverify checks a built search database. It implements
// lifecycle.Verifier on top of modernc.org/sqlite.
package ioverify

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gazdb/pkg/lifecycle"
	"github.com/gnames/gn"
	_ "modernc.org/sqlite"
)

// Names of the verification checks.
const (
	CheckPlaces    = "places"
	CheckIndex     = "fts_parity"
	CheckExactName = "exact_name"
	CheckDiacritic = "diacritic"
	CheckFTSQuery  = "fts_query"
	CheckSize      = "file_size"
)

type verifier struct {
	cfg *config.Config
}

// New creates a Verifier for the database at cfg.Paths.DB.
func New(cfg *config.Config) lifecycle.Verifier {
	return &verifier{cfg: cfg}
}

// Verify runs consistency and smoke checks. The database passes when
// it has places, the full-text index has one entry per place and the
// file is below the size ceiling. Smoke queries count as failures only
// with verify.require_smoke. The file is never modified.
func (v *verifier) Verify(ctx context.Context) (*lifecycle.Report, error) {
	path := v.cfg.Paths.DB
	info, err := os.Stat(path)
	if err != nil {
		return nil, QueryError(path, "stat", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, QueryError(path, "open", err)
	}
	defer db.Close()

	res := lifecycle.Report{SizeBytes: info.Size()}
	vc := v.cfg.Verify

	res.PlacesCount, err = count(ctx, db, "SELECT COUNT(*) FROM places")
	if err != nil {
		return nil, QueryError(path, CheckPlaces, err)
	}
	res.FTSCount, err = count(ctx, db, "SELECT COUNT(*) FROM places_fts")
	if err != nil {
		return nil, QueryError(path, CheckIndex, err)
	}

	res.Checks = append(res.Checks,
		lifecycle.Check{
			Name:   CheckPlaces,
			Count:  res.PlacesCount,
			Passed: res.PlacesCount > 0,
			Fatal:  true,
		},
		lifecycle.Check{
			Name:   CheckIndex,
			Count:  res.FTSCount,
			Passed: res.FTSCount == res.PlacesCount,
			Fatal:  true,
		},
	)

	smoke := []struct {
		name  string
		query string
		arg   string
	}{
		{
			CheckExactName,
			"SELECT COUNT(*) FROM places WHERE LOWER(primary_name) = LOWER(?)",
			vc.ExactName,
		},
		{
			CheckDiacritic,
			"SELECT COUNT(*) FROM places WHERE primary_name LIKE ?",
			vc.DiacriticPattern,
		},
		{
			CheckFTSQuery,
			"SELECT COUNT(*) FROM places_fts WHERE places_fts MATCH ?",
			vc.FTSQuery,
		},
	}
	for _, s := range smoke {
		n, err := count(ctx, db, s.query, s.arg)
		if err != nil {
			return nil, QueryError(path, s.name, err)
		}
		res.Checks = append(res.Checks, lifecycle.Check{
			Name:   s.name,
			Count:  n,
			Passed: n > 0,
			Fatal:  vc.RequireSmoke,
		})
	}

	maxBytes := int64(vc.MaxSizeMB) * 1024 * 1024
	res.Checks = append(res.Checks, lifecycle.Check{
		Name:   CheckSize,
		Count:  res.SizeBytes,
		Passed: res.SizeBytes < maxBytes,
		Fatal:  true,
	})

	res.Passed = true
	for _, c := range res.Checks {
		if c.Fatal && !c.Passed {
			res.Passed = false
		}
	}

	report(&res)
	if !res.Passed {
		return &res, FailedError(path, &res)
	}
	return &res, nil
}

func count(
	ctx context.Context,
	db *sql.DB,
	query string,
	args ...any,
) (int64, error) {
	var res int64
	err := db.QueryRowContext(ctx, query, args...).Scan(&res)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return res, err
}

func report(r *lifecycle.Report) {
	for _, c := range r.Checks {
		val := humanize.Comma(c.Count)
		if c.Name == CheckSize {
			val = humanize.Bytes(uint64(c.Count))
		}
		slog.Info("Verification check",
			"check", c.Name, "count", c.Count, "passed", c.Passed)
		switch {
		case c.Passed:
			gn.Info("%s: <em>%s</em>", c.Name, val)
		case c.Fatal:
			gn.Warn("%s: <warn>%s</warn> (failed)", c.Name, val)
		default:
			gn.Warn("%s: <warn>%s</warn> (no results)", c.Name, val)
		}
	}
}
