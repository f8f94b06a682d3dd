package iobuild_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gazdb/internal/iobuild"
	"github.com/gnames/gazdb/internal/iotesting"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setup(t *testing.T) *config.Config {
	t.Helper()
	cfg := iotesting.TempConfig(t)
	csv := iotesting.WriteCSV(t, filepath.Dir(cfg.Paths.CSV), iotesting.SamplePlaces())
	cfg.Update([]config.Option{config.OptPathsCSV(csv)})
	return cfg
}

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, q string, args ...any) int {
	t.Helper()
	var res int
	require.NoError(t, db.QueryRow(q, args...).Scan(&res))
	return res
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	cfg := setup(t)
	total := len(iotesting.SamplePlaces())

	stats, err := iobuild.New(cfg).Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, total, stats.Read)
	assert.Equal(t, total, stats.Inserted)
	assert.Equal(t, 0, stats.Skipped)

	db := openDB(t, cfg.Paths.DB)
	assert.Equal(t, total, count(t, db, "SELECT COUNT(*) FROM places"))
	assert.Equal(t, total, count(t, db, "SELECT COUNT(*) FROM places_fts"))

	// rowids of the index follow places.id
	assert.Equal(t, 0, count(t, db, `
		SELECT COUNT(*) FROM places p
		LEFT JOIN places_fts f ON f.rowid = p.id
		WHERE f.primary_name IS NULL OR f.primary_name != p.primary_name`))

	assert.Equal(t, 2, count(t, db,
		"SELECT COUNT(*) FROM places_fts WHERE places_fts MATCH ?", "berg*"))
	assert.Equal(t, 1, count(t, db,
		"SELECT COUNT(*) FROM places WHERE LOWER(primary_name) = LOWER(?)", "oslo"))

	var alt sql.NullString
	var pop sql.NullInt64
	require.NoError(t, db.QueryRow(
		"SELECT alt_names, population FROM places WHERE ssr_id = ?", "ssr-1",
	).Scan(&alt, &pop))
	assert.False(t, alt.Valid)
	assert.False(t, pop.Valid)

	var code sql.NullString
	require.NoError(t, db.QueryRow(
		"SELECT municipality_code FROM places WHERE ssr_id = ?", "ssr-6",
	).Scan(&code))
	assert.False(t, code.Valid)

	meta, err := iobuild.ReadMetadata(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "6", meta[iobuild.MetaRecordCount])
	assert.Equal(t, "6", meta[iobuild.MetaRecordsRead])
	assert.Equal(t, "0", meta[iobuild.MetaRecordsSkipped])
	assert.Equal(t, "EPSG:25833", meta[iobuild.MetaProjectionSource])
	assert.Equal(t, "EPSG:4326", meta[iobuild.MetaProjectionTarget])
	assert.NotEmpty(t, meta[iobuild.MetaBuildDate])
	assert.NotEmpty(t, meta[iobuild.MetaBuildTimestamp])
	assert.NotEmpty(t, meta[iobuild.MetaBuildID])
	assert.Contains(t, meta[iobuild.MetaGenerator], "gazdb")
	assert.Equal(t,
		iobuild.DatasetID([]string{"ssr-1", "ssr-2", "ssr-3", "ssr-4", "ssr-5", "ssr-6"}),
		meta[iobuild.MetaDatasetID])
}

func TestBuildSkipsBadRows(t *testing.T) {
	ctx := context.Background()
	cfg := setup(t)
	total := len(iotesting.SamplePlaces()) + 2
	iotesting.AppendCSVLine(t, cfg.Paths.CSV,
		"bad-lat,Nordpolen,,north,10.000000,town,,,,,0,0,8")
	iotesting.AppendCSVLine(t, cfg.Paths.CSV,
		"bad-score,Overalt,,60.000000,10.000000,town,,,,,0,0,42")

	stats, err := iobuild.New(cfg).Build(ctx)
	require.NoError(t, err)
	assert.Equal(t, total, stats.Read)
	assert.Equal(t, total-2, stats.Inserted)
	assert.Equal(t, 2, stats.Skipped)

	db := openDB(t, cfg.Paths.DB)
	assert.Equal(t, total-2, count(t, db, "SELECT COUNT(*) FROM places"))
	assert.Equal(t, total-2, count(t, db, "SELECT COUNT(*) FROM places_fts"))
}

func TestBuildIsRepeatable(t *testing.T) {
	ctx := context.Background()
	cfg := setup(t)

	metas := make([]map[string]string, 2)
	for i := range metas {
		_, err := iobuild.New(cfg).Build(ctx)
		require.NoError(t, err)
		db := openDB(t, cfg.Paths.DB)
		assert.Equal(t, 6, count(t, db, "SELECT COUNT(*) FROM places"))
		metas[i], err = iobuild.ReadMetadata(ctx, db)
		require.NoError(t, err)
		db.Close()
	}

	assert.Equal(t, metas[0][iobuild.MetaDatasetID], metas[1][iobuild.MetaDatasetID])
	assert.NotEqual(t, metas[0][iobuild.MetaBuildID], metas[1][iobuild.MetaBuildID])
}

func TestBuildRemovesStaleFiles(t *testing.T) {
	cfg := setup(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(cfg.Paths.DB), 0755))
	require.NoError(t, os.WriteFile(cfg.Paths.DB, []byte("not a database"), 0644))
	require.NoError(t, os.WriteFile(cfg.Paths.DB+"-wal", []byte("junk"), 0644))

	_, err := iobuild.New(cfg).Build(context.Background())
	require.NoError(t, err)

	db := openDB(t, cfg.Paths.DB)
	assert.Equal(t, 6, count(t, db, "SELECT COUNT(*) FROM places"))
}

func TestBuildCustomSchema(t *testing.T) {
	cfg := setup(t)
	schema := filepath.Join(t.TempDir(), "schema.sql")
	require.NoError(t, os.WriteFile(schema, []byte(iobuild.SchemaSQL()), 0644))
	cfg.Update([]config.Option{config.OptBuildSchemaPath(schema)})

	stats, err := iobuild.New(cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Inserted)
}

func TestBuildErrors(t *testing.T) {
	codeOf := func(err error) gn.ErrorCode {
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr)
		return gnErr.Code
	}
	ctx := context.Background()

	t.Run("missing interchange file", func(t *testing.T) {
		cfg := iotesting.TempConfig(t)
		_, err := iobuild.New(cfg).Build(ctx)
		assert.Equal(t, errcode.InterchangeNotFoundError, codeOf(err))
	})

	t.Run("missing schema file", func(t *testing.T) {
		cfg := setup(t)
		cfg.Update([]config.Option{
			config.OptBuildSchemaPath(filepath.Join(t.TempDir(), "nope.sql")),
		})
		_, err := iobuild.New(cfg).Build(ctx)
		assert.Equal(t, errcode.BuildSchemaFileError, codeOf(err))
	})

	t.Run("broken schema", func(t *testing.T) {
		cfg := setup(t)
		schema := filepath.Join(t.TempDir(), "schema.sql")
		require.NoError(t, os.WriteFile(schema, []byte("CREATE TABLE ("), 0644))
		cfg.Update([]config.Option{config.OptBuildSchemaPath(schema)})
		_, err := iobuild.New(cfg).Build(ctx)
		assert.Equal(t, errcode.BuildSchemaApplyError, codeOf(err))
	})
}
