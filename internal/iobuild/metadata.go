package iobuild

import (
	"context"
	"strconv"
	"strings"
	"time"

	gazdb "github.com/gnames/gazdb/pkg"
	"github.com/gnames/gazdb/pkg/lifecycle"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// Metadata keys stored in the _metadata table.
const (
	MetaBuildDate        = "build_date"
	MetaBuildTimestamp   = "build_timestamp"
	MetaRecordCount      = "record_count"
	MetaRecordsRead      = "records_read"
	MetaRecordsSkipped   = "records_skipped"
	MetaProjectionSource = "projection_source"
	MetaProjectionTarget = "projection_target"
	MetaBuildID          = "build_id"
	MetaDatasetID        = "dataset_id"
	MetaGenerator        = "generator"
)

// DatasetID is a UUID v5 over the ordered ssr_ids. The same input
// always gets the same id, unlike build_id which is new every build.
func DatasetID(ids []string) string {
	return gnuuid.New(strings.Join(ids, "\n")).String()
}

func (b *builder) metadata(
	stats *lifecycle.LoadStats,
	ids []string,
	now time.Time,
) [][2]string {
	now = now.UTC()
	return [][2]string{
		{MetaBuildDate, now.Format(time.RFC3339)},
		{MetaBuildTimestamp, strconv.FormatInt(now.Unix(), 10)},
		{MetaRecordCount, strconv.Itoa(stats.Inserted)},
		{MetaRecordsRead, strconv.Itoa(stats.Read)},
		{MetaRecordsSkipped, strconv.Itoa(stats.Skipped)},
		{MetaProjectionSource, b.cfg.Build.ProjectionSource},
		{MetaProjectionTarget, b.cfg.Build.ProjectionTarget},
		{MetaBuildID, uuid.New().String()},
		{MetaDatasetID, DatasetID(ids)},
		{MetaGenerator, "gazdb " + gazdb.Version},
	}
}

func (b *builder) writeMetadata(
	ctx context.Context,
	stats *lifecycle.LoadStats,
	ids []string,
) error {
	q := `INSERT INTO _metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return MetadataError(err)
	}
	defer tx.Rollback()

	for _, kv := range b.metadata(stats, ids, time.Now()) {
		if _, err = tx.ExecContext(ctx, q, kv[0], kv[1]); err != nil {
			return MetadataError(err)
		}
	}
	if err = tx.Commit(); err != nil {
		return MetadataError(err)
	}
	return nil
}

// ReadMetadata returns all key/value pairs of the _metadata table of
// an open database.
func ReadMetadata(ctx context.Context, db querier) (map[string]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT key, value FROM _metadata")
	if err != nil {
		return nil, MetadataError(err)
	}
	defer rows.Close()

	res := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err = rows.Scan(&k, &v); err != nil {
			return nil, MetadataError(err)
		}
		res[k] = v
	}
	if err = rows.Err(); err != nil {
		return nil, MetadataError(err)
	}
	return res, nil
}
