// Package iotransform runs the transform stage: extraction from
// PostGIS, scoring and deduplication, and writing of the interchange
// file. It implements lifecycle.Transformer.
package iotransform

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gazdb/internal/iocsv"
	"github.com/gnames/gazdb/internal/iodb"
	"github.com/gnames/gazdb/internal/iosource"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gazdb/pkg/db"
	"github.com/gnames/gazdb/pkg/lifecycle"
	"github.com/gnames/gazdb/pkg/place"
	"github.com/gnames/gazdb/pkg/scorer"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

type transformer struct {
	cfg    *config.Config
	op     db.Operator
	q      db.Querier
	tables place.Tables
}

// New creates a Transformer that reads through a connected operator.
func New(
	cfg *config.Config,
	op db.Operator,
	tables place.Tables,
) lifecycle.Transformer {
	return &transformer{cfg: cfg, op: op, tables: tables}
}

// NewWithQuerier creates a Transformer on top of any Querier, such as
// a mock pool.
func NewWithQuerier(
	cfg *config.Config,
	q db.Querier,
	tables place.Tables,
) lifecycle.Transformer {
	return &transformer{cfg: cfg, q: q, tables: tables}
}

// Transform extracts, scores, deduplicates and writes places.
func (t *transformer) Transform(
	ctx context.Context,
) (*lifecycle.TransformStats, error) {
	timeStart := time.Now()
	q, err := t.querier()
	if err != nil {
		return nil, err
	}

	schema, err := iodb.FindSchema(ctx, q, t.cfg.Source.SchemaPattern)
	if err != nil {
		return nil, err
	}
	if schema == "" {
		slog.Warn("Gazetteer schema not found, using default",
			"pattern", t.cfg.Source.SchemaPattern,
			"schema", iosource.DefaultSchema)
		gn.Warn("Schema matching <em>%s</em> not found, using <em>%s</em>",
			t.cfg.Source.SchemaPattern, iosource.DefaultSchema)
	} else {
		gn.Info("Using schema <em>%s</em>", schema)
	}

	ex := iosource.New(q, schema)
	rows, err := ex.Extract(ctx, t.cfg.Source.PlaceTypes)
	if err != nil {
		return nil, err
	}
	gn.Info("Extracted <em>%d</em> place records", len(rows))

	places, stats := scorer.New(t.tables).Transform(rows)
	slog.Info("Transformed places",
		"read", stats.Read,
		"unique", stats.Unique,
		"replaced", stats.Replaced,
		"dropped", stats.Dropped,
	)
	gn.Info("Transformed <em>%d</em> unique records", stats.Unique)

	if err = iocsv.Write(t.cfg.Paths.CSV, places); err != nil {
		return nil, err
	}

	dur := time.Since(timeStart).Seconds()
	slog.Info("Transform completed",
		"path", t.cfg.Paths.CSV, "duration", gnfmt.TimeString(dur))

	return &lifecycle.TransformStats{
		Schema: ex.Schema(),
		Path:   t.cfg.Paths.CSV,
		Stats:  stats,
	}, nil
}

func (t *transformer) querier() (db.Querier, error) {
	if t.q != nil {
		return t.q, nil
	}
	if t.op == nil || t.op.Pool() == nil {
		return nil, iodb.NotConnectedError()
	}
	return t.op.Pool(), nil
}
