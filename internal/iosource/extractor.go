// Package iosource reads raw place rows from the gazetteer stored in
// PostGIS. It issues a single query and validates every row before it
// leaves the package.
package iosource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/gazdb/pkg/db"
	"github.com/gnames/gazdb/pkg/place"
	"github.com/jackc/pgx/v5"
)

// DefaultSchema is used when no gazetteer schema is found.
const DefaultSchema = "public"

// Extractor runs the extraction query against a source database.
type Extractor struct {
	q      db.Querier
	schema string
}

// New creates an Extractor that reads tables from the given schema.
// An empty schema means DefaultSchema.
func New(q db.Querier, schema string) *Extractor {
	if schema == "" {
		schema = DefaultSchema
	}
	return &Extractor{q: q, schema: schema}
}

// Schema returns the schema the extractor reads from.
func (e *Extractor) Schema() string {
	return e.schema
}

// Query returns the extraction SQL with schema-qualified table names.
// The only parameter is the allow-list of type codes.
func (e *Extractor) Query() string {
	tbl := func(name string) string {
		return pgx.Identifier{e.schema, name}.Sanitize()
	}

	return fmt.Sprintf(`
SELECT DISTINCT
	s.lokalid::text AS ssr_id,
	sm.komplettskrivemate AS primary_name,
	sm.skrivematestatus::text AS name_status,
	s.navneobjekttype AS object_type,
	ST_Y(ST_Transform(s.posisjon, 4326)) AS lat,
	ST_X(ST_Transform(s.posisjon, 4326)) AS lon,
	k.kommunenummer::text AS municipality_code,
	k.kommunenavn AS municipality_name,
	k.fylkesnavn AS county_name,
	false AS representation_point
FROM %s s
JOIN %s sn ON sn.sted_fk = s.objid
JOIN %s sm ON sm.stedsnavn_fk = sn.objid
LEFT JOIN %s k ON k.sted_fk = s.objid
WHERE s.navneobjekttype = ANY($1)
	AND sm.komplettskrivemate IS NOT NULL
	AND s.posisjon IS NOT NULL
	AND sm.skrivematenummer = 1
ORDER BY k.kommunenummer::text, sm.komplettskrivemate, s.lokalid::text`,
		tbl("sted_posisjon"),
		tbl("stedsnavn"),
		tbl("skrivemate"),
		tbl("kommune"),
	)
}

// Extract returns all rows of the allowed types, ordered by
// municipality code, name and id. A row that breaks the query
// guarantees aborts the extraction.
func (e *Extractor) Extract(
	ctx context.Context,
	types []string,
) ([]place.RawRow, error) {
	if len(types) == 0 {
		return nil, NoTypesError()
	}

	slog.Info("Extracting places", "schema", e.schema, "types", types)
	rows, err := e.q.Query(ctx, e.Query(), types)
	if err != nil {
		return nil, QueryError(e.schema, err)
	}
	defer rows.Close()

	var res []place.RawRow
	for rows.Next() {
		var r place.RawRow
		err = rows.Scan(
			&r.SSRID,
			&r.Name,
			&r.NameStatus,
			&r.ObjectType,
			&r.Lat,
			&r.Lon,
			&r.MunicipalityCode,
			&r.MunicipalityName,
			&r.CountyName,
			&r.RepresentationPoint,
		)
		if err != nil {
			return nil, ScanError(len(res)+1, err)
		}
		if err = r.Validate(); err != nil {
			return nil, InvalidRowError(len(res)+1, err)
		}
		res = append(res, r)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(e.schema, err)
	}

	slog.Info("Extracted places", "rows", len(res))
	return res, nil
}
