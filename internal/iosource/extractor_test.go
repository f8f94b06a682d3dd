package iosource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gazdb/internal/iosource"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"ssr_id", "primary_name", "name_status", "object_type", "lat", "lon",
	"municipality_code", "municipality_name", "county_name",
	"representation_point",
}

func ptr(s string) *string { return &s }

func TestQuery(t *testing.T) {
	e := iosource.New(nil, "stedsnavn_2025")
	q := e.Query()
	assert.Contains(t, q, `FROM "stedsnavn_2025"."sted_posisjon" s`)
	assert.Contains(t, q, `LEFT JOIN "stedsnavn_2025"."kommune" k`)
	assert.Contains(t, q, "= ANY($1)")
	assert.Contains(t, q, "ST_Transform(s.posisjon, 4326)")

	assert.Equal(t, iosource.DefaultSchema, iosource.New(nil, "").Schema())
}

func TestExtract(t *testing.T) {
	ctx := context.Background()
	types := config.DefaultPlaceTypes()

	t.Run("reads and validates rows", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows(columns).
			AddRow("a1", "Oslo", ptr("vedtatt"), "by", 59.913868, 10.752245,
				ptr("0301"), ptr("Oslo"), ptr("Oslo"), false).
			AddRow("b2", "Myrvang", (*string)(nil), "gard", 61.1, 9.5,
				(*string)(nil), (*string)(nil), (*string)(nil), false)
		mock.ExpectQuery("SELECT DISTINCT").
			WithArgs(types).
			WillReturnRows(rows)

		e := iosource.New(mock, "stedsnavn_x")
		res, err := e.Extract(ctx, types)
		require.NoError(t, err)
		require.Len(t, res, 2)

		assert.Equal(t, "a1", res[0].SSRID)
		assert.Equal(t, "by", res[0].ObjectType)
		require.NotNil(t, res[0].MunicipalityCode)
		assert.Equal(t, "0301", *res[0].MunicipalityCode)
		assert.Equal(t, 59.913868, res[0].Lat)

		assert.Equal(t, "Myrvang", res[1].Name)
		assert.Nil(t, res[1].NameStatus)
		assert.Nil(t, res[1].MunicipalityCode)
		assert.Nil(t, res[1].CountyName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid row aborts extraction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows(columns).
			AddRow("a1", "Nowhere", (*string)(nil), "by", 120.0, 10.0,
				(*string)(nil), (*string)(nil), (*string)(nil), false)
		mock.ExpectQuery("SELECT DISTINCT").
			WithArgs(types).
			WillReturnRows(rows)

		_, err = iosource.New(mock, "").Extract(ctx, types)
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr)
		assert.Equal(t, errcode.SourceInvalidRowError, gnErr.Code)
	})

	t.Run("query error aborts extraction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT DISTINCT").
			WithArgs(types).
			WillReturnError(errors.New("relation does not exist"))

		_, err = iosource.New(mock, "").Extract(ctx, types)
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr)
		assert.Equal(t, errcode.SourceQueryError, gnErr.Code)
	})

	t.Run("empty allow-list is rejected", func(t *testing.T) {
		_, err := iosource.New(nil, "").Extract(ctx, nil)
		require.Error(t, err)
	})
}
