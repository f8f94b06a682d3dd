package place_test

import (
	"math"
	"testing"

	"github.com/gnames/gazdb/pkg/place"
	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestRawRowValidate(t *testing.T) {
	tests := []struct {
		msg string
		row place.RawRow
		ok  bool
	}{
		{"valid", place.RawRow{SSRID: "1", Name: "Oslo", Lat: 59.9, Lon: 10.7}, true},
		{"no id", place.RawRow{Name: "Oslo", Lat: 59.9, Lon: 10.7}, false},
		{"blank name", place.RawRow{SSRID: "1", Name: "  ", Lat: 59.9, Lon: 10.7}, false},
		{"lat out of range", place.RawRow{SSRID: "1", Name: "X", Lat: 91, Lon: 10}, false},
		{"lon NaN", place.RawRow{SSRID: "1", Name: "X", Lat: 60, Lon: math.NaN()}, false},
	}

	for _, v := range tests {
		err := v.row.Validate()
		if v.ok {
			assert.Nil(t, err, v.msg)
		} else {
			assert.NotNil(t, err, v.msg)
		}
	}
}

func TestKey(t *testing.T) {
	assert := assert.New(t)
	withCode := place.Place{Name: "Sandvika", MunicipalityCode: ptr("3024")}
	emptyCode := place.Place{Name: "Sandvika", MunicipalityCode: ptr("")}
	nullCode := place.Place{Name: "Sandvika"}

	assert.Equal(place.Key{Name: "Sandvika", Code: "3024"}, withCode.Key())
	assert.NotEqual(emptyCode.Key(), nullCode.Key())
	assert.Equal("Sandvika/-", nullCode.Key().String())
	assert.Equal("Sandvika/3024", withCode.Key().String())
}

func TestClassIsValid(t *testing.T) {
	for _, c := range place.Classes() {
		assert.True(t, c.IsValid(), string(c))
	}
	assert.False(t, place.Class("hamlet").IsValid())
}

func TestTablesMerge(t *testing.T) {
	def := place.DefaultTables()

	t.Run("complete tables stay unchanged", func(t *testing.T) {
		res, fixed := def.Merge(def)
		assert.Empty(t, fixed)
		assert.Equal(t, def, res)
	})

	t.Run("empty tables fall back to defaults", func(t *testing.T) {
		res, fixed := place.Tables{MaxScore: -1}.Merge(def)
		assert.Equal(t, def.Classes, res.Classes)
		assert.Equal(t, def.BaseScores, res.BaseScores)
		assert.Equal(t, 10.0, res.MaxScore)
		assert.Equal(t, def.CountySeats, res.CountySeats)
		assert.Contains(t, fixed, "classes")
		assert.Contains(t, fixed, "max_score")
	})

	t.Run("unknown classes are dropped", func(t *testing.T) {
		tbl := def
		tbl.Classes = map[string]place.Class{"by": place.City, "x": "hamlet"}
		res, fixed := tbl.Merge(def)
		assert.Equal(t, map[string]place.Class{"by": place.City}, res.Classes)
		assert.Equal(t, []string{"classes.x"}, fixed)
	})
}
