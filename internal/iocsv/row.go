// Package iocsv reads and writes the interchange file between the
// transform and load stages.
//
// The file is UTF-8 CSV with a header line. Columns, in order:
//
//	ssr_id, primary_name, alt_names, lat, lon, place_class,
//	municipality_code, municipality_name, county_name, population,
//	is_county_seat, is_municipality_seat, importance_score
//
// Coordinates have 6 decimals, flags are 0 or 1, NULL is an empty field.
// An empty municipality code and a missing one are both written as an
// empty field and read back as NULL.
package iocsv

import (
	"errors"
	"strings"

	"github.com/gnames/gazdb/pkg/place"
	"github.com/jszwec/csvutil"
)

// Row is one line of the interchange file. Field order defines the
// column order.
type Row struct {
	SSRID              string     `csv:"ssr_id"`
	PrimaryName        string     `csv:"primary_name"`
	AltNames           NullString `csv:"alt_names"`
	Lat                Coord      `csv:"lat"`
	Lon                Coord      `csv:"lon"`
	PlaceClass         string     `csv:"place_class"`
	MunicipalityCode   NullString `csv:"municipality_code"`
	MunicipalityName   NullString `csv:"municipality_name"`
	CountyName         NullString `csv:"county_name"`
	Population         NullInt    `csv:"population"`
	IsCountySeat       Flag       `csv:"is_county_seat"`
	IsMunicipalitySeat Flag       `csv:"is_municipality_seat"`
	ImportanceScore    Score      `csv:"importance_score"`
}

// Header returns the column names in file order.
func Header() []string {
	res, err := csvutil.Header(Row{}, "csv")
	if err != nil {
		// Row is a static type, Header only fails on invalid types.
		panic(err)
	}
	return res
}

// FromPlace converts a canonical place to a row.
func FromPlace(p place.Place) Row {
	return Row{
		SSRID:              p.SSRID,
		PrimaryName:        p.Name,
		AltNames:           NewNullString(p.AltNames),
		Lat:                Coord(p.Lat),
		Lon:                Coord(p.Lon),
		PlaceClass:         string(p.Class),
		MunicipalityCode:   NewNullString(p.MunicipalityCode),
		MunicipalityName:   NewNullString(p.MunicipalityName),
		CountyName:         NewNullString(p.CountyName),
		Population:         NewNullInt(p.Population),
		IsCountySeat:       Flag(p.IsCountySeat),
		IsMunicipalitySeat: Flag(p.IsMunicipalitySeat),
		ImportanceScore:    Score(p.Importance),
	}
}

// Place converts the row back to a canonical place, checking values
// that the CSV codec alone cannot.
func (r Row) Place() (place.Place, error) {
	if strings.TrimSpace(r.SSRID) == "" {
		return place.Place{}, errors.New("empty ssr_id")
	}
	if strings.TrimSpace(r.PrimaryName) == "" {
		return place.Place{}, errors.New("empty primary_name")
	}
	if !place.ValidCoords(float64(r.Lat), float64(r.Lon)) {
		return place.Place{}, errors.New("coordinates out of range")
	}
	class := place.Class(r.PlaceClass)
	if !class.IsValid() {
		return place.Place{}, errors.New("unknown place_class " + r.PlaceClass)
	}

	return place.Place{
		SSRID:              r.SSRID,
		Name:               r.PrimaryName,
		AltNames:           r.AltNames.Ptr(),
		Lat:                float64(r.Lat),
		Lon:                float64(r.Lon),
		Class:              class,
		MunicipalityCode:   r.MunicipalityCode.Ptr(),
		MunicipalityName:   r.MunicipalityName.Ptr(),
		CountyName:         r.CountyName.Ptr(),
		Population:         r.Population.Ptr(),
		IsCountySeat:       bool(r.IsCountySeat),
		IsMunicipalitySeat: bool(r.IsMunicipalitySeat),
		Importance:         float64(r.ImportanceScore),
	}, nil
}
