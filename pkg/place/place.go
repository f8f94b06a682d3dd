// Package place defines the records that flow through the gazetteer
// pipeline: raw rows as they come out of the spatial store and canonical
// places as they are written to the interchange file and the search
// database.
//
// This package is pure. It has no I/O and no dependencies outside the
// standard library.
package place

import (
	"fmt"
	"math"
	"strings"
)

// Class is the normalised English category of a place.
type Class string

const (
	City       Class = "city"
	Town       Class = "town"
	Village    Class = "village"
	Settlement Class = "settlement"
	District   Class = "district"
	Farm       Class = "farm"
	PostalTown Class = "postal_town"
	TownPart   Class = "town_part"
	// Generic is assigned to every type code without a mapping.
	Generic Class = "place"
)

// Classes lists all known classes in a stable order.
func Classes() []Class {
	return []Class{
		City, Town, Village, Settlement, District, Farm, PostalTown,
		TownPart, Generic,
	}
}

// IsValid reports whether c is one of the known classes.
func (c Class) IsValid() bool {
	for _, v := range Classes() {
		if c == v {
			return true
		}
	}
	return false
}

// RawRow is one record returned by the extraction query. Coordinates
// are already reprojected to WGS84 by the source store.
//
// Administrative linkage comes from an outer join, so the fields that
// describe it are nil when a place has no municipality.
type RawRow struct {
	// SSRID is the external identifier (lokalid) of the named object.
	SSRID string

	// Name is the complete spelling of the primary name.
	Name string

	// NameStatus is the spelling status rank, if the source has one.
	NameStatus *string

	// ObjectType is the source type code (navneobjekttype), e.g. "by".
	ObjectType string

	Lat float64
	Lon float64

	MunicipalityCode *string
	MunicipalityName *string
	CountyName       *string

	// RepresentationPoint flags rows that are a representation point of
	// a larger geometry. The current query always returns false.
	RepresentationPoint bool
}

// Validate checks the invariants the extraction query is supposed to
// guarantee: an identifier, a name and a finite WGS84 position.
func (r RawRow) Validate() error {
	if strings.TrimSpace(r.SSRID) == "" {
		return fmt.Errorf("row without ssr_id (name %q)", r.Name)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("row %s has empty name", r.SSRID)
	}
	if !ValidCoords(r.Lat, r.Lon) {
		return fmt.Errorf("row %s has invalid position (%f, %f)",
			r.SSRID, r.Lat, r.Lon)
	}
	return nil
}

// ValidCoords reports whether lat and lon are finite and inside the
// WGS84 range.
func ValidCoords(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) ||
		math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Place is the canonical, deduplicated and scored record.
type Place struct {
	// SSRID is the external identifier carried over from the source.
	SSRID string

	// Name is the display name in Unicode NFC.
	Name string

	// AltNames is reserved for alternative spellings. It is always nil
	// for the current dataset and must stay nil through the pipeline.
	AltNames *string

	// Lat and Lon are WGS84 degrees rounded to 6 decimals.
	Lat float64
	Lon float64

	Class Class

	MunicipalityCode *string
	MunicipalityName *string
	CountyName       *string

	// Population is not available in the gazetteer and is always nil.
	Population *int64

	IsCountySeat       bool
	IsMunicipalitySeat bool

	// Importance is a ranking score within [0, MaxScore].
	Importance float64
}

// Key is the natural key of a place: display name plus municipality
// code. A missing municipality code is distinct from an empty one.
type Key struct {
	Name     string
	Code     string
	NullCode bool
}

// Key returns the natural key of the place.
func (p Place) Key() Key {
	if p.MunicipalityCode == nil {
		return Key{Name: p.Name, NullCode: true}
	}
	return Key{Name: p.Name, Code: *p.MunicipalityCode}
}

// String returns a short human-readable form of the key for logs.
func (k Key) String() string {
	if k.NullCode {
		return k.Name + "/-"
	}
	return k.Name + "/" + k.Code
}
