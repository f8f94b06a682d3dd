// Package scorer turns raw gazetteer rows into canonical places.
//
// It classifies type codes, computes importance scores, flags seats,
// rounds coordinates and collapses records sharing a natural key. All
// heuristics come from a place.Tables value given to New, so the same
// rows and tables always produce the same output.
package scorer

import (
	"math"

	"github.com/gnames/gazdb/pkg/place"
	"golang.org/x/text/unicode/norm"
)

// Stats summarises one Transform call.
type Stats struct {
	// Read is the number of raw rows received.
	Read int
	// Unique is the number of places after deduplication.
	Unique int
	// Replaced counts duplicates that displaced an earlier record.
	Replaced int
	// Dropped counts duplicates that lost to an earlier record.
	Dropped int
}

// Scorer applies classification and scoring heuristics.
type Scorer struct {
	tables      place.Tables
	countySeats map[string]struct{}
}

// New creates a Scorer from the given heuristic tables.
func New(tables place.Tables) *Scorer {
	res := Scorer{
		tables:      tables,
		countySeats: make(map[string]struct{}, len(tables.CountySeats)),
	}
	for _, v := range tables.CountySeats {
		res.countySeats[norm.NFC.String(v)] = struct{}{}
	}
	return &res
}

// Classify maps a source type code to a place class. Unknown codes
// become place.Generic.
func (s *Scorer) Classify(code string) place.Class {
	if c, ok := s.tables.Classes[code]; ok {
		return c
	}
	return place.Generic
}

// Score computes the importance of a row: the base score of its class,
// plus the seat bonus when the name equals the municipality name,
// clamped to [0, MaxScore].
func (s *Scorer) Score(row place.RawRow) float64 {
	res := s.baseScore(s.Classify(row.ObjectType))
	if isMunicipalitySeat(norm.NFC.String(row.Name), row.MunicipalityName) {
		res += s.tables.SeatBonus
	}
	return math.Max(0, math.Min(s.tables.MaxScore, res))
}

func (s *Scorer) baseScore(c place.Class) float64 {
	if v, ok := s.tables.BaseScores[c]; ok {
		return v
	}
	return s.tables.FallbackScore
}

// Canonical converts one raw row into a place without deduplication.
func (s *Scorer) Canonical(row place.RawRow) place.Place {
	name := norm.NFC.String(row.Name)
	_, countySeat := s.countySeats[name]

	return place.Place{
		SSRID:              row.SSRID,
		Name:               name,
		Lat:                Round6(row.Lat),
		Lon:                Round6(row.Lon),
		Class:              s.Classify(row.ObjectType),
		MunicipalityCode:   row.MunicipalityCode,
		MunicipalityName:   nfcPtr(row.MunicipalityName),
		CountyName:         nfcPtr(row.CountyName),
		IsCountySeat:       countySeat,
		IsMunicipalitySeat: isMunicipalitySeat(name, row.MunicipalityName),
		Importance:         s.Score(row),
	}
}

// Transform converts rows to canonical places and deduplicates them by
// natural key.
func (s *Scorer) Transform(rows []place.RawRow) ([]place.Place, Stats) {
	places := make([]place.Place, 0, len(rows))
	for i := range rows {
		places = append(places, s.Canonical(rows[i]))
	}
	res, stats := Dedup(places)
	stats.Read = len(rows)
	return res, stats
}

// Dedup keeps at most one place per natural key. A later place replaces
// the kept one only when its importance is strictly higher; ties keep
// the first seen. Output preserves the order in which keys first
// appeared.
func Dedup(places []place.Place) ([]place.Place, Stats) {
	seen := make(map[place.Key]int, len(places))
	res := make([]place.Place, 0, len(places))
	var stats Stats

	for i := range places {
		p := places[i]
		k := p.Key()
		idx, ok := seen[k]
		if !ok {
			seen[k] = len(res)
			res = append(res, p)
			continue
		}
		if p.Importance > res[idx].Importance {
			res[idx] = p
			stats.Replaced++
			continue
		}
		stats.Dropped++
	}

	stats.Read = len(places)
	stats.Unique = len(res)
	return res, stats
}

// Round6 rounds a coordinate to 6 decimal places, half away from zero.
func Round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}

func isMunicipalitySeat(name string, municipality *string) bool {
	if municipality == nil {
		return false
	}
	return name == norm.NFC.String(*municipality)
}

func nfcPtr(s *string) *string {
	if s == nil {
		return nil
	}
	res := norm.NFC.String(*s)
	return &res
}
