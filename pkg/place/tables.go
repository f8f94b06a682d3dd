package place

import "slices"

// Tables holds every heuristic used to turn a raw row into a canonical
// place. The value is loaded from heuristics.yaml; DefaultTables is the
// built-in fallback.
type Tables struct {
	// Classes maps a source type code to its class. Codes missing from
	// the map become Generic.
	Classes map[string]Class `yaml:"classes"`

	// BaseScores is the starting importance of a class.
	BaseScores map[Class]float64 `yaml:"base_scores"`

	// FallbackScore is the base for classes without an entry in
	// BaseScores.
	FallbackScore float64 `yaml:"fallback_score"`

	// SeatBonus is added when the display name equals the municipality
	// name.
	SeatBonus float64 `yaml:"seat_bonus"`

	// MaxScore caps the importance score.
	MaxScore float64 `yaml:"max_score"`

	// CountySeats are names flagged as county seats. It is a known
	// heuristic (major cities), not an authoritative list.
	CountySeats []string `yaml:"county_seats"`
}

// DefaultTables returns the built-in heuristics.
func DefaultTables() Tables {
	return Tables{
		Classes: map[string]Class{
			"by":             City,
			"tettsted":       Town,
			"bygdelagBygd":   Village,
			"tettbebyggelse": Settlement,
			"gard":           Farm,
			"bydel":          District,
			"tettsteddel":    TownPart,
			"poststed":       PostalTown,
		},
		BaseScores: map[Class]float64{
			City:       10.0,
			Town:       8.0,
			District:   7.0,
			Village:    5.0,
			Settlement: 4.0,
			Farm:       2.0,
		},
		FallbackScore: 1.0,
		SeatBonus:     2.0,
		MaxScore:      10.0,
		CountySeats: []string{
			"Oslo", "Bergen", "Trondheim", "Stavanger", "Tromsø", "Drammen",
		},
	}
}

// Merge returns a copy of t where every empty or invalid entry is
// replaced by the corresponding value of def. The names of replaced
// fields are returned so the caller can warn about them.
func (t Tables) Merge(def Tables) (Tables, []string) {
	var fixed []string
	res := t

	if len(res.Classes) == 0 {
		res.Classes = def.Classes
		fixed = append(fixed, "classes")
	} else {
		classes := make(map[string]Class, len(res.Classes))
		for k, v := range res.Classes {
			if !v.IsValid() {
				fixed = append(fixed, "classes."+k)
				continue
			}
			classes[k] = v
		}
		res.Classes = classes
	}

	if len(res.BaseScores) == 0 {
		res.BaseScores = def.BaseScores
		fixed = append(fixed, "base_scores")
	}
	if res.FallbackScore < 0 {
		res.FallbackScore = def.FallbackScore
		fixed = append(fixed, "fallback_score")
	}
	if res.SeatBonus < 0 {
		res.SeatBonus = def.SeatBonus
		fixed = append(fixed, "seat_bonus")
	}
	if res.MaxScore <= 0 {
		res.MaxScore = def.MaxScore
		fixed = append(fixed, "max_score")
	}
	if res.CountySeats == nil {
		res.CountySeats = slices.Clone(def.CountySeats)
		fixed = append(fixed, "county_seats")
	}
	slices.Sort(fixed)
	return res, fixed
}
