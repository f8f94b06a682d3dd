package iocsv

import (
	"fmt"
	"math"
	"strconv"
)

// Coord is a coordinate written with exactly 6 decimals.
type Coord float64

func (c Coord) MarshalCSV() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(c), 'f', 6, 64)), nil
}

func (c *Coord) UnmarshalCSV(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", data, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid coordinate %q", data)
	}
	*c = Coord(f)
	return nil
}

// Flag is a boolean written as 0 or 1.
type Flag bool

func (f Flag) MarshalCSV() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalCSV(data []byte) error {
	switch string(data) {
	case "1", "true", "True":
		*f = true
	case "0", "false", "False":
		*f = false
	default:
		return fmt.Errorf("invalid flag %q", data)
	}
	return nil
}

// Score is an importance score written as the shortest decimal that
// reads back to the same value.
type Score float64

func (s Score) MarshalCSV() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(s), 'f', -1, 64)), nil
}

func (s *Score) UnmarshalCSV(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid score %q: %w", data, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid score %q", data)
	}
	*s = Score(f)
	return nil
}

// NullString is a nullable text field. NULL is an empty field.
type NullString struct {
	String string
	Valid  bool
}

func NewNullString(s *string) NullString {
	if s == nil {
		return NullString{}
	}
	return NullString{String: *s, Valid: true}
}

// Ptr returns nil for NULL and a pointer to the value otherwise.
func (n NullString) Ptr() *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func (n NullString) MarshalCSV() ([]byte, error) {
	if !n.Valid {
		return nil, nil
	}
	return []byte(n.String), nil
}

func (n *NullString) UnmarshalCSV(data []byte) error {
	if len(data) == 0 {
		*n = NullString{}
		return nil
	}
	*n = NullString{String: string(data), Valid: true}
	return nil
}

// NullInt is a nullable integer field. NULL is an empty field.
type NullInt struct {
	Int64 int64
	Valid bool
}

func NewNullInt(i *int64) NullInt {
	if i == nil {
		return NullInt{}
	}
	return NullInt{Int64: *i, Valid: true}
}

// Ptr returns nil for NULL and a pointer to the value otherwise.
func (n NullInt) Ptr() *int64 {
	if !n.Valid {
		return nil
	}
	i := n.Int64
	return &i
}

func (n NullInt) MarshalCSV() ([]byte, error) {
	if !n.Valid {
		return nil, nil
	}
	return []byte(strconv.FormatInt(n.Int64, 10)), nil
}

func (n *NullInt) UnmarshalCSV(data []byte) error {
	if len(data) == 0 {
		*n = NullInt{}
		return nil
	}
	i, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %q: %w", data, err)
	}
	*n = NullInt{Int64: i, Valid: true}
	return nil
}
