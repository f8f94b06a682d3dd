package iosource

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gn"
)

// NoTypesError is returned when extraction is asked for an empty
// allow-list of type codes.
func NoTypesError() error {
	msg := `No place types to extract

<em>How to fix:</em>
  Set <em>source.place_types</em> in config.yaml`

	return &gn.Error{
		Code: errcode.SourceQueryError,
		Msg:  msg,
		Err:  errors.New("empty place type allow-list"),
	}
}

func QueryError(schema string, err error) error {
	msg := "Extraction query failed in schema <em>%s</em>"
	vars := []any{schema}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceQueryError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: extraction query failed: %w",
			fn.Name(), err),
	}
}

func ScanError(rowNum int, err error) error {
	msg := "Cannot read source row <em>%d</em>"
	vars := []any{rowNum}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceScanError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: scan of row %d failed: %w",
			fn.Name(), rowNum, err),
	}
}

func InvalidRowError(rowNum int, err error) error {
	msg := "Source row <em>%d</em> is invalid: %s"
	vars := []any{rowNum, err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceInvalidRowError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid row %d: %w",
			fn.Name(), rowNum, err),
	}
}
