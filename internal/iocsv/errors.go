package iocsv

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gn"
)

func NotFoundError(path string, err error) error {
	msg := `Interchange file <em>%s</em> not found

<em>How to fix:</em>
  Run <em>gazdb transform</em> first, or point <em>--input</em> to the file`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InterchangeNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open %s: %w",
			fn.Name(), path, err),
	}
}

func HeaderError(path string, got []string, err error) error {
	msg := `Interchange file <em>%s</em> has an unexpected header

<em>Expected:</em> %s
<em>Found:</em> %s`
	vars := []any{path, strings.Join(Header(), ","), strings.Join(got, ",")}
	if err == nil {
		err = errors.New("header mismatch")
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InterchangeHeaderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bad header in %s: %w",
			fn.Name(), path, err),
	}
}

func WriteError(path string, err error) error {
	msg := "Cannot write interchange file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InterchangeWriteError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write %s: %w",
			fn.Name(), path, err),
	}
}

// RowError describes a row that could not be converted. The load stage
// logs and counts these errors instead of stopping.
func RowError(line int, ssrID string, err error) error {
	msg := "Skipping row at line %d (ssr_id %s)"
	vars := []any{line, ssrID}
	return &gn.Error{
		Code: errcode.InterchangeRowError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("line %d, ssr_id %q: %w", line, ssrID, err),
	}
}
