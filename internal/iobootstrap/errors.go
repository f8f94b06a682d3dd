package iobootstrap

import (
	"fmt"
	"runtime"

	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gn"
)

func NotReadyError(host string, attempts int, err error) error {
	msg := `PostgreSQL at <em>%s</em> did not become ready after %d attempts

<em>How to fix:</em>
  1. Check that the database container is running
  2. Increase <em>source.ready_attempts</em> in config.yaml`
	vars := []any{host, attempts}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceNotReadyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s not ready after %d attempts: %w",
			fn.Name(), host, attempts, err),
	}
}

func DumpNotFoundError(path string, err error) error {
	msg := `PostGIS dump not found: <em>%s</em>

Please make sure the dump directory contains the Stedsnavn dump,
or set <em>source.dump_path</em> in config.yaml`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceDumpNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: dump %s: %w", fn.Name(), path, err),
	}
}

func DumpLoadError(path, output string, err error) error {
	msg := "Failed to load PostGIS dump <em>%s</em>\n%s"
	vars := []any{path, output}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SourceDumpLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: psql -f %s: %w", fn.Name(), path, err),
	}
}
