package iobuild

import (
	"fmt"
	"runtime"

	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gn"
)

func RemoveError(path string, err error) error {
	msg := "Cannot remove previous database file <em>%s</em>"
	vars := []any{path}
	return newError(errcode.BuildRemoveError, msg, vars,
		fmt.Errorf("cannot remove %s: %w", path, err))
}

func OpenError(path string, err error) error {
	msg := "Cannot open database <em>%s</em>"
	vars := []any{path}
	return newError(errcode.BuildOpenError, msg, vars,
		fmt.Errorf("cannot open %s: %w", path, err))
}

func SchemaFileError(path string, err error) error {
	msg := `Cannot read schema file <em>%s</em>

<em>How to fix:</em>
  Check <em>build.schema_path</em> in config.yaml or the <em>--schema</em> flag`
	vars := []any{path}
	return newError(errcode.BuildSchemaFileError, msg, vars,
		fmt.Errorf("cannot read schema %s: %w", path, err))
}

func SchemaApplyError(err error) error {
	msg := "Cannot create database schema"
	return newError(errcode.BuildSchemaApplyError, msg, nil,
		fmt.Errorf("cannot apply schema: %w", err))
}

func LoadError(err error) error {
	msg := "Bulk load of places failed"
	return newError(errcode.BuildLoadError, msg, nil,
		fmt.Errorf("bulk load failed: %w", err))
}

func IndexError(err error) error {
	msg := "Cannot build full-text index"
	return newError(errcode.BuildIndexError, msg, nil,
		fmt.Errorf("fts refresh failed: %w", err))
}

func MetadataError(err error) error {
	msg := "Cannot access build metadata"
	return newError(errcode.BuildMetadataError, msg, nil,
		fmt.Errorf("metadata failed: %w", err))
}

func OptimizeError(stmt string, err error) error {
	msg := "Database optimization failed at <em>%s</em>"
	vars := []any{stmt}
	return newError(errcode.BuildOptimizeError, msg, vars,
		fmt.Errorf("%s failed: %w", stmt, err))
}

func newError(code gn.ErrorCode, msg string, vars []any, err error) error {
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}
