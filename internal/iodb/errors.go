package iodb

import (
	"errors"
	"fmt"

	"github.com/gnames/gazdb/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError creates an error for a failed connection to the
// source database.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Could not connect to PostgreSQL

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Connection settings are incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Review connection settings (config.yaml, GAZDB_DATABASE_*, PG*):
     Host: %s, Port: %d, Database: %s, User: %s`

	vars := []any{host, port, host, port, database, user}

	return &gn.Error{
		Code: errcode.SourceConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError creates an error for operations attempted before
// Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.SourceNotConnectedError,
		Msg:  msg,
		Err:  errors.New("not connected to database"),
	}
}

// SchemaError creates an error for a failed schema lookup.
func SchemaError(pattern string, err error) error {
	msg := "Cannot look up gazetteer schema matching <em>%s</em>"
	vars := []any{pattern}

	return &gn.Error{
		Code: errcode.SourceSchemaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("schema lookup %q failed: %w", pattern, err),
	}
}
