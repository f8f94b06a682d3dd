// Package lifecycle declares the stages of the gazetteer pipeline.
// Implementations live in internal/ packages and receive their
// configuration at construction.
package lifecycle

import (
	"context"

	"github.com/gnames/gazdb/pkg/scorer"
)

// Transformer extracts raw rows from the source database, turns them
// into canonical places and writes the interchange file.
type Transformer interface {
	Transform(ctx context.Context) (*TransformStats, error)
}

// Builder creates the search database from the interchange file.
// Every build starts from an empty file, so a rebuild with the same
// input produces the same content.
type Builder interface {
	Build(ctx context.Context) (*LoadStats, error)
}

// Verifier checks a built database. A failed verification is reported
// as an error together with the report that caused it.
type Verifier interface {
	Verify(ctx context.Context) (*Report, error)
}

// Bootstrapper makes sure the source database is ready to be queried.
type Bootstrapper interface {
	// WaitReady blocks until the source database answers or the number
	// of attempts runs out.
	WaitReady(ctx context.Context) error

	// LoadDump loads the gazetteer dump unless its tables already hold
	// rows. It reports whether the dump was loaded.
	LoadDump(ctx context.Context) (bool, error)
}

// TransformStats summarises the transform stage.
type TransformStats struct {
	// Schema is the source schema the rows were read from.
	Schema string
	// Path is the interchange file that was written.
	Path string
	scorer.Stats
}

// LoadStats summarises the bulk load of the interchange file.
type LoadStats struct {
	// Read is the number of data rows in the file.
	Read int
	// Inserted is the number of rows stored in the database.
	Inserted int
	// Skipped is the number of rows dropped because of bad values or
	// failed inserts.
	Skipped int
}

// Check is one named verification check.
type Check struct {
	Name   string
	Count  int64
	Passed bool
	// Fatal checks decide the overall outcome.
	Fatal bool
}

// Report is the outcome of a verification.
type Report struct {
	PlacesCount int64
	FTSCount    int64
	SizeBytes   int64
	Checks      []Check
	Passed      bool
}
