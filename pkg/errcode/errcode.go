package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Source database errors
	SourceConnectionError
	SourceNotConnectedError
	SourceSchemaError
	SourceQueryError
	SourceScanError
	SourceInvalidRowError
	SourceNotReadyError
	SourceDumpNotFoundError
	SourceDumpLoadError

	// Interchange file errors
	InterchangeNotFoundError
	InterchangeHeaderError
	InterchangeWriteError
	InterchangeRowError

	// Build errors
	BuildRemoveError
	BuildOpenError
	BuildSchemaFileError
	BuildSchemaApplyError
	BuildLoadError
	BuildIndexError
	BuildMetadataError
	BuildOptimizeError

	// Verification errors
	VerifyQueryError
	VerifyFailedError

	// Pipeline errors
	PipelineStepError
	PipelineTimeoutError

	// Heuristics errors
	HeuristicsReadError
)
