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
	WriteFileError
	DecompressError

	// Logging errors
	CreateLogFileError

	// Sources errors
	SourcesReadError
	SourcesParseError
	SourcesValidationError

	// Database errors
	DBConnectionError
	DBUnknownDriverError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Fetch errors
	FetchHTTPError
	FetchFTPError
	FetchRetriesExhaustedError
	FetchIndexError

	// Parse errors
	ParseSourceFileError
	ParseXMLError
	ParseGzipError
	ParseArtifactSaveError
	ParseArtifactLoadError

	// Load errors
	LoadWipeError
	LoadInsertError

	// Link errors
	LinkCountError
	LinkUpdateError

	// Update errors
	UpdateAllSourcesFailedError
	UpdateNoSourcesError
)
