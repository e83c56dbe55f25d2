// Package constants provides shared constants used throughout the dataunifier
// codebase: defaults, file permissions, timeouts and formats that should be
// consistent across the library and the CLI.
package constants

import "time"

// Default values
const (
	// DefaultOutputFile is the name of the unified CSV written by a run
	DefaultOutputFile = "unified_file.csv"

	// DefaultDelimiter is the field delimiter used for input and output CSV
	DefaultDelimiter = ','

	// DefaultHeaderStyle is the header row style of the output file
	DefaultHeaderStyle = "canonical"

	// DefaultMongoDatabase is the database used by the Mongo sink
	DefaultMongoDatabase = "dataunifier"

	// DefaultMongoCollection is the collection used by the Mongo sink
	DefaultMongoCollection = "unified_records"

	// DefaultSyncLogCollection records each Mongo sink write
	DefaultSyncLogCollection = "sync_log"

	// DefaultConfigFile is the config file name looked up in $HOME and the working directory
	DefaultConfigFile = ".dataunifier"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "DATAUNIFIER"
)

// Timeout constants
const (
	// MongoConnectTimeout bounds connecting to and pinging MongoDB
	MongoConnectTimeout = 10 * time.Second

	// MongoWriteTimeout bounds one Mongo sink write
	MongoWriteTimeout = 2 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// MoneyPlaces is the number of fractional digits kept for monetary targets
	MoneyPlaces = 2

	// MongoBatchSize is the number of upserts sent per BulkWrite
	MongoBatchSize = 500
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
