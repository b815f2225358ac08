package domain

import "fmt"

const unknownDescription = "Unknown"

// StorageBackend selects the durable slot implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite keeps the snapshot in a SQLite key-value table.
	StorageSQLite StorageBackend = "sqlite"

	// StorageFile keeps the snapshot in a JSON file replaced atomically.
	StorageFile StorageBackend = "file"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageFile
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (state.db)"
	case StorageFile:
		return "JSON files (one per slot)"
	default:
		return unknownDescription
	}
}

// LogFormat selects the log encoder.
type LogFormat string

// Available log formats.
const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// IsValid returns true if the format is recognised.
func (f LogFormat) IsValid() bool {
	return f == LogFormatConsole || f == LogFormatJSON
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Backend is the durable slot implementation.
	Backend StorageBackend

	// Dir is the data directory. Empty means ~/.recordbook/data.
	Dir string
}

// SearchSettings holds keyword search configuration.
type SearchSettings struct {
	// Limit is the default maximum number of results.
	Limit int
}

// LogSettings holds logging configuration.
type LogSettings struct {
	Format  LogFormat
	Verbose bool
}

// AppSettings is the complete user-editable configuration.
type AppSettings struct {
	Storage StorageSettings
	Search  SearchSettings
	Log     LogSettings
}

// DefaultSearchLimit is the number of search results returned by default.
const DefaultSearchLimit = 5

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{Backend: StorageSQLite},
		Search:  SearchSettings{Limit: DefaultSearchLimit},
		Log:     LogSettings{Format: LogFormatConsole},
	}
}

// Validate checks every setting and reports the first invalid one.
func (s AppSettings) Validate() error {
	if !s.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", ErrInvalidInput, s.Storage.Backend)
	}
	if s.Search.Limit <= 0 {
		return fmt.Errorf("%w: search limit must be positive", ErrInvalidInput)
	}
	if !s.Log.Format.IsValid() {
		return fmt.Errorf("%w: log format %q", ErrInvalidInput, s.Log.Format)
	}
	return nil
}
