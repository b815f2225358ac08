package driving

import (
	"context"
	"io"
)

// TransferService moves records in and out of spreadsheet files.
type TransferService interface {
	// Import parses the file, chosen by the extension of fileName, and
	// appends its rows to the module as one batch. Nothing is committed
	// when parsing fails.
	Import(ctx context.Context, moduleID, fileName string, r io.Reader) (*ImportResult, error)

	// Export renders the module's records as CSV.
	Export(ctx context.Context, moduleID string, opts ExportOptions) (*ExportResult, error)
}

// ImportResult reports what an import appended.
type ImportResult struct {
	ModuleID string
	FileName string

	// Imported is the number of records appended.
	Imported int

	// SkippedEmpty is the number of entirely empty rows skipped.
	SkippedEmpty int

	// RegeneratedIDs counts source ids replaced because they were empty or collided.
	RegeneratedIDs int

	// UnknownColumns lists header cells that are not schema field ids.
	// Their values are imported verbatim.
	UnknownColumns []string

	// RecordIDs are the ids of the appended records in file order.
	RecordIDs []string
}

// ExportOptions tunes the exported table.
type ExportOptions struct {
	// IncludeID prepends an "id" column.
	IncludeID bool
}

// ExportResult is a rendered CSV file ready for download.
type ExportResult struct {
	// FileName is the suggested file name.
	FileName string

	// Data is the CSV body including the header row.
	Data []byte

	// Rows is the number of data rows.
	Rows int
}
