package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
	"github.com/custodia-labs/recordbook/internal/logger"
)

// Ensure TransferService implements the interface.
var _ driving.TransferService = (*TransferService)(nil)

// TransferService imports spreadsheet files into a module and exports a
// module's records as CSV.
type TransferService struct {
	ws      *Workspace
	parsers driven.TabularRegistry
}

// NewTransferService creates a transfer service.
func NewTransferService(ws *Workspace, parsers driven.TabularRegistry) *TransferService {
	return &TransferService{ws: ws, parsers: parsers}
}

// ExportFileName is the suggested download name for a module export.
func ExportFileName(moduleID string) string {
	return moduleID + "-records.csv"
}

// Import parses r as the format named by fileName's extension and appends
// its rows as one batch. Nothing is committed on failure.
func (s *TransferService) Import(ctx context.Context, moduleID, fileName string, r io.Reader) (*driving.ImportResult, error) {
	if _, err := s.ws.Module(moduleID); err != nil {
		return nil, err
	}

	parser, err := s.parsers.ForFile(fileName)
	if err != nil {
		return nil, err
	}

	logger.Section("Import")
	logger.Debug("parsing %s for module %s", fileName, moduleID)

	table, err := parser.Parse(ctx, r)
	if err != nil {
		return nil, asParseError(fileName, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, skipped := tableRows(table)
	result := &driving.ImportResult{
		ModuleID:     moduleID,
		FileName:     fileName,
		SkippedEmpty: skipped,
	}

	err = s.ws.mutate(moduleID, func(st *moduleState) (bool, error) {
		result.UnknownColumns = unknownColumns(table.Header, st)

		taken := make(map[string]struct{}, len(st.records)+len(rows))
		for _, rec := range st.records {
			taken[rec.ID] = struct{}{}
		}

		batch := make([]domain.Record, 0, len(rows))
		for _, values := range rows {
			id := values[domain.IDField]
			if _, dup := taken[id]; id == "" || dup {
				if _, hasID := values[domain.IDField]; hasID {
					result.RegeneratedIDs++
				}
				id = s.ws.newID()
			}
			taken[id] = struct{}{}
			batch = append(batch, domain.NewRecord(id, values))
			result.RecordIDs = append(result.RecordIDs, id)
		}

		st.records = append(st.records, batch...)
		result.Imported = len(batch)
		return len(batch) > 0, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("imported %d records into %s (%d empty rows skipped, %d ids regenerated)",
		result.Imported, moduleID, result.SkippedEmpty, result.RegeneratedIDs)
	return result, nil
}

// tableRows turns data rows into header-keyed values. Header cells are
// trimmed and blank ones dropped; the first of repeated headers wins.
// Cell values are kept verbatim. Rows with only blank cells are skipped.
func tableRows(t *domain.Table) (rows []map[string]string, skipped int) {
	type column struct {
		key string
		pos int
	}
	var cols []column
	seen := make(map[string]struct{}, len(t.Header))
	for i, h := range t.Header {
		key := strings.TrimSpace(h)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cols = append(cols, column{key: key, pos: i})
	}

	for _, row := range t.Rows {
		if isBlankRow(row) {
			skipped++
			continue
		}
		values := make(map[string]string, len(cols))
		for _, c := range cols {
			if c.pos < len(row) {
				values[c.key] = row[c.pos]
			}
		}
		rows = append(rows, values)
	}
	return rows, skipped
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func unknownColumns(header []string, st *moduleState) []string {
	var unknown []string
	seen := make(map[string]struct{})
	for _, h := range header {
		key := strings.TrimSpace(h)
		if key == "" || key == domain.IDField || st.hasField(key) {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unknown = append(unknown, key)
	}
	return unknown
}

// asParseError tags a parser failure with the file name. Cancellation is
// passed through unchanged.
func asParseError(fileName string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pe *domain.ParseError
	if errors.As(err, &pe) {
		if pe.FileName == "" {
			pe.FileName = fileName
		}
		return pe
	}
	return &domain.ParseError{FileName: fileName, Err: err}
}

// Export renders the module's records as CSV with the schema field ids as
// header. Missing values are empty cells. Values under ids no longer in
// the schema are not exported.
func (s *TransferService) Export(_ context.Context, moduleID string, opts driving.ExportOptions) (*driving.ExportResult, error) {
	var (
		fields  []domain.FieldDefinition
		records []domain.Record
	)
	err := s.ws.view(moduleID, func(st *moduleState) {
		fields = cloneFields(st.fields)
		records = cloneRecords(st.records)
	})
	if err != nil {
		return nil, err
	}

	header := make([]string, 0, len(fields)+1)
	if opts.IncludeID {
		header = append(header, domain.IDField)
	}
	for _, f := range fields {
		header = append(header, f.ID)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, key := range header {
			row[i] = rec.Get(key)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write record %s: %w", rec.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return &driving.ExportResult{
		FileName: ExportFileName(moduleID),
		Data:     buf.Bytes(),
		Rows:     len(records),
	}, nil
}
