// Package xlsx parses the first sheet of an Office Open XML workbook.
package xlsx

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.TabularParser = (*Parser)(nil)

// Parser reads .xlsx workbooks with excelize.
type Parser struct{}

// New creates an xlsx parser.
func New() *Parser {
	return &Parser{}
}

// Extensions returns the handled extensions.
func (p *Parser) Extensions() []string {
	return []string{".xlsx"}
}

// Parse reads the first sheet. Cells are returned in their formatted text form.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &domain.ParseError{Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer func() { _ = f.Close() }()

	table := &domain.Table{}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return table, nil
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, &domain.ParseError{Err: fmt.Errorf("read sheet %s: %w", sheets[0], err)}
	}
	defer func() { _ = rows.Close() }()

	line := 0
	for rows.Next() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := rows.Columns()
		if err != nil {
			return nil, &domain.ParseError{Line: line, Err: err}
		}
		if line == 1 {
			table.Header = row
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Error(); err != nil {
		return nil, &domain.ParseError{Line: line, Err: err}
	}
	return table, nil
}
