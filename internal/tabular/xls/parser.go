// Package xls parses the first sheet of a legacy BIFF (.xls) workbook.
package xls

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.TabularParser = (*Parser)(nil)

// Parser reads .xls workbooks with extrame/xls.
type Parser struct {
	charset string
}

// New creates an xls parser decoding strings as UTF-8.
func New() *Parser {
	return &Parser{charset: "utf-8"}
}

// Extensions returns the handled extensions.
func (p *Parser) Extensions() []string {
	return []string{".xls"}
}

// Parse reads the first sheet. The decoder panics on some malformed
// inputs; those are reported as parse errors.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (table *domain.Table, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.ParseError{Err: fmt.Errorf("read workbook: %w", err)}
	}

	defer func() {
		if v := recover(); v != nil {
			table = nil
			err = &domain.ParseError{Err: fmt.Errorf("decode workbook: %v", v)}
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), p.charset)
	if err != nil {
		return nil, &domain.ParseError{Err: fmt.Errorf("open workbook: %w", err)}
	}

	table = &domain.Table{}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return table, nil
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := rowAt(sheet, i)
		if table.Header == nil {
			if row == nil {
				continue
			}
			table.Header = rowCells(row, 0)
			continue
		}
		table.Rows = append(table.Rows, rowCells(row, len(table.Header)))
	}
	return table, nil
}

// rowAt returns nil for a row with no cells. The decoder dereferences a
// missing row instead of reporting it.
func rowAt(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

// rowCells reads a row up to its recorded last column. Rows written without
// a ROW record report no columns; those are read up to width.
func rowCells(row *xls.Row, width int) []string {
	if row == nil {
		return nil
	}
	n := row.LastCol()
	if n == 0 {
		n = width
	}
	cells := make([]string, 0, n)
	for j := 0; j < n; j++ {
		cells = append(cells, row.Col(j))
	}
	return cells
}
