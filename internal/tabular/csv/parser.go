// Package csv parses comma-delimited UTF-8 text with a header row.
package csv

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.TabularParser = (*Parser)(nil)

// utf8BOM is commonly prepended by Windows programs.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser reads CSV. Rows may have differing lengths.
type Parser struct{}

// New creates a CSV parser.
func New() *Parser {
	return &Parser{}
}

// Extensions returns the handled extensions.
func (p *Parser) Extensions() []string {
	return []string{".csv"}
}

// Parse reads every row of r. The first row is the header.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*domain.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	table := &domain.Table{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &domain.ParseError{Line: perr.Line, Err: perr.Err}
			}
			return nil, &domain.ParseError{Err: err}
		}
		if table.Header == nil {
			table.Header = row
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
