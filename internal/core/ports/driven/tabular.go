package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

// TabularParser reads one spreadsheet format into an untyped table.
// The first row of the input is the header.
type TabularParser interface {
	// Extensions returns the lowercase file extensions handled, with the dot.
	Extensions() []string

	// Parse reads the whole input. A malformed body returns *domain.ParseError.
	// An input without any rows returns an empty table, not an error.
	Parse(ctx context.Context, r io.Reader) (*domain.Table, error)
}

// TabularRegistry selects a parser by file name.
type TabularRegistry interface {
	// Register adds a parser for each of its extensions.
	Register(p TabularParser)

	// ForFile returns the parser for the file's extension (case-insensitive).
	// Returns *domain.UnsupportedFormatError when none is registered.
	ForFile(name string) (TabularParser, error)

	// Supports reports whether a parser exists for the file's extension.
	Supports(name string) bool
}
