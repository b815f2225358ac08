// Package tabular selects a spreadsheet parser by file extension.
//
// Parsers live in subpackages (csv, xlsx, xls) and turn a file body into a
// domain.Table: the first row is the header, the rest are data rows. They
// know nothing about modules or schemas.
package tabular
