// Package mcp provides an MCP (Model Context Protocol) server adapter for recordbook.
// It lets AI assistants list, search, edit and export module records.
package mcp

import "errors"

var (
	// ErrMissingModuleService is returned when the module service is not provided.
	ErrMissingModuleService = errors.New("mcp: module service is required")

	// ErrMissingSchemaService is returned when the schema service is not provided.
	ErrMissingSchemaService = errors.New("mcp: schema service is required")

	// ErrMissingRecordService is returned when the record service is not provided.
	ErrMissingRecordService = errors.New("mcp: record service is required")
)
