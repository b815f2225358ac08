package mcp

import (
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Modules lists the module catalog.
	Modules driving.ModuleService

	// Schema reads field definitions and checks values.
	Schema driving.SchemaService

	// Records reads and edits records.
	Records driving.RecordService

	// Search provides keyword search. Optional.
	Search driving.SearchService

	// Duplicates runs duplicate detection. Optional.
	Duplicates driving.DuplicateService

	// Transfer exports records as CSV. Optional.
	Transfer driving.TransferService
}

// Validate ensures all required ports are set.
// Tools backed by optional ports are only registered when the port is set.
func (p *Ports) Validate() error {
	if p.Modules == nil {
		return ErrMissingModuleService
	}
	if p.Schema == nil {
		return ErrMissingSchemaService
	}
	if p.Records == nil {
		return ErrMissingRecordService
	}
	return nil
}
