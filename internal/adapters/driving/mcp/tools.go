package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
)

// ModuleInput names the module a tool acts on.
type ModuleInput struct {
	Module string `json:"module" jsonschema:"the module id, e.g. clients"`
}

// ListModulesInput is the input schema for the list_modules tool.
type ListModulesInput struct{}

// ListModulesOutput is the output schema for the list_modules tool.
type ListModulesOutput struct {
	Modules []ModuleOutput `json:"modules"`
	Count   int            `json:"count"`
}

// ModuleOutput represents one module of the catalog.
type ModuleOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	FieldCount  int      `json:"field_count"`
	RecordCount int      `json:"record_count"`
	Prompts     []string `json:"prompts,omitempty"`
}

// ListFieldsOutput is the output schema for the list_fields tool.
type ListFieldsOutput struct {
	Fields []domain.FieldDefinition `json:"fields"`
}

// ListRecordsInput is the input schema for the list_records tool.
type ListRecordsInput struct {
	Module string `json:"module" jsonschema:"the module id"`
	Offset int    `json:"offset,omitempty" jsonschema:"number of records to skip"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 50)"`
}

// ListRecordsOutput is the output schema for the list_records tool.
type ListRecordsOutput struct {
	Records []map[string]string `json:"records"`
	Total   int                 `json:"total"`
}

// SearchInput is the input schema for the search_records tool.
type SearchInput struct {
	Module string `json:"module" jsonschema:"the module id"`
	Query  string `json:"query" jsonschema:"keywords to look for in any field"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results (default from settings)"`
}

// SearchOutput is the output schema for the search_records tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Record map[string]string `json:"record"`
	Score  int               `json:"score"`
}

// DuplicatesOutput is the output schema for the find_duplicates tool.
type DuplicatesOutput struct {
	Groups []domain.DuplicateGroup `json:"groups"`
	Count  int                     `json:"count"`
}

// AddRecordInput is the input schema for the add_record tool.
type AddRecordInput struct {
	Module string            `json:"module" jsonschema:"the module id"`
	ID     string            `json:"id,omitempty" jsonschema:"record id (generated when empty)"`
	Values map[string]string `json:"values" jsonschema:"field id to value"`
}

// UpdateRecordInput is the input schema for the update_record tool.
type UpdateRecordInput struct {
	Module string            `json:"module" jsonschema:"the module id"`
	ID     string            `json:"id" jsonschema:"the record id"`
	Values map[string]string `json:"values" jsonschema:"field id to new value; other fields are kept"`
}

// RecordWriteOutput is the output schema for add_record and update_record.
type RecordWriteOutput struct {
	ID     string        `json:"id"`
	Issues []IssueOutput `json:"issues,omitempty"`
}

// IssueOutput is an advisory problem with a stored value.
type IssueOutput struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ExportInput is the input schema for the export_records tool.
type ExportInput struct {
	Module    string `json:"module" jsonschema:"the module id"`
	IncludeID bool   `json:"include_id,omitempty" jsonschema:"prepend the record id column"`
}

// ExportOutput is the output schema for the export_records tool.
type ExportOutput struct {
	FileName string `json:"file_name"`
	Rows     int    `json:"rows"`
	CSV      string `json:"csv"`
}

const defaultListLimit = 50

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_modules",
		Description: "List the record modules with their field and record counts",
	}, s.handleListModules)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_fields",
		Description: "List a module's fields in display order",
	}, s.handleListFields)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_records",
		Description: "List records of a module in stored order",
	}, s.handleListRecords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_record",
		Description: "Add a record to a module",
	}, s.handleAddRecord)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_record",
		Description: "Overwrite some fields of an existing record",
	}, s.handleUpdateRecord)

	if s.ports.Search != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "search_records",
			Description: "Find records containing the query keywords",
		}, s.handleSearch)
	}

	if s.ports.Duplicates != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "find_duplicates",
			Description: "Group records sharing a normalised text, email or phone value",
		}, s.handleFindDuplicates)
	}

	if s.ports.Transfer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "export_records",
			Description: "Export a module's records as CSV",
		}, s.handleExport)
	}
}

func (s *Server) handleListModules(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListModulesInput,
) (*mcp.CallToolResult, ListModulesOutput, error) {
	summaries, err := s.ports.Modules.List(ctx)
	if err != nil {
		return nil, ListModulesOutput{}, err
	}

	output := ListModulesOutput{
		Modules: make([]ModuleOutput, len(summaries)),
		Count:   len(summaries),
	}
	for i := range summaries {
		m := summaries[i].Module
		output.Modules[i] = ModuleOutput{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			FieldCount:  summaries[i].FieldCount,
			RecordCount: summaries[i].RecordCount,
			Prompts:     m.Prompts,
		}
	}

	return nil, output, nil
}

func (s *Server) handleListFields(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ModuleInput,
) (*mcp.CallToolResult, ListFieldsOutput, error) {
	fields, err := s.ports.Schema.Fields(ctx, input.Module)
	if err != nil {
		return nil, ListFieldsOutput{}, err
	}
	return nil, ListFieldsOutput{Fields: fields}, nil
}

func (s *Server) handleListRecords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRecordsInput,
) (*mcp.CallToolResult, ListRecordsOutput, error) {
	records, err := s.ports.Records.List(ctx, input.Module)
	if err != nil {
		return nil, ListRecordsOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	start := min(max(input.Offset, 0), len(records))
	end := start + min(limit, len(records)-start)

	output := ListRecordsOutput{
		Records: make([]map[string]string, 0, end-start),
		Total:   len(records),
	}
	for i := start; i < end; i++ {
		output.Records = append(output.Records, flatten(records[i]))
	}

	return nil, output, nil
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Search.Search(ctx, input.Module, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			Record: flatten(results[i].Record),
			Score:  results[i].Score,
		}
	}

	return nil, output, nil
}

func (s *Server) handleFindDuplicates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ModuleInput,
) (*mcp.CallToolResult, DuplicatesOutput, error) {
	groups, err := s.ports.Duplicates.Refresh(ctx, input.Module)
	if err != nil {
		return nil, DuplicatesOutput{}, err
	}
	return nil, DuplicatesOutput{Groups: groups, Count: len(groups)}, nil
}

func (s *Server) handleAddRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddRecordInput,
) (*mcp.CallToolResult, RecordWriteOutput, error) {
	rec, err := s.ports.Records.Add(ctx, input.Module, domain.NewRecord(input.ID, input.Values))
	if err != nil {
		return nil, RecordWriteOutput{}, err
	}
	return nil, RecordWriteOutput{ID: rec.ID, Issues: s.issues(ctx, input.Module, rec.Values)}, nil
}

func (s *Server) handleUpdateRecord(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateRecordInput,
) (*mcp.CallToolResult, RecordWriteOutput, error) {
	if _, err := s.ports.Records.Get(ctx, input.Module, input.ID); err != nil {
		return nil, RecordWriteOutput{}, err
	}
	if err := s.ports.Records.Update(ctx, input.Module, input.ID, input.Values); err != nil {
		return nil, RecordWriteOutput{}, err
	}

	output := RecordWriteOutput{ID: input.ID}
	if rec, err := s.ports.Records.Get(ctx, input.Module, input.ID); err == nil {
		output.Issues = s.issues(ctx, input.Module, rec.Values)
	}
	return nil, output, nil
}

func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	result, err := s.ports.Transfer.Export(ctx, input.Module, driving.ExportOptions{IncludeID: input.IncludeID})
	if err != nil {
		return nil, ExportOutput{}, fmt.Errorf("exporting %s: %w", input.Module, err)
	}
	return nil, ExportOutput{
		FileName: result.FileName,
		Rows:     result.Rows,
		CSV:      string(result.Data),
	}, nil
}

// issues runs the advisory value checks. A failed check reports nothing.
func (s *Server) issues(ctx context.Context, moduleID string, values map[string]string) []IssueOutput {
	found, err := s.ports.Schema.Check(ctx, moduleID, values)
	if err != nil {
		return nil
	}
	out := make([]IssueOutput, 0, len(found))
	for _, issue := range found {
		out = append(out, IssueOutput{Field: issue.FieldID, Message: issue.Message})
	}
	return out
}

// flatten returns the record as one map with its id under "id".
func flatten(rec domain.Record) map[string]string {
	out := make(map[string]string, len(rec.Values)+1)
	for k, v := range rec.Values {
		out[k] = v
	}
	out[domain.IDField] = rec.ID
	return out
}
