package domain

// Module is a named business domain with its own schema and records.
// Modules form a fixed catalog defined at load time.
type Module struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Prompts     []string `json:"prompts,omitempty"`
}

// ModuleTemplate is a catalog entry: the module plus its built-in schema and
// sample records used when no snapshot can be restored.
type ModuleTemplate struct {
	Module        Module
	Fields        []FieldDefinition
	SampleRecords []Record
}

// ModuleSummary is a read-only overview of one module's current state.
type ModuleSummary struct {
	Module         Module `json:"module"`
	FieldCount     int    `json:"field_count"`
	RecordCount    int    `json:"record_count"`
	DuplicateCount int    `json:"duplicate_count"`
}

// Table is an untyped tabular input: a header row and its data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// SearchResult is a record matched by keyword search.
type SearchResult struct {
	Record Record `json:"record"`

	// Score is the number of query tokens found in the record.
	Score int `json:"score"`
}
