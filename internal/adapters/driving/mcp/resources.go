package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recordbook/internal/core/domain"
	"github.com/custodia-labs/recordbook/internal/core/ports/driving"
)

const (
	// URIScheme is the custom URI scheme for recordbook resources.
	uriScheme = "recordbook://"

	modulesPrefix = uriScheme + "modules/"
	fieldsSuffix  = "/fields"
	exportSuffix  = "/records.csv"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing modules.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "modules",
		Name:        "modules",
		Description: "The module catalog with field and record counts",
		MIMEType:    "application/json",
	}, s.handleModulesResource)

	// Template for a module's schema.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: modulesPrefix + "{moduleId}" + fieldsSuffix,
		Name:        "module-fields",
		Description: "Field definitions of a module in display order",
		MIMEType:    "application/json",
	}, s.handleFieldsResource)

	if s.ports.Transfer != nil {
		// Template for a module's CSV export.
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: modulesPrefix + "{moduleId}" + exportSuffix,
			Name:        "module-export",
			Description: "A module's records as CSV",
			MIMEType:    "text/csv",
		}, s.handleExportResource)
	}
}

// handleModulesResource returns the module catalog.
func (s *Server) handleModulesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	summaries, err := s.ports.Modules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling modules: %w", err)
	}

	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleFieldsResource returns the field definitions of one module.
func (s *Server) handleFieldsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract moduleId from URI: recordbook://modules/{moduleId}/fields
	moduleID := extractModuleID(req.Params.URI, fieldsSuffix)
	if moduleID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	fields, err := s.ports.Schema.Fields(ctx, moduleID)
	if errors.Is(err, domain.ErrUnknownModule) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}

	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling fields: %w", err)
	}

	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleExportResource returns the CSV export of one module.
func (s *Server) handleExportResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	moduleID := extractModuleID(req.Params.URI, exportSuffix)
	if moduleID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	result, err := s.ports.Transfer.Export(ctx, moduleID, driving.ExportOptions{IncludeID: true})
	if errors.Is(err, domain.ErrUnknownModule) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("exporting records: %w", err)
	}

	return textResult(req.Params.URI, "text/csv", string(result.Data)), nil
}

func textResult(uri, mimeType, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeType,
			Text:     text,
		}},
	}
}

// extractModuleID extracts the module ID from a URI like
// recordbook://modules/{moduleId}{suffix}.
func extractModuleID(uri, suffix string) string {
	if !strings.HasPrefix(uri, modulesPrefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, modulesPrefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	id := strings.TrimSuffix(uri, suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
