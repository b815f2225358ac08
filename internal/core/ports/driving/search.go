package driving

import (
	"context"

	"github.com/custodia-labs/recordbook/internal/core/domain"
)

// SearchService provides rule-based keyword search over a module's records.
type SearchService interface {
	// Search returns records containing query tokens, best first.
	// A limit of 0 uses the configured default.
	Search(ctx context.Context, moduleID, query string, limit int) ([]domain.SearchResult, error)

	// Suggestions returns, per field id, distinct existing values for autofill.
	Suggestions(ctx context.Context, moduleID string) (map[string][]string, error)
}
